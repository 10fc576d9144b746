package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/matchmaker-backend/internal/config"
	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/events"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
)

func TestNewContainerInMemory(t *testing.T) {
	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 0, Env: "test"},
		JWT:     config.JWTConfig{AccessSecret: "0123456789abcdef0123456789abcdef", AccessExpiryMin: 5},
		Storage: config.StorageConfig{Type: config.StorageMemory},
		Matching: config.MatchingConfig{
			Weights:           domain.DefaultWeights(),
			DistanceTolerance: 1.2,
			DefaultMinAge:     18,
			DefaultMaxAge:     99,
			CandidatePoolSize: 100,
		},
	}

	c, err := NewContainer(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, c.DB)
	assert.Nil(t, c.Redis)
	assert.NotNil(t, c.Server)
	assert.IsType(t, events.NopPublisher{}, c.Publisher)
	assert.NoError(t, c.Close())
}

func TestMatchingConfig(t *testing.T) {
	in := &config.MatchingConfig{
		Weights:           domain.DefaultWeights(),
		DistanceTolerance: 1.5,
		DiscoveryLimit:    30,
		MinScore:          40,
		Workers:           4,
	}

	out := MatchingConfig(in)
	assert.Equal(t, in.Weights, out.Weights)
	assert.Equal(t, 1.5, out.DistanceTolerance)
	assert.Equal(t, 30, out.DefaultLimit)
	assert.Equal(t, 40, out.DefaultMinScore)
	assert.Equal(t, 4, out.Workers)
}
