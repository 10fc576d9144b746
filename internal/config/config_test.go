package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", User: "app", DBName: "matchmaker"},
		JWT:      JWTConfig{AccessSecret: testSecret},
		Storage:  StorageConfig{Type: StoragePostgres},
		Matching: MatchingConfig{
			Weights:           domain.DefaultWeights(),
			DistanceTolerance: 1.2,
			DefaultMinAge:     18,
			DefaultMaxAge:     99,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "memory storage needs no database", mutate: func(c *Config) {
			c.Storage.Type = StorageMemory
			c.Database = DatabaseConfig{}
		}},
		{name: "missing database host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database host"},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Type = "sqlite" }, wantErr: "unknown storage"},
		{name: "short secret", mutate: func(c *Config) { c.JWT.AccessSecret = "short" }, wantErr: "32 characters"},
		{name: "redis without host", mutate: func(c *Config) { c.Redis.Enabled = true }, wantErr: "redis host"},
		{name: "weights off", mutate: func(c *Config) { c.Matching.Weights.Mood = 0.5 }, wantErr: "sum to 1"},
		{name: "age range inverted", mutate: func(c *Config) { c.Matching.DefaultMinAge = 50; c.Matching.DefaultMaxAge = 40 }, wantErr: "min age"},
		{name: "zero min score", mutate: func(c *Config) { c.Matching.MinScore = 0 }},
		{name: "min score above 100", mutate: func(c *Config) { c.Matching.MinScore = 101 }, wantErr: "min score"},
		{name: "negative min score", mutate: func(c *Config) { c.Matching.MinScore = -1 }, wantErr: "min score"},
		{name: "tolerance below one", mutate: func(c *Config) { c.Matching.DistanceTolerance = 0.8 }, wantErr: "tolerance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_ACCESS_SECRET", testSecret)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("MATCH_MIN_SCORE", "40")
	t.Setenv("SUPPORT_USER_ID", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 40, cfg.Matching.MinScore)
	assert.Equal(t, 20, cfg.Matching.DiscoveryLimit)
	assert.InDelta(t, 1.2, cfg.Matching.DistanceTolerance, 1e-9)
	assert.InDelta(t, 1.0, cfg.Matching.Weights.Sum(), 1e-9)
	assert.Equal(t, 1, cfg.Support.UserID)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSOrigins)
}

func TestDSNAndAddr(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", db.GetDSN())

	r := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", r.GetAddr())
}
