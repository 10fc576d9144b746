package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/gdugdh24/matchmaker-backend/internal/config"
	"github.com/gdugdh24/matchmaker-backend/internal/delivery/http"
	"github.com/gdugdh24/matchmaker-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matchmaker-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/database"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/events"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/lock"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/server"
	"github.com/gdugdh24/matchmaker-backend/internal/matching"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
	"github.com/gdugdh24/matchmaker-backend/internal/repository/memory"
	"github.com/gdugdh24/matchmaker-backend/internal/repository/postgres"
	"github.com/gdugdh24/matchmaker-backend/internal/usecase/auth"
	"github.com/gdugdh24/matchmaker-backend/internal/usecase/feed"
	"github.com/gdugdh24/matchmaker-backend/internal/usecase/match"
	"github.com/gdugdh24/matchmaker-backend/internal/usecase/profile"
	"github.com/gdugdh24/matchmaker-backend/internal/usecase/swipe"
)

const (
	localLockStripes = 256
	lockRetryDelay   = 25 * time.Millisecond
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	DB        *sqlx.DB
	Redis     *redis.Client
	Publisher events.Publisher
	Server    *server.Server
	log       *logger.Logger
}

type repositories struct {
	profiles repository.ProfileRepository
	swipes   repository.SwipeRepository
	matches  repository.MatchRepository
	blocks   repository.BlockRepository
	messages repository.MessageRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, log: log}

	repos, err := c.initStorage()
	if err != nil {
		c.Close()
		return nil, err
	}

	locker, err := c.initLocker()
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher, err := events.NewKafkaPublisher(&cfg.Kafka)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize kafka publisher: %w", err)
		}
		c.Publisher = publisher
		log.Info("kafka publisher enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	ranker := matching.NewRanker(MatchingConfig(&cfg.Matching))

	// Initialize use cases
	tokens := auth.NewTokenService(cfg.JWT.AccessSecret, time.Duration(cfg.JWT.AccessExpiryMin)*time.Minute)

	matchUseCase := match.NewMatchUseCase(
		repos.matches,
		repos.messages,
		repos.profiles,
		cfg.Support,
		log.With("usecase", "match"),
	)

	profileUseCase := profile.NewProfileUseCase(
		repos.profiles,
		matchUseCase,
		log.With("usecase", "profile"),
	)

	feedUseCase := feed.NewFeedUseCase(
		repos.profiles,
		ranker,
		cfg.Matching.CandidatePoolSize,
		log.With("usecase", "feed"),
	)

	swipeUseCase := swipe.NewSwipeUseCase(
		repos.swipes,
		repos.matches,
		repos.profiles,
		repos.blocks,
		locker,
		ranker,
		c.Publisher,
		log.With("usecase", "swipe"),
	)

	// Initialize router
	router := http.NewRouter(
		handler.NewAuthHandler(tokens),
		handler.NewProfileHandler(profileUseCase),
		handler.NewFeedHandler(feedUseCase),
		handler.NewSwipeHandler(swipeUseCase),
		handler.NewMatchHandler(matchUseCase),
		middleware.NewAuthMiddleware(tokens, log),
		cfg,
		log,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

func (c *Container) initStorage() (*repositories, error) {
	if c.Config.Storage.Type == config.StorageMemory {
		c.log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			profiles: store.Profiles(),
			swipes:   store.Swipes(),
			matches:  store.Matches(),
			blocks:   store.Blocks(),
			messages: store.Messages(),
		}, nil
	}

	db, err := database.NewPostgresDB(&c.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	if c.Config.Database.AutoMigrate {
		if err := database.Migrate(db, c.log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &repositories{
		profiles: postgres.NewProfileRepository(db),
		swipes:   postgres.NewSwipeRepository(db),
		matches:  postgres.NewMatchRepository(db),
		blocks:   postgres.NewBlockRepository(db),
		messages: postgres.NewMessageRepository(db),
	}, nil
}

// initLocker picks the pair lock: Redis when several instances share storage, in-process otherwise.
func (c *Container) initLocker() (lock.PairLocker, error) {
	if !c.Config.Redis.Enabled {
		return lock.NewLocalLocker(localLockStripes), nil
	}

	client, err := database.NewRedisClient(context.Background(), &c.Config.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	c.Redis = client
	return lock.NewRedisLocker(client, c.Config.Redis.LockTTL, lockRetryDelay), nil
}

// MatchingConfig converts the loaded tuning values into engine configuration.
func MatchingConfig(cfg *config.MatchingConfig) matching.Config {
	return matching.Config{
		Weights:              cfg.Weights,
		DistanceTolerance:    cfg.DistanceTolerance,
		DefaultMaxDistanceKm: cfg.DefaultMaxDistanceKm,
		CloseDistanceKm:      cfg.CloseDistanceKm,
		DefaultMinAge:        cfg.DefaultMinAge,
		DefaultMaxAge:        cfg.DefaultMaxAge,
		DefaultLimit:         cfg.DiscoveryLimit,
		DefaultMinScore:      cfg.MinScore,
		ParallelThreshold:    cfg.ParallelThreshold,
		Workers:              cfg.Workers,
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.log.Error("error closing event publisher", "error", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.log.Error("error closing redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

// Shutdown stops the HTTP server and then releases connections.
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.Server.Shutdown(ctx); err != nil {
		return err
	}
	return c.Close()
}
