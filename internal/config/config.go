package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Matching MatchingConfig
	Kafka    KafkaConfig
	Tracing  TracingConfig
	Metrics  MetricsConfig
	Support  SupportConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	LockTTL  time.Duration
	PoolSize int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiryMin int
}

type StorageConfig struct {
	Type string
}

type LoggingConfig struct {
	Level string
}

// MatchingConfig carries the tunable constants of the matching engine.
type MatchingConfig struct {
	Weights              domain.Weights
	DistanceTolerance    float64
	DefaultMaxDistanceKm float64
	CloseDistanceKm      float64
	DefaultMinAge        int
	DefaultMaxAge        int
	DiscoveryLimit       int
	MinScore             int
	ParallelThreshold    int
	Workers              int
	CandidatePoolSize    int
}

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	MaxAttempts  int
}

func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	SampleRatio float64
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// SupportConfig names the account every new profile is auto-matched with. Zero disables it.
type SupportConfig struct {
	UserID         int
	WelcomeMessage string
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_LOCK_TTL", "5s")
	viper.SetDefault("REDIS_POOL_SIZE", 20)
	viper.SetDefault("JWT_ACCESS_EXPIRY_MIN", 60)
	viper.SetDefault("STORAGE_TYPE", StoragePostgres)
	viper.SetDefault("LOG_LEVEL", "info")

	w := domain.DefaultWeights()
	viper.SetDefault("MATCH_WEIGHT_SHARED_TAGS", w.SharedTags)
	viper.SetDefault("MATCH_WEIGHT_SHARED_INTERESTS", w.SharedInterests)
	viper.SetDefault("MATCH_WEIGHT_DISTANCE", w.Distance)
	viper.SetDefault("MATCH_WEIGHT_AGE", w.AgeCompatibility)
	viper.SetDefault("MATCH_WEIGHT_GENDER", w.GenderMatch)
	viper.SetDefault("MATCH_WEIGHT_RELATIONSHIP", w.RelationshipType)
	viper.SetDefault("MATCH_WEIGHT_MOOD", w.Mood)
	viper.SetDefault("MATCH_WEIGHT_PACE", w.Pace)
	viper.SetDefault("MATCH_WEIGHT_TIME", w.TimePreferences)
	viper.SetDefault("MATCH_DISTANCE_TOLERANCE", 1.2)
	viper.SetDefault("MATCH_DEFAULT_MAX_DISTANCE_KM", 100)
	viper.SetDefault("MATCH_CLOSE_DISTANCE_KM", 5)
	viper.SetDefault("MATCH_DEFAULT_MIN_AGE", 18)
	viper.SetDefault("MATCH_DEFAULT_MAX_AGE", 99)
	viper.SetDefault("MATCH_DISCOVERY_LIMIT", 20)
	viper.SetDefault("MATCH_MIN_SCORE", 35)
	viper.SetDefault("MATCH_PARALLEL_THRESHOLD", 64)
	viper.SetDefault("MATCH_CANDIDATE_POOL_SIZE", 500)

	viper.SetDefault("KAFKA_TOPIC", "matchmaker.matches")
	viper.SetDefault("KAFKA_BATCH_TIMEOUT", "50ms")
	viper.SetDefault("KAFKA_WRITE_TIMEOUT", "10s")
	viper.SetDefault("KAFKA_MAX_ATTEMPTS", 3)
	viper.SetDefault("TRACING_SERVICE_NAME", "matchmaker-backend")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PATH", "/metrics")
	viper.SetDefault("SUPPORT_WELCOME_MESSAGE", "Hi! Welcome aboard. Message us here any time you need help.")
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			CORSOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetInt("DB_PORT"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			DBName:       viper.GetString("DB_NAME"),
			SSLMode:      viper.GetString("DB_SSL_MODE"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			LockTTL:  viper.GetDuration("REDIS_LOCK_TTL"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		JWT: JWTConfig{
			AccessSecret:    viper.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryMin: viper.GetInt("JWT_ACCESS_EXPIRY_MIN"),
		},
		Storage: StorageConfig{
			Type: strings.ToLower(viper.GetString("STORAGE_TYPE")),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Matching: MatchingConfig{
			Weights: domain.Weights{
				SharedTags:       viper.GetFloat64("MATCH_WEIGHT_SHARED_TAGS"),
				SharedInterests:  viper.GetFloat64("MATCH_WEIGHT_SHARED_INTERESTS"),
				Distance:         viper.GetFloat64("MATCH_WEIGHT_DISTANCE"),
				AgeCompatibility: viper.GetFloat64("MATCH_WEIGHT_AGE"),
				GenderMatch:      viper.GetFloat64("MATCH_WEIGHT_GENDER"),
				RelationshipType: viper.GetFloat64("MATCH_WEIGHT_RELATIONSHIP"),
				Mood:             viper.GetFloat64("MATCH_WEIGHT_MOOD"),
				Pace:             viper.GetFloat64("MATCH_WEIGHT_PACE"),
				TimePreferences:  viper.GetFloat64("MATCH_WEIGHT_TIME"),
			},
			DistanceTolerance:    viper.GetFloat64("MATCH_DISTANCE_TOLERANCE"),
			DefaultMaxDistanceKm: viper.GetFloat64("MATCH_DEFAULT_MAX_DISTANCE_KM"),
			CloseDistanceKm:      viper.GetFloat64("MATCH_CLOSE_DISTANCE_KM"),
			DefaultMinAge:        viper.GetInt("MATCH_DEFAULT_MIN_AGE"),
			DefaultMaxAge:        viper.GetInt("MATCH_DEFAULT_MAX_AGE"),
			DiscoveryLimit:       viper.GetInt("MATCH_DISCOVERY_LIMIT"),
			MinScore:             viper.GetInt("MATCH_MIN_SCORE"),
			ParallelThreshold:    viper.GetInt("MATCH_PARALLEL_THRESHOLD"),
			Workers:              viper.GetInt("MATCH_WORKERS"),
			CandidatePoolSize:    viper.GetInt("MATCH_CANDIDATE_POOL_SIZE"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:        viper.GetString("KAFKA_TOPIC"),
			BatchTimeout: viper.GetDuration("KAFKA_BATCH_TIMEOUT"),
			WriteTimeout: viper.GetDuration("KAFKA_WRITE_TIMEOUT"),
			MaxAttempts:  viper.GetInt("KAFKA_MAX_ATTEMPTS"),
		},
		Tracing: TracingConfig{
			Enabled:     viper.GetBool("TRACING_ENABLED"),
			ServiceName: viper.GetString("TRACING_SERVICE_NAME"),
			Environment: viper.GetString("ENV"),
			SampleRatio: viper.GetFloat64("TRACING_SAMPLE_RATIO"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Path:    viper.GetString("METRICS_PATH"),
		},
		Support: SupportConfig{
			UserID:         viper.GetInt("SUPPORT_USER_ID"),
			WelcomeMessage: viper.GetString("SUPPORT_WELCOME_MESSAGE"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis host is required when redis is enabled")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if sum := c.Matching.Weights.Sum(); math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("matching weights must sum to 1, got %.4f", sum)
	}
	if c.Matching.DefaultMinAge > c.Matching.DefaultMaxAge {
		return fmt.Errorf("matching default min age must not exceed max age")
	}
	if c.Matching.MinScore < 0 || c.Matching.MinScore > 100 {
		return fmt.Errorf("matching min score must be between 0 and 100")
	}
	if c.Matching.DistanceTolerance < 1 {
		return fmt.Errorf("matching distance tolerance must be at least 1")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
