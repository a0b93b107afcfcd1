package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	// Token lifetimes: short access window, long refresh window.
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=360h"`

	// BcryptCost below 10 is clamped up by the hasher.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	EventWorkers int `env:"EVENT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=catalog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}
