package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds everything read from the environment at boot.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   string `env:"PORT" envDefault:"6001"`

	MongoURL       string        `env:"MONGO_URL,required,notEmpty"`
	MongoDB        string        `env:"MONGO_DB" envDefault:"sociopedia"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	AssetsDir   string `env:"ASSETS_DIR" envDefault:"public/assets"`
	BodyLimitMB int64  `env:"BODY_LIMIT_MB" envDefault:"30"`

	SeedEnabled bool          `env:"SEED_ENABLED" envDefault:"true"`
	SeedLockTTL time.Duration `env:"SEED_LOCK_TTL" envDefault:"1m"`

	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env (if any) and parses the process environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logger().Info("No .env file found, using system environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) BodyLimit() int64 {
	return c.BodyLimitMB << 20
}

// RedactedMongoURL hides the password part of the connection string.
func (c Config) RedactedMongoURL() string {
	u, err := url.Parse(c.MongoURL)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}

func logger() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}
