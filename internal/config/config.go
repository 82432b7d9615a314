package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Env      string         `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Store    StoreConfig    `yaml:"store"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type HTTPConfig struct {
	Address      string        `yaml:"address" env:"HTTP_ADDR" env-default:":5000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTTTL    time.Duration `yaml:"jwt_ttl" env:"JWT_TTL" env-default:"1h"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:5173"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"postgres"`
}

type PostgresConfig struct {
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	Host        string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"PGPORT" env-default:"5432"`
	User        string `yaml:"user" env:"PGUSER"`
	Password    string `yaml:"password" env:"PGPASSWORD"`
	Database    string `yaml:"database" env:"PGDATABASE"`
	SSLMode     string `yaml:"sslmode" env:"PGSSLMODE" env-default:"disable"`
}

// Load - .env(있으면) -> CONFIG_PATH yaml(있으면) -> 환경변수 순으로 설정을 읽는다.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// ClientConfig - notelog CLI 설정
type ClientConfig struct {
	APIURL           string        `env:"NOTELOG_API_URL" env-default:"http://localhost:5000/api"`
	DataPath         string        `env:"NOTELOG_DATA"`
	ReminderInterval time.Duration `env:"NOTELOG_REMINDER_INTERVAL" env-default:"1s"`
	ReminderWindow   time.Duration `env:"NOTELOG_REMINDER_WINDOW" env-default:"120s"`
	RefreshInterval  time.Duration `env:"NOTELOG_REFRESH_INTERVAL" env-default:"30s"`
}

func LoadClient() (ClientConfig, error) {
	_ = godotenv.Load()

	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("failed to read env: %w", err)
	}
	if cfg.DataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ClientConfig{}, fmt.Errorf("failed to resolve home dir: %w", err)
		}
		cfg.DataPath = filepath.Join(home, ".notelog", "notelog.db")
	}
	return cfg, nil
}
