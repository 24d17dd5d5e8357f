package config

import (
	"time"
)

// Storage engines understood by the store.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Intake IntakeConfig `yaml:"intake"`
	Log    LogConfig    `yaml:"log"`
	CORS   CORSConfig   `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"http://localhost:8080,http://127.0.0.1:8080"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings for the local API.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// WriteRateLimit caps POST and DELETE requests per client IP per minute.
	// Zero disables the limit.
	WriteRateLimit int `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"120"`
}

// StoreConfig selects and tunes the storage engine behind the record store.
type StoreConfig struct {
	Engine          string        `yaml:"engine"             env:"STORE_ENGINE"             env-default:"sqlite"`
	Path            string        `yaml:"path"               env:"STORE_PATH"               env-default:"./data/intake.db"`
	BusyTimeout     time.Duration `yaml:"busy_timeout"       env:"STORE_BUSY_TIMEOUT"       env-default:"5s"`
	DSN             string        `yaml:"dsn"                env:"STORE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"STORE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"STORE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"STORE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"STORE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	OpenTimeout     time.Duration `yaml:"open_timeout"       env:"STORE_OPEN_TIMEOUT"       env-default:"10s"`
}

// IntakeConfig holds the intake workflow rules.
type IntakeConfig struct {
	RequireDrinkType bool    `yaml:"require_drink_type" env:"INTAKE_REQUIRE_DRINK_TYPE" env-default:"false"`
	DefaultDrinkType string  `yaml:"default_drink_type" env:"INTAKE_DEFAULT_DRINK_TYPE"`
	Unit             string  `yaml:"unit"               env:"INTAKE_UNIT"               env-default:"oz"`
	MaxAmount        float64 `yaml:"max_amount"         env:"INTAKE_MAX_AMOUNT"         env-default:"1000"`
	Timezone         string  `yaml:"timezone"           env:"INTAKE_TIMEZONE"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
