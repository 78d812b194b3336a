// Package config loads the conform runtime configuration.
//
// Values are resolved in three layers, each overriding the previous one:
// built-in defaults, an optional YAML or JSON file, and CONFORM_* environment
// variables.
package config

import (
	"time"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CONFORM_"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config is the top-level configuration container.
//
// Struct tags:
//   - mapstructure: key in the configuration file.
//   - envPrefix / env: environment variable name below EnvPrefix.
type Config struct {
	Log        Log        `mapstructure:"log" envPrefix:"LOG_"`
	Server     Server     `mapstructure:"server" envPrefix:"SERVER_"`
	Store      Store      `mapstructure:"store" envPrefix:"STORE_"`
	Validation Validation `mapstructure:"validation" envPrefix:"VALIDATION_"`
}

// Log controls the application logger.
type Log struct {
	// Level is one of debug, info, warn or error.
	// Env: CONFORM_LOG_LEVEL
	Level string `mapstructure:"level" env:"LEVEL"`

	// Format is text or json.
	// Env: CONFORM_LOG_FORMAT
	Format string `mapstructure:"format" env:"FORMAT"`
}

// Server holds the HTTP and SSE listener settings.
type Server struct {
	// Addr is the listen address in "host:port" form.
	// Env: CONFORM_SERVER_ADDR
	Addr string `mapstructure:"addr" env:"ADDR"`

	// BaseURL is the public URL advertised by the MCP SSE transport.
	// Env: CONFORM_SERVER_BASE_URL
	BaseURL string `mapstructure:"base_url" env:"BASE_URL"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: CONFORM_SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// Store selects and configures the schema store.
type Store struct {
	// Driver is memory, file or redis.
	// Env: CONFORM_STORE_DRIVER
	Driver string `mapstructure:"driver" env:"DRIVER"`

	// Dir is the schema directory used by the file driver.
	// Env: CONFORM_STORE_DIR
	Dir string `mapstructure:"dir" env:"DIR"`

	// CacheTTL keeps schemas read from the driver in memory; zero disables it.
	// Env: CONFORM_STORE_CACHE_TTL
	CacheTTL time.Duration `mapstructure:"cache_ttl" env:"CACHE_TTL"`

	// ReadOnly rejects schema writes and deletes.
	// Env: CONFORM_STORE_READ_ONLY
	ReadOnly bool `mapstructure:"read_only" env:"READ_ONLY"`

	Redis Redis `mapstructure:"redis" envPrefix:"REDIS_"`
}

// Redis holds the connection settings for the redis driver.
type Redis struct {
	// Env: CONFORM_STORE_REDIS_ADDR
	Addr string `mapstructure:"addr" env:"ADDR"`
	// Env: CONFORM_STORE_REDIS_PASSWORD
	Password string `mapstructure:"password" env:"PASSWORD"`
	// Env: CONFORM_STORE_REDIS_DB
	DB int `mapstructure:"db" env:"DB"`
	// Env: CONFORM_STORE_REDIS_PREFIX
	Prefix string `mapstructure:"prefix" env:"PREFIX"`
	// TTL expires stored schemas; zero keeps them forever.
	// Env: CONFORM_STORE_REDIS_TTL
	TTL time.Duration `mapstructure:"ttl" env:"TTL"`
}

// Validation tunes the schema engine.
type Validation struct {
	// MaxDepth bounds template recursion; zero is unbounded.
	// Env: CONFORM_VALIDATION_MAX_DEPTH
	MaxDepth int `mapstructure:"max_depth" env:"MAX_DEPTH"`

	// StrictRules rejects unknown rule names when decoding schemas.
	// Env: CONFORM_VALIDATION_STRICT_RULES
	StrictRules bool `mapstructure:"strict_rules" env:"STRICT_RULES"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Store: Store{
			Driver: DriverFile,
			Dir:    ".conform/schemas",
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "conform:schema:",
			},
		},
	}
}
