package config

import (
	"fmt"

	"github.com/aretw0/conform/internal/logging"
)

// Validate checks that the resolved configuration is usable.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLogConfig, err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidLogConfig, c.Log.Format)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidServerConfig)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidServerConfig)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("%w: file driver needs a directory", ErrInvalidStoreConfig)
		}
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("%w: redis driver needs an address", ErrInvalidStoreConfig)
		}
		if c.Store.Redis.TTL < 0 {
			return fmt.Errorf("%w: negative redis ttl", ErrInvalidStoreConfig)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStoreConfig, c.Store.Driver)
	}

	if c.Store.CacheTTL < 0 {
		return fmt.Errorf("%w: negative cache ttl", ErrInvalidStoreConfig)
	}

	if c.Validation.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative", ErrInvalidValidationConfig)
	}
	return nil
}
