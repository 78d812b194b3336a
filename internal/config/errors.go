package config

import "errors"

// Validation errors returned by [Config.Validate].
var (
	// ErrInvalidLogConfig indicates an unknown log level or format.
	ErrInvalidLogConfig = errors.New("invalid log configuration")
	// ErrInvalidServerConfig indicates a missing address or a non-positive shutdown timeout.
	ErrInvalidServerConfig = errors.New("invalid server configuration")
	// ErrInvalidStoreConfig indicates an unknown driver or missing driver settings.
	ErrInvalidStoreConfig = errors.New("invalid store configuration")
	// ErrInvalidValidationConfig indicates a negative max depth.
	ErrInvalidValidationConfig = errors.New("invalid validation configuration")
)
