package domain

import "errors"

// ErrSchemaNotFound is returned when a schema name cannot be found in the store.
var ErrSchemaNotFound = errors.New("schema not found")

// ErrInvalidSchemaName is returned when a schema name is empty or contains
// characters that are unsafe as a file name or store key.
var ErrInvalidSchemaName = errors.New("invalid schema name")

// ErrSchemaRequired is returned when a validation request names neither an
// inline schema nor a stored one.
var ErrSchemaRequired = errors.New("schema required")

// ErrReadOnlyStore is returned by Put and Delete on a store opened read-only.
var ErrReadOnlyStore = errors.New("schema store is read-only")
