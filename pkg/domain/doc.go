/*
Package domain contains the core domain models shared by the conform engine and its adapters.

It defines the sentinel errors, the schema naming rules and the validation events
emitted to observers. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - ValidationEvent: The outcome of one top-level validation, delivered to ValidationHooks.
  - ValidateSchemaName: The naming rule every SchemaStore enforces.
  - WithTraceID / WithSource: Request-scoped metadata carried through context.
*/
package domain
