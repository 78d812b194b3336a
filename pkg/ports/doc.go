/*
Package ports defines the driven ports (interfaces) for the conform engine.

These interfaces decouple validation from storage, allowing the engine to
resolve named schemas from memory, a directory of schema files or Redis.

# Key Interfaces

  - SchemaStore: Responsible for persisting and loading named schemas.

RunSchemaStoreContract is the shared test suite every SchemaStore adapter runs.
*/
package ports
