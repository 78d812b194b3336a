/*
Package conform validates dynamic values (decoded JSON, YAML or plain Go maps and slices) against small declarative schemas.

A schema maps field names to rule sets. Rules check the type of a value, numeric
bounds, sequence length, membership in a fixed list, presence, and nested structure
through templates. The result of a validation is a single pass or fail.

# Concept

The matching engine lives in pkg/schema and is usable on its own. This package wraps it
in an Engine that adds named schemas (through a ports.SchemaStore), structured logging
and observability hooks. The same Engine backs the conform CLI, its HTTP API and its
MCP tool server.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/conform"
		"github.com/aretw0/conform/pkg/schema"
	)

	func main() {
		eng, err := conform.New()
		if err != nil {
			log.Fatal(err)
		}

		profile, err := schema.Parse([]byte(`
	name:     {type: String, required: true}
	stages:
	  type: Array
	  minSize: 1
	  template:
	    time_sec: {type: Integer, min: 0, max: 1000, required: true}
	`))
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		if err := eng.Store().Put(ctx, "cook", profile); err != nil {
			log.Fatal(err)
		}

		ok, err := eng.ValidateNamed(ctx, "cook", map[string]any{
			"name":   "rice",
			"stages": []any{map[string]any{"time_sec": 600}},
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(ok)
	}

# Semantics

Keys a schema does not declare are ignored, unknown rule names are skipped and unknown
type names never match. See pkg/schema for the full rule reference.
*/
package conform
