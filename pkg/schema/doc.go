// Package schema decides whether a nested value conforms to a declarative schema.
//
// A schema is a Node: an ordered mapping from field name to a RuleSet. Rules
// come from a fixed registry:
//
//	type      one of Boolean, Integer, Float, String, Object, Array, Function
//	min, max  numeric bounds (inclusive)
//	minSize   minimum sequence length
//	from      allowed values
//	template  nested Node, applied to the value or to each element of a sequence
//	required  the field must be present
//
// Schemas can be built in code:
//
//	stage := schema.Fields(
//	    schema.F("time_sec", schema.Type(schema.KindInteger), schema.Min(0), schema.Max(1000), schema.Required()),
//	)
//	profile := schema.Fields(
//	    schema.F("stages", schema.Type(schema.KindArray), schema.MinSize(1), schema.Template(stage)),
//	)
//
//	ok := schema.ValidateAnySchema(map[string]any{
//	    "stages": []any{map[string]any{"time_sec": 500}},
//	}, profile)
//
// or decoded from YAML or JSON with Parse, which preserves declaration order:
//
//	node, err := schema.Parse([]byte(`{"name": {"type": "String", "required": true}}`))
//
// The result of a match is a single bool. Required fields are checked first,
// then every rule of every field present in the value, in declared order; the
// first failing rule ends the match. Keys not declared in the schema are
// ignored and unknown rule names are skipped.
//
// Integer and Float accept unsigned numbers only, and Object accepts nil and
// sequences. Both behaviours are relied upon by existing schemas.
//
// Template nesting follows the schema. A Node built in code that contains
// itself recurses without end unless the Validator is created WithMaxDepth.
package schema
