package schema_test

import (
	"fmt"

	"github.com/aretw0/conform/pkg/schema"
)

func ExampleValidateAnySchema() {
	stage := schema.Fields(
		schema.F("time_sec", schema.Type(schema.KindInteger), schema.Min(0), schema.Max(1000), schema.Required()),
	)
	profile := schema.Fields(
		schema.F("stages", schema.Type(schema.KindArray), schema.MinSize(1), schema.Template(stage)),
	)

	fmt.Println(schema.ValidateAnySchema(map[string]any{
		"stages": []any{map[string]any{"time_sec": 500}},
	}, profile))
	fmt.Println(schema.ValidateAnySchema(map[string]any{
		"stages": []any{map[string]any{"time_sec": 1500}},
	}, profile))
	fmt.Println(schema.ValidateAnySchema(map[string]any{
		"stages": []any{},
	}, profile))
	// Output:
	// true
	// false
	// false
}

func ExampleParse() {
	node, err := schema.Parse([]byte(`
percent:
  type: Integer
  from: [0, 50, 60, 70]
`))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(schema.ValidateAnySchema(map[string]any{"percent": 60}, node))
	fmt.Println(schema.ValidateAnySchema(map[string]any{"percent": 65}, node))
	// Output:
	// true
	// false
}

func ExampleEvalType() {
	fmt.Println(schema.EvalType(5, "Integer"))
	fmt.Println(schema.EvalType(-5, "Integer"))
	fmt.Println(schema.EvalType(nil, "Object"))
	fmt.Println(schema.EvalType(5, "Number"))
	// Output:
	// true
	// false
	// true
	// false
}
