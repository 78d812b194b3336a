package conform_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/schema"
)

// ExampleEngine_ValidateNamed stores a cooking profile schema and checks two
// profiles against it.
func ExampleEngine_ValidateNamed() {
	eng, err := conform.New()
	if err != nil {
		log.Fatal(err)
	}

	profile, err := schema.Parse([]byte(`
name:
  type: String
  required: true
stages:
  type: Array
  minSize: 1
  template:
    time_sec: {type: Integer, min: 0, max: 1000, required: true}
    power: {type: Integer, from: [0, 50, 60, 70, 80, 100]}
`))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := eng.Store().Put(ctx, "cook", profile); err != nil {
		log.Fatal(err)
	}

	rice := map[string]any{
		"name": "rice",
		"stages": []any{
			map[string]any{"time_sec": 600, "power": 100},
			map[string]any{"time_sec": 300, "power": 50},
		},
	}
	burnt := map[string]any{
		"name":   "toast",
		"stages": []any{map[string]any{"time_sec": 1500, "power": 100}},
	}

	for _, subject := range []map[string]any{rice, burnt} {
		ok, err := eng.ValidateNamed(ctx, "cook", subject)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(subject["name"], ok)
	}
	// Output:
	// rice true
	// toast false
}
