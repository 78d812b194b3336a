package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeOption configures schema decoding.
type DecodeOption func(*decoder)

// WithStrictRules rejects rule names the registry does not know instead of
// keeping them as skipped rules.
func WithStrictRules() DecodeOption {
	return func(d *decoder) {
		d.strict = true
	}
}

// Parse decodes a schema document. JSON documents are accepted as YAML.
// Field and rule order is preserved. Rule arguments are checked here, so a
// returned Node never carries an argument of the wrong shape.
func Parse(data []byte, opts ...DecodeOption) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return Decode(&doc, opts...)
}

// ParseFile reads and decodes a schema file (YAML or JSON).
func ParseFile(path string, opts ...DecodeOption) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	node, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

// Decode converts a YAML node tree into a schema Node.
func Decode(value *yaml.Node, opts ...DecodeOption) (*Node, error) {
	d := &decoder{active: make(map[*yaml.Node]bool)}
	for _, opt := range opts {
		opt(d)
	}

	if value == nil || value.Kind == 0 {
		return nil, &DecodeError{Reason: "empty document"}
	}
	if value.Kind == yaml.DocumentNode {
		if len(value.Content) == 0 {
			return nil, &DecodeError{Reason: "empty document"}
		}
		value = value.Content[0]
	}

	node := d.node(value, "")
	switch len(d.errs) {
	case 0:
		return node, nil
	case 1:
		return nil, d.errs[0]
	default:
		return nil, &AggregateError{Errors: d.errs}
	}
}

// maxExpandedNodes bounds the mappings visited while following aliases.
const maxExpandedNodes = 100_000

type decoder struct {
	strict bool
	errs   []error

	// active holds the mappings on the current decode path.
	active   map[*yaml.Node]bool
	expanded int
	overflow bool
}

// enter resolves aliases in value and marks the target as being decoded.
// It fails on an alias back into a mapping still being decoded and once the
// document expands past maxExpandedNodes.
func (d *decoder) enter(value *yaml.Node, path string) (*yaml.Node, bool) {
	if d.overflow {
		return nil, false
	}
	target := resolve(value)
	d.expanded++
	if d.expanded > maxExpandedNodes {
		d.overflow = true
		d.fail(path, "", value, nil, "schema expands to more than %d nodes", maxExpandedNodes)
		return nil, false
	}
	if d.active[target] {
		d.fail(path, "", value, nil, "recursive alias")
		return nil, false
	}
	d.active[target] = true
	return target, true
}

func (d *decoder) leave(target *yaml.Node) {
	delete(d.active, target)
}

func (d *decoder) fail(path, rule string, value *yaml.Node, err error, format string, args ...any) {
	de := &DecodeError{Path: path, Rule: rule, Reason: fmt.Sprintf(format, args...), Err: err}
	if value != nil {
		de.Line = value.Line
	}
	d.errs = append(d.errs, de)
}

func (d *decoder) node(value *yaml.Node, path string) *Node {
	value, ok := d.enter(value, path)
	if !ok {
		return nil
	}
	defer d.leave(value)
	if value.Kind != yaml.MappingNode {
		d.fail(path, "", value, nil, "schema node must be a mapping, got %s", describe(value))
		return nil
	}

	n := &Node{fields: make([]Field, 0, len(value.Content)/2)}
	seen := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := resolve(value.Content[i]), value.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			d.fail(path, "", key, nil, "field name must be a scalar, got %s", describe(key))
			continue
		}
		fieldPath := joinPath(path, key.Value)
		if seen[key.Value] {
			d.fail(fieldPath, "", key, nil, "duplicate field")
			continue
		}
		seen[key.Value] = true
		n.fields = append(n.fields, Field{Name: key.Value, Rules: d.rules(val, fieldPath)})
	}
	return n
}

func (d *decoder) rules(value *yaml.Node, path string) RuleSet {
	value, ok := d.enter(value, path)
	if !ok {
		return nil
	}
	defer d.leave(value)
	if value.Kind != yaml.MappingNode {
		d.fail(path, "", value, nil, "rule set must be a mapping, got %s", describe(value))
		return nil
	}

	rs := make(RuleSet, 0, len(value.Content)/2)
	seen := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := resolve(value.Content[i]), resolve(value.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			d.fail(path, "", key, nil, "rule name must be a scalar, got %s", describe(key))
			continue
		}
		if seen[key.Value] {
			d.fail(path, key.Value, key, nil, "duplicate rule")
			continue
		}
		seen[key.Value] = true

		if r, ok := d.rule(key.Value, val, path); ok {
			rs = append(rs, r)
		}
	}
	return rs
}

func (d *decoder) rule(key string, val *yaml.Node, path string) (Rule, bool) {
	name := ParseRuleName(key)
	switch name {
	case RuleType:
		if !isScalar(val, "!!str") {
			d.fail(path, key, val, nil, "type must be a string, got %s", describe(val))
			return Rule{}, false
		}
		return TypeName(val.Value), true

	case RuleMin, RuleMax, RuleMinSize:
		if !isScalar(val, "!!int") && !isScalar(val, "!!float") {
			d.fail(path, key, val, nil, "%s must be a number, got %s", key, describe(val))
			return Rule{}, false
		}
		var bound float64
		if err := val.Decode(&bound); err != nil {
			d.fail(path, key, val, err, "%s must be a number: %v", key, err)
			return Rule{}, false
		}
		return Rule{Name: name, Key: key, Arg: BoundArg(bound)}, true

	case RuleFrom:
		if val.Kind != yaml.SequenceNode {
			d.fail(path, key, val, nil, "from must be a sequence, got %s", describe(val))
			return Rule{}, false
		}
		choices := make(ChoicesArg, 0, len(val.Content))
		for _, el := range val.Content {
			var choice any
			if err := el.Decode(&choice); err != nil {
				d.fail(path, key, el, err, "invalid candidate: %v", err)
				return Rule{}, false
			}
			choices = append(choices, choice)
		}
		return Rule{Name: name, Key: key, Arg: choices}, true

	case RuleTemplate:
		child := d.node(val, path)
		if child == nil {
			return Rule{}, false
		}
		return Template(child), true

	case RuleRequired:
		if !isScalar(val, "!!bool") {
			d.fail(path, key, val, nil, "required must be a boolean, got %s", describe(val))
			return Rule{}, false
		}
		var flag bool
		if err := val.Decode(&flag); err != nil {
			d.fail(path, key, val, err, "required must be a boolean: %v", err)
			return Rule{}, false
		}
		return Rule{Name: name, Key: key, Arg: FlagArg(flag)}, true
	}

	if d.strict {
		d.fail(path, key, val, ErrUnknownRule, "unknown rule")
		return Rule{}, false
	}
	var raw any
	if err := val.Decode(&raw); err != nil {
		raw = val.Value
	}
	return Unknown(key, raw), true
}

func resolve(value *yaml.Node) *yaml.Node {
	for value != nil && value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	return value
}

func isScalar(value *yaml.Node, tag string) bool {
	return value.Kind == yaml.ScalarNode && value.ShortTag() == tag
}

func describe(value *yaml.Node) string {
	switch value.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		switch value.ShortTag() {
		case "!!null":
			return "null"
		case "!!str":
			return "string"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		}
		return value.ShortTag()
	}
	return "unknown"
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
