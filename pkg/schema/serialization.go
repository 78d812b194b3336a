package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON serializes the node as a JSON object, keeping field and rule order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range n.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteString(":{")
		for j, r := range f.Rules {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(r.Key)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(argValue(r.Arg))
			if err != nil {
				return nil, fmt.Errorf("field %s: rule %s: %w", f.Name, r.Key, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a schema document. Unknown rules are kept.
func (n *Node) UnmarshalJSON(data []byte) error {
	if n == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	if string(bytes.TrimSpace(data)) == "null" {
		*n = Node{}
		return nil
	}
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

// MarshalYAML renders the node as an ordered YAML mapping.
func (n *Node) MarshalYAML() (any, error) {
	if n == nil {
		return nil, nil
	}
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range n.fields {
		rules := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, r := range f.Rules {
			val := new(yaml.Node)
			if err := val.Encode(argValue(r.Arg)); err != nil {
				return nil, fmt.Errorf("field %s: rule %s: %w", f.Name, r.Key, err)
			}
			rules.Content = append(rules.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Key},
				val,
			)
		}
		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			rules,
		)
	}
	return out, nil
}

// UnmarshalYAML decodes a schema node embedded in a larger YAML document.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Decode(value)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

func argValue(arg Arg) any {
	switch a := arg.(type) {
	case TypeArg:
		return a.Name
	case BoundArg:
		return float64(a)
	case ChoicesArg:
		return []any(a)
	case TemplateArg:
		return a.Node
	case FlagArg:
		return bool(a)
	case UnknownArg:
		return a.Raw
	}
	return nil
}
