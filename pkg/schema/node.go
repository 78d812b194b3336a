package schema

// Field pairs a field name with its rule set.
type Field struct {
	Name  string
	Rules RuleSet
}

// RuleSet is the ordered list of rules attached to one field. Rules are
// evaluated in this order.
type RuleSet []Rule

// Get returns the first rule with the given name.
func (rs RuleSet) Get(name RuleName) (Rule, bool) {
	for _, r := range rs {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Lookup returns the rule declared under key, known or not.
func (rs RuleSet) Lookup(key string) (Rule, bool) {
	for _, r := range rs {
		if r.Key == key {
			return r, true
		}
	}
	return Rule{}, false
}

// IsRequired reports whether the set carries `required: true`.
func (rs RuleSet) IsRequired() bool {
	r, ok := rs.Get(RuleRequired)
	if !ok {
		return false
	}
	flag, ok := r.Arg.(FlagArg)
	return ok && bool(flag)
}

// Node is a schema node: an ordered mapping from field name to rule set.
// The zero value is an empty schema that accepts everything.
type Node struct {
	fields []Field
}

// Fields builds a node. A repeated field name keeps its first position and
// takes the last rule set, the way a repeated key behaves in a literal map.
func Fields(fields ...Field) *Node {
	n := &Node{fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		n.set(f)
	}
	return n
}

// F builds a field. Repeated rule keys keep their first position and take
// the last argument.
func F(name string, rules ...Rule) Field {
	rs := make(RuleSet, 0, len(rules))
	for _, r := range rules {
		rs = rs.with(r)
	}
	return Field{Name: name, Rules: rs}
}

func (rs RuleSet) with(r Rule) RuleSet {
	for i := range rs {
		if rs[i].Key == r.Key {
			rs[i] = r
			return rs
		}
	}
	return append(rs, r)
}

func (n *Node) set(f Field) {
	for i := range n.fields {
		if n.fields[i].Name == f.Name {
			n.fields[i].Rules = f.Rules
			return
		}
	}
	n.fields = append(n.fields, f)
}

// Len returns the number of declared fields.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.fields)
}

// Names returns the declared field names in order.
func (n *Node) Names() []string {
	if n == nil {
		return nil
	}
	names := make([]string, len(n.fields))
	for i, f := range n.fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the rule set declared for name.
func (n *Node) Field(name string) (RuleSet, bool) {
	if n == nil {
		return nil, false
	}
	for _, f := range n.fields {
		if f.Name == name {
			return f.Rules, true
		}
	}
	return nil, false
}

// Fields returns a copy of the declared fields in order.
func (n *Node) Fields() []Field {
	if n == nil {
		return nil
	}
	out := make([]Field, len(n.fields))
	copy(out, n.fields)
	return out
}

// Clone returns a deep copy of the node, including nested templates and
// candidate lists. Cloning a self-referencing node does not terminate.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{fields: make([]Field, len(n.fields))}
	for i, f := range n.fields {
		rules := make(RuleSet, len(f.Rules))
		for j, r := range f.Rules {
			switch a := r.Arg.(type) {
			case TemplateArg:
				r.Arg = TemplateArg{Node: a.Node.Clone()}
			case ChoicesArg:
				r.Arg = append(ChoicesArg(nil), a...)
			}
			rules[j] = r
		}
		out.fields[i] = Field{Name: f.Name, Rules: rules}
	}
	return out
}
