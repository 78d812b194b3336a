package schema

import "reflect"

// RuleName identifies a rule in the registry.
type RuleName int

const (
	// RuleUnknown marks a rule name the registry does not know. Such rules
	// are kept in the schema and skipped by the matcher.
	RuleUnknown RuleName = iota
	RuleType
	RuleMin
	RuleMax
	RuleFrom
	RuleMinSize
	RuleTemplate
	RuleRequired

	ruleCount
)

var ruleNames = [ruleCount]string{
	RuleUnknown:  "",
	RuleType:     "type",
	RuleMin:      "min",
	RuleMax:      "max",
	RuleFrom:     "from",
	RuleMinSize:  "minSize",
	RuleTemplate: "template",
	RuleRequired: "required",
}

// String returns the key used for the rule in schema documents.
func (r RuleName) String() string {
	if r < 0 || r >= ruleCount {
		return ""
	}
	return ruleNames[r]
}

// ParseRuleName resolves a rule key. Unrecognised keys yield RuleUnknown.
func ParseRuleName(key string) RuleName {
	for r := RuleType; r < ruleCount; r++ {
		if ruleNames[r] == key {
			return r
		}
	}
	return RuleUnknown
}

// Arg is the argument attached to a rule. Each rule has exactly one
// argument type:
//
//	type      TypeArg
//	min, max  BoundArg
//	minSize   BoundArg
//	from      ChoicesArg
//	template  TemplateArg
//	required  FlagArg
//	(unknown) UnknownArg
type Arg interface {
	isArg()
}

// TypeArg names the expected kind. Name keeps the declared spelling so
// unknown type names survive a round trip.
type TypeArg struct {
	Kind Kind
	Name string
}

// BoundArg is a numeric bound for min, max and minSize.
type BoundArg float64

// ChoicesArg is the candidate list for from.
type ChoicesArg []any

// TemplateArg is the nested schema for template.
type TemplateArg struct {
	Node *Node
}

// FlagArg is the flag for required.
type FlagArg bool

// UnknownArg carries the raw argument of an unrecognised rule.
type UnknownArg struct {
	Raw any
}

func (TypeArg) isArg()     {}
func (BoundArg) isArg()    {}
func (ChoicesArg) isArg()  {}
func (TemplateArg) isArg() {}
func (FlagArg) isArg()     {}
func (UnknownArg) isArg()  {}

// Rule is one entry of a field's rule set.
type Rule struct {
	Name RuleName
	// Key is the rule name as declared. It equals Name.String() for known rules.
	Key string
	Arg Arg
}

// Type builds a `type` rule for a recognised kind.
func Type(k Kind) Rule {
	return Rule{Name: RuleType, Key: RuleType.String(), Arg: TypeArg{Kind: k, Name: k.String()}}
}

// TypeName builds a `type` rule from a type name. Unknown names are kept and
// never validate.
func TypeName(name string) Rule {
	return Rule{Name: RuleType, Key: RuleType.String(), Arg: TypeArg{Kind: ParseKind(name), Name: name}}
}

// Min builds a `min` rule.
func Min(bound float64) Rule {
	return Rule{Name: RuleMin, Key: RuleMin.String(), Arg: BoundArg(bound)}
}

// Max builds a `max` rule.
func Max(bound float64) Rule {
	return Rule{Name: RuleMax, Key: RuleMax.String(), Arg: BoundArg(bound)}
}

// MinSize builds a `minSize` rule.
func MinSize(n int) Rule {
	return Rule{Name: RuleMinSize, Key: RuleMinSize.String(), Arg: BoundArg(n)}
}

// From builds a `from` rule.
func From(choices ...any) Rule {
	return Rule{Name: RuleFrom, Key: RuleFrom.String(), Arg: ChoicesArg(choices)}
}

// Template builds a `template` rule.
func Template(node *Node) Rule {
	return Rule{Name: RuleTemplate, Key: RuleTemplate.String(), Arg: TemplateArg{Node: node}}
}

// Required builds `required: true`.
func Required() Rule {
	return Rule{Name: RuleRequired, Key: RuleRequired.String(), Arg: FlagArg(true)}
}

// Unknown builds a rule the matcher skips, whatever its key.
func Unknown(key string, raw any) Rule {
	return Rule{Name: RuleUnknown, Key: key, Arg: UnknownArg{Raw: raw}}
}

// ruleFunc evaluates one rule. An argument of the wrong variant fails closed.
type ruleFunc func(v *Validator, value any, arg Arg, depth int) bool

// ruleTable is the registry. RuleUnknown has no entry and is skipped.
// It is filled in init because the template entry recurses back into match.
var ruleTable [ruleCount]ruleFunc

func init() {
	ruleTable = [ruleCount]ruleFunc{
		RuleType: func(v *Validator, value any, arg Arg, _ int) bool {
			a, ok := arg.(TypeArg)
			return ok && a.Kind.Predicate()(value)
		},
		RuleMin: func(v *Validator, value any, arg Arg, _ int) bool {
			a, ok := arg.(BoundArg)
			return ok && v.Min(value, float64(a))
		},
		RuleMax: func(v *Validator, value any, arg Arg, _ int) bool {
			a, ok := arg.(BoundArg)
			return ok && v.Max(value, float64(a))
		},
		RuleFrom: func(v *Validator, value any, arg Arg, _ int) bool {
			a, ok := arg.(ChoicesArg)
			return ok && v.From(value, a)
		},
		RuleMinSize: func(v *Validator, value any, arg Arg, _ int) bool {
			a, ok := arg.(BoundArg)
			return ok && v.MinSize(value, float64(a))
		},
		RuleTemplate: func(v *Validator, value any, arg Arg, depth int) bool {
			a, ok := arg.(TemplateArg)
			return ok && v.template(value, a.Node, depth+1)
		},
		RuleRequired: func(v *Validator, value any, arg Arg, _ int) bool {
			return v.Required(value, arg)
		},
	}
}

// sameValue is strict equality for decoded data: numbers compare by value
// across Go numeric types, scalars by value, nil only to nil. Maps, slices
// and funcs have no identity worth comparing and are never equal.
func sameValue(a, b any) bool {
	if af, ok := numeric(a); ok {
		bf, ok := numeric(b)
		return ok && af == bf
	}
	if _, ok := numeric(b); ok {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return false
	}
	if !ra.Comparable() {
		return false
	}
	return ra.Equal(rb)
}
