package schema

import (
	"io"
	"log/slog"
	"reflect"
)

// Validator matches values against schema nodes. It holds configuration
// only, never per-call state, so one Validator may serve concurrent calls.
type Validator struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used to report the rule that failed a match.
// Reports are emitted at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithMaxDepth bounds template recursion. A match that would descend more
// than n template levels fails. Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxDepth = n
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Default is an unbounded Validator with logging disabled.
var Default = New()

// ValidateAnySchema reports whether subject conforms to node using Default.
func ValidateAnySchema(subject any, node *Node) bool {
	return Default.ValidateAnySchema(subject, node)
}

// EvalType reports whether value matches the named type using Default.
func EvalType(value any, typeName string) bool {
	return Default.EvalType(value, typeName)
}

// ValidateAnySchema reports whether subject conforms to node.
//
// Required fields missing from subject fail the match. Every field present
// in both subject and node then has its rules applied in declared order and
// the first failing rule ends the match. Subject keys the node does not
// declare are ignored. A nil node is an empty schema.
func (v *Validator) ValidateAnySchema(subject any, node *Node) bool {
	return v.match(subject, node, 0)
}

func (v *Validator) match(subject any, node *Node, depth int) bool {
	if v.maxDepth > 0 && depth > v.maxDepth {
		v.logger.Debug("schema depth exceeded", "depth", depth, "max_depth", v.maxDepth)
		return false
	}
	if !v.ValidateRequires(subject, node) {
		return false
	}

	lookup, ok := mapping(subject)
	if !ok || node == nil {
		return true
	}

	for _, f := range node.fields {
		value, present := lookup(f.Name)
		if !present {
			continue
		}
		for _, r := range f.Rules {
			fn := ruleTable[r.Name]
			if fn == nil {
				continue
			}
			if !fn(v, value, r.Arg, depth) {
				v.logger.Debug("schema rule failed", "field", f.Name, "rule", r.Key, "depth", depth)
				return false
			}
		}
	}
	return true
}

// ValidateRequires is the presence check: it fails when a field marked
// `required: true` is absent from subject. A nil subject is an empty
// mapping; any other non-mapping subject has no keys.
func (v *Validator) ValidateRequires(subject any, node *Node) bool {
	if node == nil {
		return true
	}
	lookup, ok := mapping(subject)
	for _, f := range node.fields {
		if !f.Rules.IsRequired() {
			continue
		}
		if !ok {
			v.logger.Debug("schema required field on non-mapping subject", "field", f.Name)
			return false
		}
		if _, present := lookup(f.Name); !present {
			v.logger.Debug("schema required field missing", "field", f.Name)
			return false
		}
	}
	return true
}

// Template applies node to subject, or to each element when subject is a
// sequence. An empty sequence passes.
func (v *Validator) Template(subject any, node *Node) bool {
	return v.template(subject, node, 1)
}

func (v *Validator) template(subject any, node *Node, depth int) bool {
	if !IsArray(subject) {
		return v.match(subject, node, depth)
	}
	rv := reflect.ValueOf(subject)
	for i := 0; i < rv.Len(); i++ {
		if !v.match(rv.Index(i).Interface(), node, depth) {
			return false
		}
	}
	return true
}

// EvalType reports whether value matches the named type. Unknown names
// never match.
func (v *Validator) EvalType(value any, typeName string) bool {
	return ParseKind(typeName).Predicate()(value)
}

// IsBoolean is the Boolean type predicate.
func (v *Validator) IsBoolean(value any) bool { return IsBoolean(value) }

// IsInteger is the Integer type predicate.
func (v *Validator) IsInteger(value any) bool { return IsInteger(value) }

// IsFloat is the Float type predicate.
func (v *Validator) IsFloat(value any) bool { return IsFloat(value) }

// IsString is the String type predicate.
func (v *Validator) IsString(value any) bool { return IsString(value) }

// IsObject is the Object type predicate.
func (v *Validator) IsObject(value any) bool { return IsObject(value) }

// IsArray is the Array type predicate.
func (v *Validator) IsArray(value any) bool { return IsArray(value) }

// IsFunction is the Function type predicate.
func (v *Validator) IsFunction(value any) bool { return IsFunction(value) }

// Min reports whether value is a number no smaller than bound.
func (v *Validator) Min(value any, bound float64) bool {
	if !IsInteger(value) && !IsFloat(value) {
		return false
	}
	n, _ := numeric(value)
	return n >= bound
}

// Max reports whether value is a number no larger than bound.
func (v *Validator) Max(value any, bound float64) bool {
	if !IsInteger(value) && !IsFloat(value) {
		return false
	}
	n, _ := numeric(value)
	return n <= bound
}

// MinSize reports whether value is a sequence with at least bound elements.
func (v *Validator) MinSize(value any, bound float64) bool {
	if !IsArray(value) {
		return false
	}
	return float64(reflect.ValueOf(value).Len()) >= bound
}

// From reports whether value equals one of choices.
func (v *Validator) From(value any, choices []any) bool {
	for _, c := range choices {
		if sameValue(value, c) {
			return true
		}
	}
	return false
}

// Required always passes; required-ness is enforced by ValidateRequires.
func (v *Validator) Required(any, Arg) bool { return true }

// mapping returns a key lookup for subject. nil is an empty mapping; maps
// keyed by strings (or by interface values, as some YAML decoders produce)
// are mappings; anything else is not.
func mapping(subject any) (func(string) (any, bool), bool) {
	switch m := subject.(type) {
	case nil:
		return func(string) (any, bool) { return nil, false }, true
	case map[string]any:
		return func(key string) (any, bool) {
			value, ok := m[key]
			return value, ok
		}, true
	}

	rv := reflect.ValueOf(subject)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	keyType := rv.Type().Key()
	switch keyType.Kind() {
	case reflect.String:
	case reflect.Interface:
		if !reflect.TypeOf("").AssignableTo(keyType) {
			return nil, false
		}
	default:
		return nil, false
	}
	return func(key string) (any, bool) {
		kv := reflect.ValueOf(key)
		if keyType.Kind() == reflect.String {
			kv = kv.Convert(keyType)
		}
		value := rv.MapIndex(kv)
		if !value.IsValid() {
			return nil, false
		}
		return value.Interface(), true
	}, true
}
