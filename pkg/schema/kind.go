package schema

import (
	"encoding/json"
	"reflect"
	"regexp"
)

// Kind identifies a primitive kind that a `type` rule can name.
type Kind int

const (
	// KindUnknown is the kind of any type name outside the recognised set.
	// It never validates.
	KindUnknown Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindObject
	KindArray
	KindFunction

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:  "",
	KindBoolean:  "Boolean",
	KindInteger:  "Integer",
	KindFloat:    "Float",
	KindString:   "String",
	KindObject:   "Object",
	KindArray:    "Array",
	KindFunction: "Function",
}

// Predicate reports whether a value belongs to a kind. Predicates never panic.
type Predicate func(value any) bool

var predicates = [kindCount]Predicate{
	KindUnknown:  func(any) bool { return false },
	KindBoolean:  IsBoolean,
	KindInteger:  IsInteger,
	KindFloat:    IsFloat,
	KindString:   IsString,
	KindObject:   IsObject,
	KindArray:    IsArray,
	KindFunction: IsFunction,
}

// String returns the type name used in schemas, e.g. "Integer".
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return ""
	}
	return kindNames[k]
}

// Predicate returns the predicate for k. Out-of-range kinds behave as KindUnknown.
func (k Kind) Predicate() Predicate {
	if k <= KindUnknown || k >= kindCount {
		return predicates[KindUnknown]
	}
	return predicates[k]
}

// ParseKind resolves a schema type name. Names are case-sensitive; anything
// outside the seven recognised names yields KindUnknown.
func ParseKind(name string) Kind {
	for k := KindBoolean; k < kindCount; k++ {
		if kindNames[k] == name {
			return k
		}
	}
	return KindUnknown
}

// Kinds lists the recognised kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindBoolean; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

var (
	integerPattern = regexp.MustCompile(`^[0-9]+$`)
	floatPattern   = regexp.MustCompile(`^[0-9]*(\.[0-9]+)?$`)
)

// IsBoolean reports whether value is a bool.
func IsBoolean(value any) bool {
	return kindOf(value) == reflect.Bool
}

// IsString reports whether value is a string. json.Number is a number, not a string.
func IsString(value any) bool {
	if _, ok := value.(json.Number); ok {
		return false
	}
	return kindOf(value) == reflect.String
}

// IsArray reports whether value is an ordered sequence (slice or array).
func IsArray(value any) bool {
	k := kindOf(value)
	return k == reflect.Slice || k == reflect.Array
}

// IsObject reports whether value is what a generic "typeof" check calls an
// object. Sequences and nil are objects too; callers rely on both.
func IsObject(value any) bool {
	if value == nil {
		return true
	}
	switch kindOf(value) {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return true
	}
	return false
}

// IsFunction reports whether value is callable.
func IsFunction(value any) bool {
	return kindOf(value) == reflect.Func
}

// IsInteger reports whether value is a number whose decimal rendering is
// digits only. Negative numbers carry a sign and are rejected.
func IsInteger(value any) bool {
	text, ok := numberText(value)
	return ok && integerPattern.MatchString(text)
}

// IsFloat reports whether value is a number whose decimal rendering is
// unsigned, with an optional fractional part. Integers are floats.
func IsFloat(value any) bool {
	text, ok := numberText(value)
	return ok && floatPattern.MatchString(text)
}

func kindOf(value any) reflect.Kind {
	if value == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(value).Kind()
}
