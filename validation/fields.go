package validation

import (
	"encoding/json"
	"strings"
)

// Params is a flat, loosely typed parameter mapping as received from a
// decoded request body or a direct call.
type Params map[string]any

// Kind is the primitive type of a parameter value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// TypeOf returns the Kind of v. Floats are never ints, even when integral,
// and a json.Number is an int only when it parses as one.
func TypeOf(v any) Kind {
	switch x := v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return KindInt
		}
		if _, err := x.Float64(); err == nil {
			return KindFloat
		}
		return KindOther
	default:
		return KindOther
	}
}

// FieldSpec declares the accepted kinds of one field. Optional fields may be
// absent; every other field must be present, even when null is accepted.
type FieldSpec struct {
	Name     string
	Kinds    []Kind
	Optional bool
}

func (f FieldSpec) accepts(k Kind) bool {
	for _, kind := range f.Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func (f FieldSpec) kindNames() string {
	names := make([]string, len(f.Kinds))
	for i, k := range f.Kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// CheckExistenceAndTypes verifies that every field in specs is present in
// data with an accepted kind, in table order. noun names the mapping in the
// returned message ("input data", "request data", ...).
func CheckExistenceAndTypes(data Params, specs []FieldSpec, noun string) error {
	for _, spec := range specs {
		value, ok := data[spec.Name]
		if !ok {
			if spec.Optional {
				continue
			}
			return newError(MissingField, spec.Name, "%s is missing field `%s`", noun, spec.Name)
		}
		if kind := TypeOf(value); !spec.accepts(kind) {
			return newError(TypeMismatch, spec.Name,
				"%s field `%s` has invalid type, expected one of `%s`, got `%s`",
				noun, spec.Name, spec.kindNames(), kind)
		}
	}
	return nil
}

// imputeDefaults copies every default whose key is missing from data.
// Present keys, including explicit nulls, are kept.
func imputeDefaults(data Params, defaults Params) Params {
	for key, value := range defaults {
		if _, ok := data[key]; !ok {
			data[key] = value
		}
	}
	return data
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case json.Number:
		f, _ := x.Float64()
		return f
	}
	return 0
}

func asInt(v any) int {
	if n, ok := v.(json.Number); ok {
		i, _ := n.Int64()
		return int(i)
	}
	return int(asFloat(v))
}

func asOptionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
