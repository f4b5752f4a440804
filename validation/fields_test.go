package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{"nil", nil, KindNull},
		{"string", "a", KindString},
		{"bool", false, KindBool},
		{"int", 3, KindInt},
		{"int64", int64(3), KindInt},
		{"uint8", uint8(3), KindInt},
		{"float64", 3.0, KindFloat},
		{"float32", float32(1.5), KindFloat},
		{"json int", json.Number("15"), KindInt},
		{"json float", json.Number("15.5"), KindFloat},
		{"json exponent", json.Number("1e3"), KindFloat},
		{"slice", []string{"a"}, KindOther},
		{"map", map[string]any{}, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.value); got != tt.want {
				t.Errorf("TypeOf(%v) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestCheckExistenceAndTypes(t *testing.T) {
	specs := []FieldSpec{
		{Name: "name", Kinds: []Kind{KindString}},
		{Name: "size", Kinds: []Kind{KindInt, KindNull}},
		{Name: "extra", Kinds: []Kind{KindFloat}, Optional: true},
	}

	tests := []struct {
		name    string
		data    Params
		wantErr string
	}{
		{"All present", Params{"name": "a", "size": 1, "extra": 1.5}, ""},
		{"Null accepted", Params{"name": "a", "size": nil}, ""},
		{"Unknown keys ignored", Params{"name": "a", "size": 1, "other": true}, ""},
		{"Missing required", Params{"size": 1}, "thing is missing field `name`"},
		{"Missing nullable", Params{"name": "a"}, "thing is missing field `size`"},
		{"Wrong type", Params{"name": 1, "size": 1}, "thing field `name` has invalid type, expected one of `string`, got `int`"},
		{"Wrong optional type", Params{"name": "a", "size": 1, "extra": "x"}, "thing field `extra` has invalid type, expected one of `float`, got `string`"},
		{"First failure in table order", Params{"name": 1}, "thing field `name` has invalid type, expected one of `string`, got `int`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckExistenceAndTypes(tt.data, specs, "thing")
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("CheckExistenceAndTypes() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("CheckExistenceAndTypes() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestErrorKindOf(t *testing.T) {
	err := CheckExistenceAndTypes(Params{}, []FieldSpec{{Name: "a", Kinds: []Kind{KindString}}}, "data")

	kind, ok := ErrorKindOf(err)
	if !ok || kind != MissingField {
		t.Errorf("ErrorKindOf() = %s, %v, want %s, true", kind, ok, MissingField)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "a" {
		t.Errorf("expected *ValidationError for field a, got %#v", err)
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if !IsValidationError(wrapped) {
		t.Errorf("IsValidationError() = false for wrapped validation error")
	}
	if IsValidationError(errors.New("disk full")) {
		t.Errorf("IsValidationError() = true for plain error")
	}
}
