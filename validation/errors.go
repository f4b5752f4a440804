package validation

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a parameter mapping was rejected.
type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	TypeMismatch
	InvalidExtension
	InvalidDeviceSyntax
	InvalidEnumValue
	InvalidNumericRange
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case TypeMismatch:
		return "type_mismatch"
	case InvalidExtension:
		return "invalid_extension"
	case InvalidDeviceSyntax:
		return "invalid_device_syntax"
	case InvalidEnumValue:
		return "invalid_enum_value"
	case InvalidNumericRange:
		return "invalid_numeric_range"
	default:
		return "unknown"
	}
}

// ValidationError is the single error type returned by every check in this
// package. Error() yields the human readable message only.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, field, format string, args ...any) error {
	return &ValidationError{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorKindOf reports the kind of a ValidationError anywhere in err's chain.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind, true
	}
	return 0, false
}

// IsValidationError reports whether err was produced by a validator, as
// opposed to an internal failure.
func IsValidationError(err error) bool {
	_, ok := ErrorKindOf(err)
	return ok
}
