package policy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedType  = errors.New("unsupported policy type")
	ErrSchemaValidation = errors.New("policy schema validation failed")
	ErrDuplicateType    = errors.New("policy type given more than once")
)

// UnsupportedTypeError means the caller asked for a policy type this server does not know.
type UnsupportedTypeError struct {
	PolicyType string
}

func (e *UnsupportedTypeError) Error() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return fmt.Sprintf("unsupported policy type %q (supported: %s)", e.PolicyType, strings.Join(names, ", "))
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// SchemaValidationError describes a malformed block of a known policy type.
// MissingFields and UnknownFields hold field paths such as "topicsConfig[0].definition";
// InvalidFields hold "path: reason" entries.
type SchemaValidationError struct {
	PolicyType    Type
	MissingFields []string
	UnknownFields []string
	InvalidFields []string
}

func (e *SchemaValidationError) Error() string {
	var parts []string
	if len(e.MissingFields) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.MissingFields, ", "))
	}
	if len(e.UnknownFields) > 0 {
		parts = append(parts, "unknown fields: "+strings.Join(e.UnknownFields, ", "))
	}
	if len(e.InvalidFields) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.InvalidFields, "; "))
	}
	return fmt.Sprintf("invalid %s policy: %s", e.PolicyType, strings.Join(parts, "; "))
}

func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

func (e *SchemaValidationError) empty() bool {
	return len(e.MissingFields) == 0 && len(e.UnknownFields) == 0 && len(e.InvalidFields) == 0
}
