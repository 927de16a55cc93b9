package domain

import (
	"errors"
	"fmt"
)

// Input errors. All of them are caller mistakes and never worth retrying.
var (
	ErrCountOutOfRange  = errors.New("count out of range")
	ErrMissingField     = errors.New("missing field")
	ErrRangeViolation   = errors.New("range violation")
	ErrEmptyInput       = errors.New("empty input")
	ErrMalformedRequest = errors.New("malformed request")
)

// Field identifies which part of the request failed validation.
type Field string

const (
	FieldCount Field = "count"
	FieldAir   Field = "air"
	FieldDew   Field = "dew"
)

func (f Field) describe() string {
	switch f {
	case FieldAir:
		return "air temperature"
	case FieldDew:
		return "dew point"
	default:
		return "number of readings"
	}
}

// ValidationError reports the first validation failure in a request.
// It unwraps to one of ErrCountOutOfRange, ErrMissingField or ErrRangeViolation.
type ValidationError struct {
	Kind    error
	Reading int // 1-based; 0 when the failure concerns the count
	Field   Field
	Value   string // raw value as supplied, empty when missing
	detail  string
}

func (e *ValidationError) Error() string {
	if e.Reading == 0 {
		return e.detail
	}
	return fmt.Sprintf("invalid input at reading %d: %s", e.Reading, e.detail)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func countError(value, detail string) *ValidationError {
	return &ValidationError{Kind: ErrCountOutOfRange, Field: FieldCount, Value: value, detail: detail}
}

func missingError(reading int, field Field) *ValidationError {
	return &ValidationError{
		Kind:    ErrMissingField,
		Reading: reading,
		Field:   field,
		detail:  field.describe() + " is required",
	}
}

func rangeError(reading int, field Field, value string, lo, hi float64) *ValidationError {
	return &ValidationError{
		Kind:    ErrRangeViolation,
		Reading: reading,
		Field:   field,
		Value:   value,
		detail:  fmt.Sprintf("%s must be %g–%g°C (got %q)", field.describe(), lo, hi, value),
	}
}

// IsInputError reports whether err was caused by the request rather than the service.
func IsInputError(err error) bool {
	return ErrorKind(err) != "unknown"
}

// ErrorKind maps an error to a stable snake_case label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrCountOutOfRange):
		return "count_out_of_range"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrRangeViolation):
		return "range_violation"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrMalformedRequest):
		return "malformed_request"
	default:
		return "unknown"
	}
}
