package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedMode is returned when a request names a transport mode
// outside the supported set. Modes never fall back to a silent default.
var ErrUnsupportedMode = errors.New("unsupported transport mode")

// Validation error codes. Each code identifies one class of input defect.
const (
	CodeInvalidDistance   = "INVALID_DISTANCE"
	CodeInvalidWeight     = "INVALID_WEIGHT"
	CodeInvalidVehicle    = "INVALID_VEHICLE"
	CodeInvalidFuelType   = "INVALID_FUEL_TYPE"
	CodeInvalidLoadFactor = "INVALID_LOAD_FACTOR"
	CodeInvalidPrecision  = "INVALID_PRECISION"
	CodeInvalidBatch      = "INVALID_BATCH"
)

// CalculationError describes one validation defect. It is a value, not a
// panic or wrapped exception; a single validation pass may produce several.
type CalculationError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface for a single calculation error.
func (e CalculationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationErrors aggregates every defect found in one validation pass.
// The pipeline reports all of them together, never just the first.
type ValidationErrors []CalculationError

// Error implements the error interface by joining all messages.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Has reports whether the list contains an error with the given code.
func (v ValidationErrors) Has(code string) bool {
	for _, e := range v {
		if e.Code == code {
			return true
		}
	}
	return false
}

// AsValidationErrors extracts a ValidationErrors list from err, if present.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
