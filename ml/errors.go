package ml

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInference is wrapped by every failure of the classifier call.
	ErrInference = errors.New("prediction failed")
	// ErrModelLoad is wrapped by every failure to load the model artifact.
	ErrModelLoad = errors.New("model load failed")
)

// FieldError describes one rejected input field. Field is the column name,
// Key the matching CustomerRecord JSON key.
type FieldError struct {
	Field   string `json:"field"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// NewFieldError builds a FieldError for the column field.
func NewFieldError(field, value, message string) FieldError {
	return FieldError{Field: field, Key: RecordKey(field), Value: value, Message: message}
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is returned when a record holds values the encoder has no
// mapping for. It lists every offending field.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid customer record: " + strings.Join(parts, "; ")
}

// Field returns the error reported for field, if any.
func (e *ValidationError) Field(field string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldError{}, false
}

func (e *ValidationError) add(field, value, message string) {
	e.Fields = append(e.Fields, NewFieldError(field, value, message))
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
