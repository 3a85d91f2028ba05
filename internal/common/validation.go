package common

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldError represents a single field-level validation failure
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationFailure carries all field errors from validating one payload.
// It wraps ErrValidation so errors.Is works across layers.
type ValidationFailure struct {
	Fields []FieldError
}

func (v *ValidationFailure) Error() string {
	msgs := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v *ValidationFailure) Unwrap() error { return ErrValidation }

// FieldMap returns errors keyed by field name, first message wins.
func (v *ValidationFailure) FieldMap() map[string]string {
	m := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}

// Validator collects field errors
type Validator struct {
	fields []FieldError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// Add records a failure for a field.
func (v *Validator) Add(field, message string) *Validator {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
	return v
}

// Require fails the field when the value is blank after trimming.
func (v *Validator) Require(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+" is required")
	}
	return v
}

// MinLength fails the field when the value is shorter than min runes.
func (v *Validator) MinLength(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.Add(field, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	return v
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email fails the field when the value is not a plausible address.
func (v *Validator) Email(field, value string) *Validator {
	if !emailRe.MatchString(value) {
		v.Add(field, "Invalid email address")
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.fields) > 0
}

// Err returns the collected failure, or nil when everything passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	fields := make([]FieldError, len(v.fields))
	copy(fields, v.fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &ValidationFailure{Fields: fields}
}
