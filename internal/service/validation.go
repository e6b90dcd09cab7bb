// internal/service/validation.go
package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidationError carries per-field messages for a rejected form. It
// matches domain.ErrInvalidInput and, when set, the underlying Cause.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{domain.ErrInvalidInput, e.Cause}
	}
	return []error{domain.ErrInvalidInput}
}

// FieldErrors extracts the per-field messages from err, or nil.
func FieldErrors(err error) map[string]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

func fieldError(field, message string, cause error) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}, Cause: cause}
}

// newValidator returns a validator that reports fields by their form name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs v over input and converts failures to a ValidationError.
func validateStruct(v *validator.Validate, input interface{}) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := fields[fe.Field()]; ok {
			continue
		}
		fields[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "eqfield":
		return "Values do not match."
	case "excludesall":
		return "Contains characters that are not allowed."
	default:
		return "Invalid value."
	}
}

// uniqueFieldError maps a repository uniqueness error to the form field it
// concerns. It returns err unchanged for anything else.
func uniqueFieldError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return fieldError("username", "Username is already taken.", err)
	case errors.Is(err, domain.ErrEmailTaken):
		return fieldError("email", "Email is already registered.", err)
	case errors.Is(err, domain.ErrGitHandleTaken):
		return fieldError("git_handle", "This git handle is already registered.", err)
	default:
		return err
	}
}
