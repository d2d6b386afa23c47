// Package validate checks request input and reports a structured list of
// field errors.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/go-playground/validator/v10"
)

const MinPasswordLength = 6

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is returned by every check in this package. It matches
// common.ErrorValidation under errors.Is.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error {
	return common.ErrorValidation
}

// Fields extracts the field list from err, or nil when err carries none.
func Fields(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type todoText struct {
	Text string `validate:"required"`
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
	})
	return v
}

// Credentials trims email and checks both fields. It returns the trimmed
// email on success.
func Credentials(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := check(credentials{Email: email, Password: password}); err != nil {
		return "", err
	}
	return email, nil
}

// TodoText trims text and requires it to be non-empty.
func TodoText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := check(todoText{Text: text}); err != nil {
		return "", err
	}
	return text, nil
}

func check(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out = append(out, FieldError{Field: field, Message: message(field, fe)})
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return fmt.Sprintf("%s is not a valid email", fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// Duplicate reports an email that is already registered in field-error form.
func Duplicate(email string) FieldErrors {
	return FieldErrors{{Field: "email", Message: fmt.Sprintf("%s is already registered", email)}}
}
