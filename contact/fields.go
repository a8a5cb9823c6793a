// Package contact implements the contact form submission flow: field
// validation, at-most-one in-flight send per form, and delivery backends.
package contact

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return fieldName(f.Tag.Get("form"))
		})
	})
	return validate
}

// Fields are the values a visitor types into the contact form.
type Fields struct {
	Name    string `form:"name" validate:"required,max=200"`
	Email   string `form:"email" validate:"required,email,max=320"`
	Message string `form:"message" validate:"required,max=5000"`
}

// Trimmed returns f with surrounding whitespace removed.
func (f Fields) Trimmed() Fields {
	return Fields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// Empty reports whether every field is blank.
func (f Fields) Empty() bool {
	return f.Name == "" && f.Email == "" && f.Message == ""
}

// Validate checks f and returns a *ValidationError for the first bad field.
func (f Fields) Validate() error {
	return toValidationError(Validator().Struct(f))
}

// Subscription is a newsletter sign-up.
type Subscription struct {
	Email string `form:"email" validate:"required,email,max=320"`
}

// Validate checks the subscription email.
func (s Subscription) Validate() error {
	return toValidationError(Validator().Struct(s))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}

func fieldName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}
