package domain

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"reflect"
	"regexp"
	"strings"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// messages maps a failed validation tag to the text shown next to the field
var messages = map[string]string{
	"required":   "Required",
	"notblank":   "Required",
	"emailaddr":  "Invalid email",
	"eqfield":    "Passwords don't match",
	"cardnumber": "Invalid card number",
	"expiry":     "Invalid expiry",
	"cvv":        "Invalid CVV",
	"category":   "Unknown category",
}

type Validation struct {
	validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()

	// report fields by their json names so errors line up with the form inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("emailaddr", validateEmail)
	v.RegisterValidation("cardnumber", validateCardNumber)
	v.RegisterValidation("expiry", validateExpiry)
	v.RegisterValidation("cvv", validateCVV)
	v.RegisterValidation("category", validateCategory)
	return &Validation{validator: v}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailRe.MatchString(fl.Field().String())
}

// validateCardNumber accepts 16 or more digits, spaces ignored
func validateCardNumber(fl validator.FieldLevel) bool {
	digits := strings.ReplaceAll(fl.Field().String(), " ", "")
	if len(digits) < 16 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateExpiry accepts MM/YY
func validateExpiry(fl validator.FieldLevel) bool {
	return expiryRe.MatchString(fl.Field().String())
}

func validateCVV(fl validator.FieldLevel) bool {
	return cvvRe.MatchString(fl.Field().String())
}

func validateCategory(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Valid()
}

// ValidationError wraps the validator's FieldError
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (v ValidationError) Error() string {
	return fmt.Sprintf("Field '%s': %s", v.Field, v.Message)
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

// Error implements the error interface so a failed form can travel as an error value
func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Fields returns the errors keyed by field name
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

func (v *Validation) Validate(i interface{}) ValidationErrors {
	var errs ValidationErrors

	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return errs
}

func message(fe validator.FieldError) string {
	if fe.Tag() == "min" && fe.Kind() == reflect.String {
		return fmt.Sprintf("Min %s characters", fe.Param())
	}
	if m, ok := messages[fe.Tag()]; ok {
		return m
	}
	return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
}
