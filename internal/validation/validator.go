package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/UsersAPI_Go/internal/domain"
)

// TagLogin is the struct tag for the login charset rule.
const TagLogin = "login"

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New()

	// Register custom validation for login charset
	_ = v.RegisterValidation(TagLogin, validateLogin)

	return &Validator{validate: v}
}

// IsValidLogin reports whether login is non-empty and alphanumeric.
func IsValidLogin(login string) bool {
	return loginPattern.MatchString(login)
}

// ValidateStruct validates a struct using tags and returns every violation
// as a *domain.ValidationError keyed by struct field name, or nil.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return FormatValidationError(err)
}

// FormatValidationError converts validator errors into field-keyed messages.
// Errors that are not validator.ValidationErrors are returned unchanged.
func FormatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := domain.NewValidationError()
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out.Add(field, domain.ErrMsgFieldRequired)
		case TagLogin:
			out.Add(field, domain.ErrMsgLoginCharset)
		default:
			out.Add(field, "Invalid value")
		}
	}
	return out.OrNil()
}

// Custom validation function for login. Empty values are left to the
// 'required' tag.
func validateLogin(fl validator.FieldLevel) bool {
	login := fl.Field().String()
	if login == "" {
		return true
	}
	return IsValidLogin(login)
}
