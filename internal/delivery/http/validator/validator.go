// Package validator adapts go-playground/validator to echo's Validator
// interface and registers the project's custom rules.
package validator

import (
	"unicode"

	domainerrors "roster/internal/domain/errors"

	validatorlib "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator wraps the validator library for echo.
type CustomValidator struct {
	validate *validatorlib.Validate
}

// New builds the validator with all custom rules registered.
func New() *CustomValidator {
	validate := validatorlib.New(validatorlib.WithRequiredStructEnabled())

	// Registration errors only occur for nil funcs or empty tags.
	_ = validate.RegisterValidation("password", validPassword)

	return &CustomValidator{validate: validate}
}

// Validate implements echo.Validator. Failures surface as the generic
// validation error; field details are kept out of client responses.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		var verrs validatorlib.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]

			return domainerrors.ErrValidationFailed.WithDetails(
				"field '" + field.Field() + "' failed on rule '" + field.Tag() + "'",
			)
		}

		return domainerrors.ErrValidationFailed.WrapMessage("validation failed")
	}

	return nil
}

// validPassword requires at least 8 characters with one letter and one digit.
func validPassword(fl validatorlib.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}
