package contact

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validateInst = v
	})
	return validateInst
}

// FieldError names the submission field that failed validation.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s failed validation for tag '%s'", e.Field, e.Tag)
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate checks the normalized submission. Failures wrap
// ErrInvalidSubmission and a *FieldError.
func (s Submission) Validate() error {
	err := validatorInstance().Struct(s.Normalize())
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := &FieldError{Field: strings.ToLower(ves[0].Field()), Tag: ves[0].Tag()}
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, fe)
	}
	return fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
}
