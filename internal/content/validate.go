package content

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
		validateInst = validator.New()
	})
	return validateInst
}

// ValidationError names the first content field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content: %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks struct tags plus uniqueness of restaurant, specialty and
// news ids.
func Validate(f *File) error {
	if err := validatorInstance().Struct(f); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]bool, len(f.Restaurants))
	for i, r := range f.Restaurants {
		if seen[r.ID] {
			return &ValidationError{Field: fmt.Sprintf("restaurants[%d].id", i), Msg: fmt.Sprintf("duplicate id %q", r.ID)}
		}
		seen[r.ID] = true
	}

	ids := make(map[int]bool, len(f.Specialties))
	for i, s := range f.Specialties {
		if ids[s.ID] {
			return &ValidationError{Field: fmt.Sprintf("specialties[%d].id", i), Msg: fmt.Sprintf("duplicate id %d", s.ID)}
		}
		ids[s.ID] = true
	}

	ids = make(map[int]bool, len(f.News))
	for i, n := range f.News {
		if ids[n.ID] {
			return &ValidationError{Field: fmt.Sprintf("news[%d].id", i), Msg: fmt.Sprintf("duplicate id %d", n.ID)}
		}
		ids[n.ID] = true
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := strings.ToLower(ve.StructNamespace())
		return &ValidationError{
			Field: field,
			Msg:   fmt.Sprintf("failed validation for tag '%s'", ve.Tag()),
			Err:   err,
		}
	}
	return &ValidationError{Field: "content", Msg: err.Error(), Err: err}
}
