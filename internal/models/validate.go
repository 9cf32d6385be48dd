package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var wagerValidator = newWagerValidator()

func newWagerValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("wagertype", func(fl validator.FieldLevel) bool {
		return WagerType(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks the structural invariants of a wager record.
// Settlement-specific checks (non-finite numbers, missing results) are left to the calculator.
func (w *Wager) Validate() error {
	if err := wagerValidator.Struct(w); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.StructField(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidWager, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidWager, err)
	}
	return nil
}
