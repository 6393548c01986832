// internal/validator/validator.go
package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var mccRe = regexp.MustCompile(`^\d{4}$`)

func init() {
	Validate = validator.New()

	// ISO date: "2024-12-31"
	_ = Validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})

	// Four-digit merchant category code
	_ = Validate.RegisterValidation("mcc", func(fl validator.FieldLevel) bool {
		return mccRe.MatchString(fl.Field().String())
	})

	// Not empty and not only whitespace
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(regexp.MustCompile(`\S`).FindString(s)) > 0
	})
}
