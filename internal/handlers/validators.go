package handlers

import (
	"sync"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the "currency" and "direction" binding tags to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return domain.IsValidCurrencyCode(fl.Field().String())
		})
		_ = v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
			return domain.Direction(fl.Field().String()).IsValid()
		})
	})
}
