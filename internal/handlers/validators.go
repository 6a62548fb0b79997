package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// registerValidators installs custom binding validators on Gin's validator
// engine. Must run before any route binds a request using the tags.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("documentkind", func(fl validator.FieldLevel) bool {
		return domain.DocumentKind(fl.Field().String()).IsValid()
	})
}
