package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/topvistorias/cash_closing_app/internal/utils"
)

// RegisterCustomValidators installs the application's custom binding
// validators on Gin's validator engine. Must run before routes are served.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// brdate accepts dates in the DD/MM/YYYY form the closing form uses.
		_ = v.RegisterValidation("brdate", func(fl validator.FieldLevel) bool {
			_, ok := utils.ParseDateBR(fl.Field().String())
			return ok
		})
	}
}
