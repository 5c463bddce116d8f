package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/velorashop/velora_backend/internal/utils"
)

// registerCustomValidators wires domain-specific binding rules into Gin's
// validator engine. The eth_addr rule rejects malformed wallet addresses
// before a request reaches any handler.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eth_addr", func(fl validator.FieldLevel) bool {
			return utils.IsEthereumAddress(fl.Field().String())
		})
	}
}
