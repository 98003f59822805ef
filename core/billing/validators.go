package billing

import (
	"github.com/go-playground/validator/v10"

	"github.com/bizdesk/backoffice/core"
)

var (
	payMethodTag  = "paymethod"
	payMethodText = "invalid payment method"
)

func init() {
	_ = core.Validate.RegisterValidation(payMethodTag, payMethodValidation)
	core.RegisterCustomTranslation(payMethodTag, payMethodText)
}

// payMethodValidation checks that the provided payment method is in AllMethods.
func payMethodValidation(fl validator.FieldLevel) bool {
	if m, ok := fl.Field().Interface().(PaymentMethod); ok {
		return m.Valid()
	}
	return PaymentMethod(fl.Field().String()).Valid()
}
