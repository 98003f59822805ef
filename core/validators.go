package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	decimalGTE0Tag  = "dgte0"
	decimalGTE0Text = "must be zero or greater"

	decimalRateTag  = "drate"
	decimalRateText = "must be a percentage between 0 and 100"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	oneHundred = decimal.NewFromInt(100)
)

func init() {
	enLoc := en.New()
	Translator, _ = ut.New(enLoc, enLoc).GetTranslator("en")

	Validate = validator.New()
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(decimalGTE0Tag, decimalGTE0Validation)
	RegisterCustomTranslation(decimalGTE0Tag, decimalGTE0Text)

	_ = Validate.RegisterValidation(decimalRateTag, decimalRateValidation)
	RegisterCustomTranslation(decimalRateTag, decimalRateText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// decimalGTE0Validation only allows non-negative decimal amounts.
func decimalGTE0Validation(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
		return !d.IsNegative()
	}
	return false
}

// decimalRateValidation only allows decimal percentages within [0, 100].
func decimalRateValidation(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
		return !d.IsNegative() && d.LessThanOrEqual(oneHundred)
	}
	return false
}
