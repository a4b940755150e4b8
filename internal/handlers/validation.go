package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

const notBlankTag = "notblank"

var (
	validationOnce sync.Once
	translator     ut.Translator
)

// registerValidation configures Gin's validator engine once per process:
// JSON tag names in errors, English messages and the notblank tag.
func registerValidation() {
	validationOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, translator)

		// Use JSON tag names for errors instead of Go struct names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
			if str, ok := fl.Field().Interface().(string); ok {
				return strings.TrimSpace(str) != ""
			}
			return false
		})
		_ = v.RegisterTranslation(notBlankTag, translator,
			func(ut.Translator) error { return nil },
			func(ut.Translator, validator.FieldError) string { return "this field cannot be blank" },
		)
	})
}

// fieldErrors maps each failed field to a readable message, or returns nil
// when err is not a validation failure (malformed JSON, wrong types).
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			fields[fe.Field()] = fe.Translate(translator)
		} else {
			fields[fe.Field()] = fe.Error()
		}
	}
	return fields
}
