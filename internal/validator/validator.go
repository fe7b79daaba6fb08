package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// trans is the singleton English translator for validation errors.
var (
	trans     ut.Translator
	setupOnce sync.Once
)

// domainRules are the custom tags used by the request DTOs.
var domainRules = []struct {
	tag     string
	fn      govalidator.Func
	message string
}{
	{
		tag:     "subject",
		fn:      func(fl govalidator.FieldLevel) bool { return model.Subject(fl.Field().String()).Valid() },
		message: "{0} must be one of the engineering branches",
	},
	{
		tag:     "difficulty",
		fn:      func(fl govalidator.FieldLevel) bool { return model.Difficulty(fl.Field().String()).Valid() },
		message: "{0} must be Easy, Medium or Hard",
	},
}

// Setup registers the validator with English translations on Gin's binding engine.
// It is safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		for _, rule := range domainRules {
			_ = v.RegisterValidation(rule.tag, rule.fn)
			registerMessage(v, rule.tag, rule.message)
		}
	})
}

func registerMessage(v *govalidator.Validate, tag, message string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return t
		},
	)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
