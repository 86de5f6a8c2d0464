// Package validation registers the custom binding rules and turns validator
// failures into localized field errors.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/i18n"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// NormalizePhone strips the separators people type into phone numbers
func NormalizePhone(s string) string {
	return phoneSeparators.Replace(strings.TrimSpace(s))
}

// IsPhone reports whether s is an international-style phone number:
// an optional leading '+' followed by 7 to 15 digits once separators are removed.
func IsPhone(s string) bool {
	return phonePattern.MatchString(NormalizePhone(s))
}

// IsSlug reports whether s is a lowercase dash-separated slug
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Register adds the custom rules and the json field name resolver to v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		"phone": func(fl validator.FieldLevel) bool { return IsPhone(fl.Field().String()) },
		"otp":   func(fl validator.FieldLevel) bool { return otpPattern.MatchString(strings.TrimSpace(fl.Field().String())) },
		"slug":  func(fl validator.FieldLevel) bool { return IsSlug(fl.Field().String()) },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

var (
	ginOnce sync.Once
	ginErr  error
)

// RegisterWithGin installs the custom rules on gin's binding validator.
func RegisterWithGin() error {
	ginOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			ginErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		ginErr = Register(v)
	})
	return ginErr
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FieldErrors converts validator failures into localized field errors.
// ok is false when err is not a validation error (malformed JSON, wrong types).
func FieldErrors(err error, lang i18n.Lang, bundle *i18n.Bundle) (fields []dto.FieldError, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields = make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		fields = append(fields, dto.FieldError{
			Field:   field,
			Message: message(fe, field, lang, bundle),
		})
	}
	return fields, true
}

// fieldPath drops the root struct name: "ContactRequest.email" -> "email"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func label(field string, lang i18n.Lang, bundle *i18n.Bundle) string {
	if bundle.Has(lang, "fields."+field) {
		return bundle.T(lang, "fields."+field)
	}
	root := strings.SplitN(field, ".", 2)[0]
	if bundle.Has(lang, "fields."+root) {
		return bundle.T(lang, "fields."+root)
	}
	return field
}

func message(fe validator.FieldError, field string, lang i18n.Lang, bundle *i18n.Bundle) string {
	key := "validation." + fe.Tag()
	if !bundle.Has(lang, key) {
		key = "validation.invalid"
	}

	tmpl := bundle.T(lang, key)
	args := []interface{}{label(field, lang, bundle)}
	if strings.Count(tmpl, "%s") > 1 {
		param := fe.Param()
		if fe.Tag() == "oneof" {
			param = strings.ReplaceAll(param, " ", ", ")
		}
		args = append(args, param)
	}
	return bundle.T(lang, key, args...)
}
