// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/MKhiriev/go-form-keeper/models"
)

// custom validation tags
const (
	notBlankTag     = "notblank"
	regexpTag       = "regexp"
	boundsOrderTag  = "bounds_order"
	lengthBoundsTag = "length_bounds"
)

// FormRequestValidator checks request bodies with go-playground/validator
// and reports failures as translated, JSON-named violations.
type FormRequestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewFormRequestValidator() Validator {
	v := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlankValidation)
	v.RegisterStructValidation(fieldStructValidation, models.Field{})

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, regexpTag, boundsOrderTag, lengthBoundsTag} {
		_ = v.RegisterTranslation(tag, translator, registerFn, translateCustomValidationErrs)
	}

	return &FormRequestValidator{validate: v, translator: translator}
}

func (v *FormRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateFormRequest:
		return v.validateStruct(ctx, &value, fields...)
	case *models.CreateFormRequest:
		return v.validateStruct(ctx, value, fields...)
	case models.SubmitRequest:
		return v.validateStruct(ctx, &value, fields...)
	case *models.SubmitRequest:
		return v.validateStruct(ctx, value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *FormRequestValidator) validateStruct(ctx context.Context, s any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, s)
	} else {
		err = v.validate.StructPartialCtx(ctx, s, fields...)
	}
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	violations := make([]models.Violation, 0, len(validationErrs))
	for _, fe := range validationErrs {
		violations = append(violations, models.Violation{
			Field:   fieldPath(fe.Namespace()),
			Message: fe.Translate(v.translator),
		})
	}
	return &RequestError{Violations: violations}
}

// fieldPath drops the root struct name from a validator namespace:
// "CreateFormRequest.fields[0].name" becomes "fields[0].name".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case regexpTag:
		return fe.Field() + " is not a valid regular expression"
	case boundsOrderTag:
		return "min must not be greater than max"
	case lengthBoundsTag:
		return "length bounds must not be negative"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// fieldStructValidation checks the rule bundle of a field descriptor, so that
// a form can never be stored with rules that fail on every submission.
func fieldStructValidation(sl validator.StructLevel) {
	f, ok := sl.Current().Interface().(models.Field)
	if !ok || f.Validation == nil {
		return
	}
	rules := f.Validation

	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			sl.ReportError(rules.Pattern, "pattern", "Pattern", regexpTag, "")
		}
	}
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		sl.ReportError(*rules.Max, "max", "Max", boundsOrderTag, "")
	}
	if f.Type == models.FieldText || f.Type == models.FieldTextarea {
		if (rules.Min != nil && *rules.Min < 0) || (rules.Max != nil && *rules.Max < 0) {
			sl.ReportError(rules.Min, "min", "Min", lengthBoundsTag, "")
		}
	}
}
