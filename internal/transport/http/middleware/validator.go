package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Validator adapts validator.Validate to echo.Validator. Failures come back
// as validation_failed domain errors naming the offending JSON field.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	commonTags := []string{
		"json",
		"param",
		"query",
		"form",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return &Validator{
		validate: validate,
	}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Errorf(domain.KindValidationFailed, "%s is %s", fe.Field(), tagDescription(fe.Tag()))
	}
	return domain.NewError(domain.KindValidationFailed, err.Error())
}

func tagDescription(tag string) string {
	switch tag {
	case "required", "notblank":
		return "required"
	default:
		return fmt.Sprintf("invalid (%s)", tag)
	}
}
