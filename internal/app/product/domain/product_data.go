package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateProductData is the payload for creating a product.
type CreateProductData struct {
	NameEN        string `json:"name_en" validate:"required"`
	NameAR        string `json:"name_ar" validate:"required"`
	DescriptionEN string `json:"description_en" validate:"required"`
	DescriptionAR string `json:"description_ar" validate:"required"`
	Price         *Money `json:"price" validate:"required"`
}

// UpdateProductData is a partial update. Nil fields are left unchanged.
type UpdateProductData struct {
	NameEN        *string `json:"name_en,omitempty"`
	NameAR        *string `json:"name_ar,omitempty"`
	DescriptionEN *string `json:"description_en,omitempty"`
	DescriptionAR *string `json:"description_ar,omitempty"`
	Price         *Money  `json:"price,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize trims the text fields.
func (d CreateProductData) Normalize() CreateProductData {
	d.NameEN = strings.TrimSpace(d.NameEN)
	d.NameAR = strings.TrimSpace(d.NameAR)
	d.DescriptionEN = strings.TrimSpace(d.DescriptionEN)
	d.DescriptionAR = strings.TrimSpace(d.DescriptionAR)
	return d
}

// Validate checks required fields and the price bound.
func (d CreateProductData) Validate() error {
	if err := validate.Struct(d); err != nil {
		return validationError(err)
	}
	if d.Price.IsNegative() {
		return NewError(KindValidationFailed, MsgNegativePrice)
	}
	return nil
}

// Normalize trims the provided text fields.
func (d UpdateProductData) Normalize() UpdateProductData {
	d.NameEN = trimmed(d.NameEN)
	d.NameAR = trimmed(d.NameAR)
	d.DescriptionEN = trimmed(d.DescriptionEN)
	d.DescriptionAR = trimmed(d.DescriptionAR)
	return d
}

// Validate rejects blank names and negative prices. Descriptions may be cleared.
func (d UpdateProductData) Validate() error {
	if d.NameEN != nil && *d.NameEN == "" {
		return NewError(KindValidationFailed, "name_en must not be empty")
	}
	if d.NameAR != nil && *d.NameAR == "" {
		return NewError(KindValidationFailed, "name_ar must not be empty")
	}
	if d.Price != nil && d.Price.IsNegative() {
		return NewError(KindValidationFailed, MsgNegativePrice)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Wrap(KindValidationFailed, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return &Error{Kind: KindValidationFailed, Message: strings.Join(msgs, "; "), Err: err}
}
