package product

import (
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// createProductRequest is the body of POST /products.
type createProductRequest struct {
	NameEN        string        `json:"name_en" validate:"notblank"`
	NameAR        string        `json:"name_ar" validate:"notblank"`
	DescriptionEN string        `json:"description_en" validate:"notblank"`
	DescriptionAR string        `json:"description_ar" validate:"notblank"`
	Price         *domain.Money `json:"price" validate:"required"`
}

// updateProductRequest is the body of PATCH /products/:id. Absent fields are
// left unchanged.
type updateProductRequest struct {
	NameEN        *string       `json:"name_en" validate:"omitnil,notblank"`
	NameAR        *string       `json:"name_ar" validate:"omitnil,notblank"`
	DescriptionEN *string       `json:"description_en"`
	DescriptionAR *string       `json:"description_ar"`
	Price         *domain.Money `json:"price"`
	IsActive      *bool         `json:"is_active"`
}

type listProductsRequest struct {
	IncludeInactive bool `query:"include_inactive"`
}

type deleteImageRequest struct {
	URL string `query:"url"`
}
