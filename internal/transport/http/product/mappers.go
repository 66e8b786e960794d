package product

import (
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

func (r *createProductRequest) toDomain() domain.CreateProductData {
	return domain.CreateProductData{
		NameEN:        r.NameEN,
		NameAR:        r.NameAR,
		DescriptionEN: r.DescriptionEN,
		DescriptionAR: r.DescriptionAR,
		Price:         r.Price,
	}
}

func (r *updateProductRequest) toDomain() domain.UpdateProductData {
	return domain.UpdateProductData{
		NameEN:        r.NameEN,
		NameAR:        r.NameAR,
		DescriptionEN: r.DescriptionEN,
		DescriptionAR: r.DescriptionAR,
		Price:         r.Price,
		IsActive:      r.IsActive,
	}
}

type listProductsResponse struct {
	Products []*domain.Product `json:"products"`
	Count    int               `json:"count"`
}

func toListResponse(products []*domain.Product) *listProductsResponse {
	if products == nil {
		products = []*domain.Product{}
	}
	return &listProductsResponse{Products: products, Count: len(products)}
}

type imageResponse struct {
	ImageURL string `json:"image_url"`
}

type statusResponse struct {
	Backend          string `json:"backend"`
	RemoteConfigured bool   `json:"remote_configured"`
	Persistent       bool   `json:"persistent"`
	Message          string `json:"message"`
}
