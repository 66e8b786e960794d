package testutil

import (
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Price returns a pointer to the parsed decimal.
func Price(s string) *domain.Money {
	m := domain.MustMoney(s)
	return &m
}

// CreateData returns valid create data for a product named nameEN.
func CreateData(nameEN string) domain.CreateProductData {
	return domain.CreateProductData{
		NameEN:        nameEN,
		NameAR:        nameEN + " (ar)",
		DescriptionEN: nameEN + " description",
		DescriptionAR: nameEN + " وصف",
		Price:         Price("50"),
	}
}

// PNG returns a small image file.
func PNG(name string) *domain.ImageFile {
	return domain.NewImageFile(name, "image/png", []byte("\x89PNG\r\n\x1a\nfake"))
}
