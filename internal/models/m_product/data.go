package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ID            string             `spanner:"id"`
	NameEN        string             `spanner:"name_en"`
	NameAR        string             `spanner:"name_ar"`
	DescriptionEN string             `spanner:"description_en"`
	DescriptionAR string             `spanner:"description_ar"`
	Price         big.Rat            `spanner:"price"`
	ImageURL      spanner.NullString `spanner:"image_url"`
	IsActive      bool               `spanner:"is_active"`
	CreatedAt     time.Time          `spanner:"created_at"`
	UpdatedAt     time.Time          `spanner:"updated_at"`
}
