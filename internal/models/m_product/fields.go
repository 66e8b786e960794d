package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ID            = "id"
	NameEN        = "name_en"
	NameAR        = "name_ar"
	DescriptionEN = "description_en"
	DescriptionAR = "description_ar"
	Price         = "price"
	ImageURL      = "image_url"
	IsActive      = "is_active"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// Columns lists every products column in Data order.
func Columns() []string {
	return []string{
		ID,
		NameEN,
		NameAR,
		DescriptionEN,
		DescriptionAR,
		Price,
		ImageURL,
		IsActive,
		CreatedAt,
		UpdatedAt,
	}
}
