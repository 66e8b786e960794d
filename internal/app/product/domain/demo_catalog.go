package domain

import "time"

// PlaceholderImage is the storefront's bundled fallback image.
const PlaceholderImage = "/placeholder.svg"

// DemoCatalog returns the four products a fresh local store starts with.
func DemoCatalog(now time.Time) []*Product {
	seed := []struct {
		id, nameEN, nameAR, descEN, descAR, price string
	}{
		{"1", "Royal Oud", "العود الملكي", "Luxurious oriental fragrance", "عطر شرقي فاخر", "299.99"},
		{"2", "Golden Rose", "الوردة الذهبية", "Elegant floral essence", "جوهر زهري أنيق", "249.99"},
		{"3", "Mystic Amber", "العنبر الغامض", "Mysterious and captivating", "غامض وآسر", "279.99"},
		{"4", "Desert Breeze", "نسيم الصحراء", "Fresh and invigorating", "منعش ومنشط", "199.99"},
	}

	products := make([]*Product, 0, len(seed))
	for _, s := range seed {
		img := PlaceholderImage
		products = append(products, &Product{
			ID:            s.id,
			NameEN:        s.nameEN,
			NameAR:        s.nameAR,
			DescriptionEN: s.descEN,
			DescriptionAR: s.descAR,
			Price:         MustMoney(s.price),
			ImageURL:      &img,
			CreatedAt:     now,
			UpdatedAt:     now,
			IsActive:      true,
		})
	}
	return products
}
