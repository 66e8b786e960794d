package domain

import (
	"time"

	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

// Product is a catalog entry. The exported fields are its wire and
// persistence shape; mutations go through the methods so updated_at and
// change tracking stay consistent.
type Product struct {
	ID            string    `json:"id"`
	NameEN        string    `json:"name_en"`
	NameAR        string    `json:"name_ar"`
	DescriptionEN string    `json:"description_en"`
	DescriptionAR string    `json:"description_ar"`
	Price         Money     `json:"price"`
	ImageURL      *string   `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	IsActive      bool      `json:"is_active"`

	changes *ChangeTracker
}

// NewProduct builds an active product from validated create data.
// id may be empty when the remote database assigns it.
func NewProduct(id string, data CreateProductData, now time.Time) (*Product, error) {
	data = data.Normalize()
	if err := data.Validate(); err != nil {
		return nil, err
	}

	return &Product{
		ID:            id,
		NameEN:        data.NameEN,
		NameAR:        data.NameAR,
		DescriptionEN: data.DescriptionEN,
		DescriptionAR: data.DescriptionAR,
		Price:         NewMoneyFromRat(data.Price.Rat()),
		CreatedAt:     now,
		UpdatedAt:     now,
		IsActive:      true,
	}, nil
}

// Changes returns the dirty-field tracker, creating it on first use.
func (p *Product) Changes() *ChangeTracker {
	if p.changes == nil {
		p.changes = NewChangeTracker()
	}
	return p.changes
}

// HasImage reports whether an image URL is set.
func (p *Product) HasImage() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}

// Apply applies a partial update. Only provided fields change; updated_at is
// always refreshed and never moves backwards.
func (p *Product) Apply(patch UpdateProductData, now time.Time) error {
	patch = patch.Normalize()
	if err := patch.Validate(); err != nil {
		return err
	}

	if patch.NameEN != nil {
		p.NameEN = *patch.NameEN
		p.Changes().MarkDirty(FieldNameEN)
	}
	if patch.NameAR != nil {
		p.NameAR = *patch.NameAR
		p.Changes().MarkDirty(FieldNameAR)
	}
	if patch.DescriptionEN != nil {
		p.DescriptionEN = *patch.DescriptionEN
		p.Changes().MarkDirty(FieldDescriptionEN)
	}
	if patch.DescriptionAR != nil {
		p.DescriptionAR = *patch.DescriptionAR
		p.Changes().MarkDirty(FieldDescriptionAR)
	}
	if patch.Price != nil {
		p.Price = NewMoneyFromRat(patch.Price.Rat())
		p.Changes().MarkDirty(FieldPrice)
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
		p.Changes().MarkDirty(FieldIsActive)
	}

	p.touch(now)
	return nil
}

// SetImageURL sets or, with nil, clears the image.
func (p *Product) SetImageURL(url *string, now time.Time) {
	if url != nil {
		v := *url
		url = &v
	}
	p.ImageURL = url
	p.Changes().MarkDirty(FieldImageURL)
	p.touch(now)
}

func (p *Product) touch(now time.Time) {
	p.UpdatedAt = clock.Later(p.UpdatedAt, now)
}

// Clone returns a deep copy with a clean change tracker.
func (p *Product) Clone() *Product {
	c := *p
	c.Price = NewMoneyFromRat(p.Price.Rat())
	if p.ImageURL != nil {
		v := *p.ImageURL
		c.ImageURL = &v
	}
	c.changes = nil
	return &c
}
