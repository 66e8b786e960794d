package domain

// Product fields tracked for partial updates.
const (
	FieldNameEN        = "name_en"
	FieldNameAR        = "name_ar"
	FieldDescriptionEN = "description_en"
	FieldDescriptionAR = "description_ar"
	FieldPrice         = "price"
	FieldImageURL      = "image_url"
	FieldIsActive      = "is_active"
)

// ChangeTracker tracks which fields have been modified on a product.
// Remote updates persist only the dirty columns.
type ChangeTracker struct {
	dirtyFields map[string]bool
}

// NewChangeTracker creates a new ChangeTracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		dirtyFields: make(map[string]bool),
	}
}

// MarkDirty marks a field as modified.
func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirtyFields[field] = true
}

// Dirty checks if a field has been modified.
func (ct *ChangeTracker) Dirty(field string) bool {
	return ct.dirtyFields[field]
}

// Clear clears all dirty field markers.
func (ct *ChangeTracker) Clear() {
	ct.dirtyFields = make(map[string]bool)
}

// HasChanges returns true if any field has been modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirtyFields) > 0
}
