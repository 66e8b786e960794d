package m_product

import (
	"sort"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a product.
// It fails at commit time if the id already exists.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns(),
		[]interface{}{
			data.ID,
			data.NameEN,
			data.NameAR,
			data.DescriptionEN,
			data.DescriptionAR,
			data.Price,
			data.ImageURL,
			data.IsActive,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific product fields.
// The updates map should contain column names as keys and new values.
// Columns are written in sorted order so mutations are deterministic.
func (m *Model) UpdateMut(id string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	cols := make([]string, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, ID)
	values = append(values, id)

	for _, col := range cols {
		columns = append(columns, col)
		values = append(values, updates[col])
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a product.
func (m *Model) DeleteMut(id string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}
