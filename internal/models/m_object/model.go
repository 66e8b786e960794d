package m_object

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the storage tables.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut stores a new object; the commit fails if the path is taken.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(ObjectsTable, ObjectColumns(), values(data))
}

// UpsertMut stores an object, replacing any existing one at the same path.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(ObjectsTable, ObjectColumns(), values(data))
}

// DeleteMut removes an object. Missing objects are not an error.
func (m *Model) DeleteMut(bucket, path string) *spanner.Mutation {
	return spanner.Delete(ObjectsTable, spanner.Key{bucket, path})
}

// BucketUpsertMut registers a bucket.
func (m *Model) BucketUpsertMut(data *BucketData) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		BucketsTable,
		[]string{BucketName, BucketPublic, BucketCreatedAt},
		[]interface{}{data.Name, data.Public, data.CreatedAt},
	)
}

func values(data *Data) []interface{} {
	return []interface{}{
		data.Bucket,
		data.Path,
		data.ContentType,
		data.Size,
		data.Content,
		data.CreatedAt,
		data.UpdatedAt,
	}
}
