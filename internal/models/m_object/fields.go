package m_object

// Field name constants for the storage tables.
const (
	BucketsTable = "storage_buckets"

	BucketName      = "name"
	BucketPublic    = "public"
	BucketCreatedAt = "created_at"

	ObjectsTable = "storage_objects"

	Bucket      = "bucket"
	Path        = "path"
	ContentType = "content_type"
	Size        = "size"
	Content     = "data"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// ObjectColumns lists every storage_objects column in Data order.
func ObjectColumns() []string {
	return []string{Bucket, Path, ContentType, Size, Content, CreatedAt, UpdatedAt}
}
