package m_object

import "time"

// Data represents the database model for the storage_objects table.
type Data struct {
	Bucket      string    `spanner:"bucket"`
	Path        string    `spanner:"path"`
	ContentType string    `spanner:"content_type"`
	Size        int64     `spanner:"size"`
	Content     []byte    `spanner:"data"`
	CreatedAt   time.Time `spanner:"created_at"`
	UpdatedAt   time.Time `spanner:"updated_at"`
}

// BucketData represents the database model for the storage_buckets table.
type BucketData struct {
	Name      string    `spanner:"name"`
	Public    bool      `spanner:"public"`
	CreatedAt time.Time `spanner:"created_at"`
}
