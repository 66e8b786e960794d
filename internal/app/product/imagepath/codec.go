// Package imagepath maps product images between storage keys and public URLs.
package imagepath

import (
	"fmt"
	"path"
	"strings"

	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

const (
	// DefaultBucket holds product images.
	DefaultBucket = "product-images"
	// UploadFolder prefixes every product image key.
	UploadFolder = "products"
	// HealthFolder prefixes the storage probe's scratch objects.
	HealthFolder = "healthchecks"
	// PublicPrefix is the URL path under which public objects are served.
	PublicPrefix = "/storage/v1/object/public/"

	defaultExt = "jpg"
)

// Codec derives storage keys for uploads and recovers them from public URLs.
type Codec struct {
	baseURL string
	bucket  string
	clock   clock.Clock
}

// NewCodec creates a Codec for bucket, serving public URLs under baseURL.
func NewCodec(baseURL, bucket string, clk clock.Clock) *Codec {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &Codec{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		clock:   clk,
	}
}

// Bucket returns the bucket the codec addresses.
func (c *Codec) Bucket() string {
	return c.bucket
}

// DeriveUploadPath returns "products/<productID>-<unixNano>.<ext>".
func (c *Codec) DeriveUploadPath(productID, fileName string) string {
	return fmt.Sprintf("%s/%s-%d.%s", UploadFolder, productID, c.clock.Now().UnixNano(), extension(fileName))
}

// HealthCheckPath returns a scratch key for the storage probe.
func (c *Codec) HealthCheckPath() string {
	return fmt.Sprintf("%s/test-%d.txt", HealthFolder, c.clock.Now().UnixMilli())
}

// PublicURL resolves a bucket-relative path to its public URL.
func (c *Codec) PublicURL(objectPath string) string {
	return PublicURL(c.baseURL, c.bucket, objectPath)
}

// ExtractPath recovers the bucket-relative path from a public URL. It returns
// "" when the URL does not point into the bucket.
func (c *Codec) ExtractPath(url string) string {
	marker := PublicPrefix + c.bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return ""
	}
	rest := url[idx+len(marker):]
	if q := strings.IndexAny(rest, "?#"); q >= 0 {
		rest = rest[:q]
	}
	return rest
}

// PublicURL joins a base URL, bucket and object path.
func PublicURL(baseURL, bucket, objectPath string) string {
	return strings.TrimRight(baseURL, "/") + PublicPrefix + bucket + "/" + strings.TrimLeft(objectPath, "/")
}

func extension(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return defaultExt
	}
	return b.String()
}
