// Package healthcheck verifies that the remote object store accepts writes.
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
)

const (
	MsgNotConfigured    = "remote backend is not configured"
	MsgNotAuthenticated = "Not authenticated. Please login first."
)

// Remediation hints.
const (
	HintLogin      = "Log in with the admin account and run the check again."
	HintBucket     = "Create the storage bucket and mark it public."
	HintPermission = "Grant authenticated users INSERT, UPDATE and DELETE on the bucket; keep public SELECT."
	HintAuth       = "The session token was rejected. Log out, log in again and retry."
	HintUnknown    = "Check the storage service logs for the upload error above."
)

// Result is the outcome of a storage round trip.
type Result struct {
	BucketReachable bool     `json:"bucket_reachable"`
	CanUpload       bool     `json:"can_upload"`
	Errors          []string `json:"errors"`
	Hints           []string `json:"hints"`
}

// Probe uploads and removes a scratch object. It never touches product rows.
type Probe struct {
	gateway contracts.Gateway
	codec   *imagepath.Codec
	logger  *zap.Logger

	mu     sync.Mutex
	passed bool
}

var _ contracts.StoragePreflight = (*Probe)(nil)

// NewProbe creates a Probe.
func NewProbe(gateway contracts.Gateway, codec *imagepath.Codec, logger *zap.Logger) *Probe {
	return &Probe{gateway: gateway, codec: codec, logger: logger}
}

// CheckSetup runs the round trip and reports what failed.
func (p *Probe) CheckSetup(ctx context.Context) Result {
	if p.gateway == nil || !p.gateway.IsAvailable() {
		return Result{Errors: []string{MsgNotConfigured}, Hints: []string{}}
	}

	session, err := p.gateway.CurrentSession(ctx)
	if err != nil || session == nil {
		return Result{
			BucketReachable: true,
			Errors:          []string{MsgNotAuthenticated},
			Hints:           []string{HintLogin},
		}
	}

	path := p.codec.HealthCheckPath()
	err = p.gateway.UploadObject(ctx, &contracts.StorageObject{
		Bucket:      p.codec.Bucket(),
		Path:        path,
		ContentType: "text/plain",
		Data:        []byte("ok"),
	}, true)
	if err != nil {
		reachable, hint := classify(err)
		return Result{
			BucketReachable: reachable,
			Errors:          []string{err.Error()},
			Hints:           []string{hint},
		}
	}

	if err := p.gateway.RemoveObjects(ctx, p.codec.Bucket(), []string{path}); err != nil {
		p.logger.Warn("failed to remove storage health check object",
			zap.String("path", path), zap.Error(err))
	}

	return Result{BucketReachable: true, CanUpload: true, Errors: []string{}, Hints: []string{}}
}

// Preflight runs CheckSetup until it passes once; later calls return
// immediately. A failed check becomes a persistence failure.
func (p *Probe) Preflight(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.passed {
		return nil
	}

	res := p.CheckSetup(ctx)
	if res.CanUpload {
		p.passed = true
		return nil
	}

	msg := strings.Join(res.Errors, "; ")
	if len(res.Hints) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(res.Hints, " "))
	}
	p.logger.Error("storage preflight failed", zap.Strings("errors", res.Errors))
	return domain.NewError(domain.KindPersistenceFailed, "Storage is not ready: "+msg)
}

// SetupInstructions lists the steps to prepare the bucket.
func (p *Probe) SetupInstructions() []string {
	return []string{
		fmt.Sprintf("1) Create bucket: %q", p.codec.Bucket()),
		"2) Add policies:",
		"- Public SELECT (read)",
		"- Authenticated INSERT/UPDATE/DELETE (write)",
	}
}

// classify reports reachability the way the bucket lookup does, then picks
// the hint. Permission and auth wording wins over a mention of the bucket.
func classify(err error) (bucketReachable bool, hint string) {
	if errors.Is(err, contracts.ErrBucketNotFound) {
		return false, HintBucket
	}

	msg := strings.ToLower(err.Error())
	bucketReachable = !strings.Contains(msg, "not found") && !strings.Contains(msg, "bucket")

	switch {
	case strings.Contains(msg, "row-level security") || strings.Contains(msg, "permission") ||
		strings.Contains(msg, "not authorized"):
		return bucketReachable, HintPermission
	case strings.Contains(msg, "jwt") || strings.Contains(msg, "auth"):
		return bucketReachable, HintAuth
	case !bucketReachable:
		return false, HintBucket
	default:
		return true, HintUnknown
	}
}
