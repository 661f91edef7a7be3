package imglab

import (
	"context"
	"io"
	"time"
)

// BlobStore defines the narrow storage capability the moderation pipeline
// needs. Implementations perform no retries; every failure surfaces to the
// caller as-is.
type BlobStore interface {
	// ListPage returns one page of objects under prefix, starting at the
	// given continuation token ("" for the first page). maxKeys <= 0 means
	// the backend default page size.
	ListPage(ctx context.Context, prefix, continuationToken string, maxKeys int32) (*ObjectPage, error)

	// PresignGet issues a time-limited read grant for one object.
	PresignGet(ctx context.Context, objectKey string, ttl time.Duration) (*ReadGrant, error)

	// PresignPost issues a scoped write grant for exactly one object key,
	// constrained by the given POST policy.
	PresignPost(ctx context.Context, objectKey string, policy PostPolicy) (*WriteGrant, error)

	// Copy duplicates the object at srcKey under dstKey.
	Copy(ctx context.Context, srcKey, dstKey string) error

	// Delete removes the object at objectKey.
	Delete(ctx context.Context, objectKey string) error

	// Upload writes content directly, bypassing the grant flow. Used by
	// tooling and tests; production clients upload via write grants.
	Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error

	// GetObjectMeta retrieves metadata for one object.
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// NotificationSink receives fire-and-forget events about new submissions.
// The service logs and swallows every error a sink returns; a sink must
// never be able to fail a slot allocation.
type NotificationSink interface {
	Publish(ctx context.Context, subject, message string) error
}
