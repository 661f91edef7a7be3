package memory

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/imglab/moderation/pkg/imglab"
)

const defaultPageSize = 1000

var _ imglab.BlobStore = (*Backend)(nil)

// Backend is an in-memory implementation of the imglab.BlobStore interface.
// Listings page through keys in lexicographic order with an opaque
// continuation token, mirroring the paging contract of real object stores.
type Backend struct {
	mu       sync.RWMutex
	objects  map[string]object
	pageSize int32
}

type object struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// Option configures the in-memory backend.
type Option func(*Backend)

// WithPageSize caps the number of keys returned per listing page. Tests use
// small values to force multi-page listings.
func WithPageSize(n int32) Option {
	return func(b *Backend) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// New creates a new in-memory storage backend
func New(opts ...Option) *Backend {
	b := &Backend{
		objects:  make(map[string]object),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ListPage returns one lexicographically ordered page of keys under prefix.
func (b *Backend) ListPage(ctx context.Context, prefix, continuationToken string, maxKeys int32) (*imglab.ObjectPage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0)
	for key := range b.objects {
		if strings.HasPrefix(key, prefix) && key > continuationToken {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	limit := b.pageSize
	if maxKeys > 0 && maxKeys < limit {
		limit = maxKeys
	}

	page := &imglab.ObjectPage{}
	for _, key := range keys {
		if int32(len(page.Objects)) == limit {
			page.Truncated = true
			page.NextToken = page.Objects[len(page.Objects)-1].Key
			break
		}
		obj := b.objects[key]
		page.Objects = append(page.Objects, imglab.ObjectMeta{
			Key:          key,
			Size:         int64(len(obj.data)),
			LastModified: obj.lastModified,
		})
	}

	return page, nil
}

// PresignGet returns a synthetic read grant. The URL is not routable; it
// carries the key and expiry so callers can assert on grant contents.
func (b *Backend) PresignGet(ctx context.Context, objectKey string, ttl time.Duration) (*imglab.ReadGrant, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[objectKey]; !exists {
		return nil, &imglab.StorageError{Backend: "memory", Key: objectKey, Op: "presign_get", Err: imglab.ErrObjectNotFound}
	}

	expiresAt := time.Now().Add(ttl)
	return &imglab.ReadGrant{
		URL:       fmt.Sprintf("memory:///%s?expires=%d", url.PathEscape(objectKey), expiresAt.Unix()),
		ExpiresAt: expiresAt,
	}, nil
}

// PresignPost returns a synthetic write grant scoped to objectKey.
func (b *Backend) PresignPost(ctx context.Context, objectKey string, policy imglab.PostPolicy) (*imglab.WriteGrant, error) {
	expiresAt := time.Now().Add(policy.TTL)
	return &imglab.WriteGrant{
		URL: "memory:///",
		Fields: map[string]string{
			"key":          objectKey,
			"Content-Type": policy.ContentType,
		},
		Key:         objectKey,
		ContentType: policy.ContentType,
		MaxBytes:    policy.MaxBytes,
		ExpiresAt:   expiresAt,
	}, nil
}

// Copy duplicates the object at srcKey under dstKey.
func (b *Backend) Copy(ctx context.Context, srcKey, dstKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	src, exists := b.objects[srcKey]
	if !exists {
		return &imglab.StorageError{Backend: "memory", Key: srcKey, Op: "copy", Err: imglab.ErrObjectNotFound}
	}

	dst := object{
		data:         make([]byte, len(src.data)),
		contentType:  src.contentType,
		lastModified: time.Now(),
	}
	copy(dst.data, src.data)
	b.objects[dstKey] = dst
	return nil
}

// Delete removes the object at objectKey.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return &imglab.StorageError{Backend: "memory", Key: objectKey, Op: "delete", Err: imglab.ErrObjectNotFound}
	}

	delete(b.objects, objectKey)
	return nil
}

// Upload writes content directly.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &imglab.StorageError{Backend: "memory", Key: objectKey, Op: "upload", Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	b.objects[objectKey] = object{
		data:         data,
		contentType:  contentType,
		lastModified: time.Now(),
	}
	return nil
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*imglab.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[objectKey]
	if !exists {
		return nil, &imglab.StorageError{Backend: "memory", Key: objectKey, Op: "head", Err: imglab.ErrObjectNotFound}
	}

	return &imglab.ObjectMeta{
		Key:          objectKey,
		Size:         int64(len(obj.data)),
		LastModified: obj.lastModified,
	}, nil
}

// Download returns the stored content. Not part of imglab.BlobStore; tests
// use it to verify byte-identical copies after transitions.
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[objectKey]
	if !exists {
		return nil, &imglab.StorageError{Backend: "memory", Key: objectKey, Op: "get", Err: imglab.ErrObjectNotFound}
	}

	return io.NopCloser(strings.NewReader(string(obj.data))), nil
}
