package imglab

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults applied by New when the corresponding option is not given.
const (
	DefaultUploadTTL      = 120 * time.Second
	DefaultReadTTL        = 600 * time.Second
	DefaultMaxUploadBytes = 2_000_000
)

// uploadContentTypeFamily is the content-type family every write grant is
// constrained to, independent of the configured allow-list.
const uploadContentTypeFamily = "image/"

// service implements the Service interface
type service struct {
	store        BlobStore
	notifier     NotificationSink
	prefixes     Prefixes
	allowedTypes map[string]string
	uploadTTL    time.Duration
	readTTL      time.Duration
	maxBytes     int64
	logger       *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithNotifier sets the notification sink for new-submission events
func WithNotifier(sink NotificationSink) Option {
	return func(s *service) {
		s.notifier = sink
	}
}

// WithPrefixes sets the state prefixes
func WithPrefixes(p Prefixes) Option {
	return func(s *service) {
		s.prefixes = p
	}
}

// WithAllowedTypes sets the content-type allow-list as a map from content
// type to file extension. Keys are matched case-insensitively.
func WithAllowedTypes(types map[string]string) Option {
	return func(s *service) {
		normalized := make(map[string]string, len(types))
		for ct, ext := range types {
			normalized[strings.ToLower(ct)] = ext
		}
		s.allowedTypes = normalized
	}
}

// WithUploadTTL sets the lifetime of issued write grants
func WithUploadTTL(ttl time.Duration) Option {
	return func(s *service) {
		s.uploadTTL = ttl
	}
}

// WithReadTTL sets the default lifetime of issued read grants
func WithReadTTL(ttl time.Duration) Option {
	return func(s *service) {
		s.readTTL = ttl
	}
}

// WithMaxUploadBytes sets the content-length bound baked into write grants
func WithMaxUploadBytes(n int64) Option {
	return func(s *service) {
		s.maxBytes = n
	}
}

// WithLogger sets the logger used for non-fatal events
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		prefixes:     DefaultPrefixes(),
		allowedTypes: DefaultAllowedTypes(),
		uploadTTL:    DefaultUploadTTL,
		readTTL:      DefaultReadTTL,
		maxBytes:     DefaultMaxUploadBytes,
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if err := s.prefixes.Validate(); err != nil {
		return nil, err
	}
	if len(s.allowedTypes) == 0 {
		return nil, fmt.Errorf("content-type allow-list must not be empty")
	}
	if s.notifier == nil {
		s.notifier = NewNoopSink()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// RequestSlot admits at most one submission per user and mints a scoped,
// time-limited write grant for a fresh pending key.
//
// The uniqueness check is an existence scan over all three state prefixes
// and is not atomic with respect to concurrent calls for the same user: two
// near-simultaneous requests can both pass the scan and both receive valid
// grants. That race is an accepted weak-consistency property of the
// prefix-encoded state model; no coordination store is used.
func (s *service) RequestSlot(ctx context.Context, req RequestSlotRequest) (*SlotGrant, error) {
	if req.UserID == "" {
		return nil, &SlotError{UserID: req.UserID, Err: ErrMissingUserID}
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := s.allowedTypes[contentType]
	if !ok {
		return nil, &SlotError{UserID: req.UserID, Err: ErrInvalidContentType}
	}

	for _, state := range States() {
		prefix := s.prefixes.For(state) + req.UserID + "/"
		page, err := s.store.ListPage(ctx, prefix, "", 1)
		if err != nil {
			return nil, &SlotError{UserID: req.UserID, Err: err}
		}
		if len(page.Objects) > 0 {
			return nil, &SlotError{UserID: req.UserID, Err: ErrSlotAlreadyUsed}
		}
	}

	key := s.prefixes.Pending + req.UserID + "/" + uuid.NewString() + "." + ext

	grant, err := s.store.PresignPost(ctx, key, PostPolicy{
		TTL:               s.uploadTTL,
		MaxBytes:          s.maxBytes,
		ContentType:       contentType,
		ContentTypePrefix: uploadContentTypeFamily,
	})
	if err != nil {
		return nil, &SlotError{UserID: req.UserID, Err: err}
	}

	s.notify(ctx, req.UserID)

	return &SlotGrant{
		Grant:       *grant,
		Key:         key,
		ContentType: contentType,
		MaxBytes:    s.maxBytes,
		ExpiresIn:   int64(s.uploadTTL / time.Second),
	}, nil
}

// notify publishes the new-submission event best-effort. Sink failures are
// logged and swallowed; they never affect the returned grant.
func (s *service) notify(ctx context.Context, userID string) {
	err := s.notifier.Publish(ctx,
		"Someone uploaded an image!",
		fmt.Sprintf("User %s requested to upload an image, accept or reject it in the admin portal.", userID),
	)
	if err != nil {
		s.logger.Error("notification publish failed", "user_id", userID, "error", err)
	}
}

// Transition moves one submission between state prefixes, preserving the
// key suffix. The move is copy-then-delete and not atomic: a failure after
// the copy leaves the object present under both keys (duplicate, never
// lost). No automatic reconciliation is attempted.
func (s *service) Transition(ctx context.Context, req TransitionRequest) (string, error) {
	from := s.prefixes.For(req.From)
	to := s.prefixes.For(req.To)

	if !strings.HasPrefix(req.Key, from) {
		return "", &TransitionError{Key: req.Key, Op: string(req.From) + "->" + string(req.To), Err: ErrInvalidSourceState}
	}

	newKey := strings.Replace(req.Key, from, to, 1)

	if err := s.store.Copy(ctx, req.Key, newKey); err != nil {
		return "", &TransitionError{Key: req.Key, Op: "copy", Err: err}
	}
	if err := s.store.Delete(ctx, req.Key); err != nil {
		return "", &TransitionError{Key: req.Key, Op: "delete", Err: err}
	}

	s.logger.Info("submission transitioned", "key", req.Key, "new_key", newKey, "to", string(req.To))
	return newKey, nil
}

// Approve moves a pending submission to the approved state.
func (s *service) Approve(ctx context.Context, key string) (string, error) {
	return s.Transition(ctx, TransitionRequest{Key: key, From: StatePending, To: StateApproved})
}

// Reject moves a pending submission to the rejected state.
func (s *service) Reject(ctx context.Context, key string) (string, error) {
	return s.Transition(ctx, TransitionRequest{Key: key, From: StatePending, To: StateRejected})
}

// ListState enumerates every object under the given state prefix, draining
// the backend's continuation tokens, and attaches a fresh read grant to
// each item. Directory-style placeholder keys (ending in "/") are skipped.
// A failure mid-pagination aborts the whole listing; no partial item set is
// returned. Grants are never cached; a fresh call re-lists and re-issues.
func (s *service) ListState(ctx context.Context, state SubmissionState, ttl time.Duration) ([]ListedItem, error) {
	if ttl <= 0 {
		ttl = s.readTTL
	}

	prefix := s.prefixes.For(state)
	items := make([]ListedItem, 0)

	token := ""
	for {
		page, err := s.store.ListPage(ctx, prefix, token, 0)
		if err != nil {
			return nil, err
		}

		for _, obj := range page.Objects {
			if strings.HasSuffix(obj.Key, "/") {
				continue
			}
			grant, err := s.store.PresignGet(ctx, obj.Key, ttl)
			if err != nil {
				return nil, err
			}
			items = append(items, ListedItem{
				Key:          obj.Key,
				Size:         obj.Size,
				LastModified: obj.LastModified,
				Grant:        *grant,
			})
		}

		if !page.Truncated || page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	return items, nil
}
