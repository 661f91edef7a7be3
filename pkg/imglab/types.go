package imglab

import (
	"strings"
	"time"
)

// SubmissionState is the domain type for moderation lifecycle states.
type SubmissionState string

// Submission state constants (typed).
const (
	StatePending  SubmissionState = "pending"
	StateApproved SubmissionState = "approved"
	StateRejected SubmissionState = "rejected"
)

// States lists all moderation states in pipeline order.
func States() []SubmissionState {
	return []SubmissionState{StatePending, StateApproved, StateRejected}
}

// Prefixes holds the object-key prefix for each moderation state.
// Prefixes always end with the path separator.
type Prefixes struct {
	Pending  string
	Approved string
	Rejected string
}

// DefaultPrefixes returns the standard state prefixes.
func DefaultPrefixes() Prefixes {
	return Prefixes{
		Pending:  "pending/",
		Approved: "approved/",
		Rejected: "rejected/",
	}
}

// For returns the prefix for the given state.
func (p Prefixes) For(state SubmissionState) string {
	switch state {
	case StateApproved:
		return p.Approved
	case StateRejected:
		return p.Rejected
	default:
		return p.Pending
	}
}

// Validate checks that all prefixes are non-empty, slash-terminated and distinct.
func (p Prefixes) Validate() error {
	seen := make(map[string]bool, 3)
	for _, prefix := range []string{p.Pending, p.Approved, p.Rejected} {
		if prefix == "" || !strings.HasSuffix(prefix, "/") {
			return ErrInvalidPrefix
		}
		if seen[prefix] {
			return ErrInvalidPrefix
		}
		seen[prefix] = true
	}
	return nil
}

// ObjectMeta describes one stored object as reported by the blob store.
type ObjectMeta struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	ETag         string    `json:"etag,omitempty"`
}

// ObjectPage is one page of a prefix listing. NextToken carries the
// continuation token for the following page and is empty on the last page.
type ObjectPage struct {
	Objects   []ObjectMeta
	NextToken string
	Truncated bool
}

// WriteGrant is a time-limited credential allowing a client to upload
// exactly one object directly to the store. Fields are the form values that
// must accompany the POST (policy, signature, key, content type).
type WriteGrant struct {
	URL         string            `json:"url"`
	Fields      map[string]string `json:"fields"`
	Key         string            `json:"key"`
	ContentType string            `json:"contentType"`
	MaxBytes    int64             `json:"maxBytes"`
	ExpiresAt   time.Time         `json:"expiresAt"`
}

// ReadGrant is a time-limited credential for direct read access to one object.
type ReadGrant struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PostPolicy constrains a write grant: how long it is valid, how many bytes
// the upload may carry, the exact content type the form must declare, and
// the family prefix (e.g. "image/") the policy condition enforces.
type PostPolicy struct {
	TTL               time.Duration
	MaxBytes          int64
	ContentType       string
	ContentTypePrefix string
}

// ListedItem is one entry of a state listing: object metadata plus a fresh
// read grant.
type ListedItem struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	Grant        ReadGrant `json:"grant"`
}

// DefaultAllowedTypes maps the default admitted content types to their file
// extensions. Lookup is case-insensitive in the service.
func DefaultAllowedTypes() map[string]string {
	return map[string]string{
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/webp": "webp",
	}
}
