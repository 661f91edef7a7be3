package imglab

import (
	"context"
	"time"
)

// Service defines the main interface for the imglab moderation library
type Service interface {
	// Slot operations
	RequestSlot(ctx context.Context, req RequestSlotRequest) (*SlotGrant, error)

	// Moderation transitions
	Transition(ctx context.Context, req TransitionRequest) (string, error)
	Approve(ctx context.Context, key string) (string, error)
	Reject(ctx context.Context, key string) (string, error)

	// State listings
	ListState(ctx context.Context, state SubmissionState, ttl time.Duration) ([]ListedItem, error)
}
