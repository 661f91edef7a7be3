package imglab

// Request/Response DTOs

// RequestSlotRequest contains parameters for allocating an upload slot.
type RequestSlotRequest struct {
	UserID      string
	ContentType string
}

// SlotGrant is the result of a successful slot allocation: the write grant
// plus the target the caller uploads against.
type SlotGrant struct {
	Grant       WriteGrant
	Key         string
	ContentType string
	MaxBytes    int64
	ExpiresIn   int64
}

// TransitionRequest contains parameters for moving a submission between
// moderation states.
type TransitionRequest struct {
	Key  string
	From SubmissionState
	To   SubmissionState
}
