package imglab

import "context"

// NoopSink is a no-operation implementation of NotificationSink.
// Useful when no notification topic is configured or for testing.
type NoopSink struct{}

// NewNoopSink creates a new no-operation notification sink
func NewNoopSink() NotificationSink {
	return &NoopSink{}
}

// Publish does nothing and returns nil
func (n *NoopSink) Publish(ctx context.Context, subject, message string) error {
	return nil
}
