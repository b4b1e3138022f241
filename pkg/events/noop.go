package events

import "context"

// NoOpPublisher is a publisher that does nothing. Used in tests and when no
// queue is configured.
type NoOpPublisher struct{}

// Publish does nothing.
func (p NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
