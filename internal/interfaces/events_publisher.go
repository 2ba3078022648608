package interfaces

import "context"

// Event is one message of a publish call. Key keeps events of one entity in
// order; Payload is encoded by the publisher.
type Event struct {
	Key     string
	Payload any
}

// EventPublisher sends all events of one call to topic in a single write.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...Event) error
}
