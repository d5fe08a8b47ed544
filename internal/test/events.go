package test

import "context"

// PublishedEvent records one event publication.
type PublishedEvent struct {
	Type    string
	OrderID string
	Payload map[string]any
}

// PublisherStub records events for assertions.
type PublisherStub struct {
	Events []PublishedEvent
}

// Publish appends the event to the recorded list.
func (s *PublisherStub) Publish(ctx context.Context, eventType, orderID string, payload map[string]any) {
	s.Events = append(s.Events, PublishedEvent{Type: eventType, OrderID: orderID, Payload: payload})
}

// Types returns recorded event types in publication order.
func (s *PublisherStub) Types() []string {
	types := make([]string, 0, len(s.Events))
	for _, e := range s.Events {
		types = append(types, e.Type)
	}
	return types
}
