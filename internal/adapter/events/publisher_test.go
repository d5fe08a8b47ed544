package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNoopPublisher(t *testing.T) {
	// Must be safe with any input, including nil payloads.
	NoopPublisher{}.Publish(context.Background(), "order.refund.initiated", "ord-1", nil)
	NoopPublisher{}.Publish(context.Background(), "", "", map[string]any{"k": "v"})
}

func TestEnvelopeShape(t *testing.T) {
	body, err := json.Marshal(envelope{
		Type:       "order.refund.initiated",
		OrderID:    "ord-1",
		Payload:    map[string]any{"refundId": "r1", "amount": 500.0},
		OccurredAt: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "order.refund.initiated" || decoded["order_id"] != "ord-1" {
		t.Fatalf("unexpected envelope: %v", decoded)
	}
	payload, ok := decoded["payload"].(map[string]any)
	if !ok || payload["refundId"] != "r1" {
		t.Fatalf("unexpected payload: %v", decoded["payload"])
	}
	if _, ok := decoded["occurred_at"]; !ok {
		t.Fatal("occurred_at missing")
	}

	// Empty payloads are omitted entirely.
	body, err = json.Marshal(envelope{Type: "t", OrderID: "o"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var sparse map[string]any
	if err := json.Unmarshal(body, &sparse); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := sparse["payload"]; ok {
		t.Fatal("empty payload must be omitted")
	}
}
