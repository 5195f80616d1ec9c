package broker

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"mealQuote/internal/modules/quotebuilder/domain"
)

func TestDecodeMessageReadsEventEnvelope(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := decodeMessage(kafka.Message{
		Topic: "mealquote.quotes",
		Time:  at,
		Value: []byte(`{"entity":"Quote","action":"Deleted","resourceId":42,"metadata":{"sessionId":"s-1","version":3},"data":{"id":"42"}}`),
	})

	if msg.Entity != domain.EntityQuotes {
		t.Fatalf("expected quotes entity, got %s", msg.Entity)
	}
	if msg.Action != domain.ActionDeleted {
		t.Fatalf("expected deleted action, got %s", msg.Action)
	}
	if msg.Topic != "quotes.deleted" {
		t.Fatalf("unexpected topic %s", msg.Topic)
	}
	if msg.ResourceID != "42" {
		t.Fatalf("expected numeric resource id coerced, got %q", msg.ResourceID)
	}
	if msg.Metadata["sessionId"] != "s-1" || msg.Metadata["version"] != "3" {
		t.Fatalf("unexpected metadata %#v", msg.Metadata)
	}
	if !msg.Timestamp.Equal(at) {
		t.Fatalf("expected kafka timestamp, got %v", msg.Timestamp)
	}
}

func TestDecodeMessageFallsBackToTopic(t *testing.T) {
	msg := decodeMessage(kafka.Message{Topic: "mealquote.pricing", Value: []byte(`{"data":{"customerId":"c-7"}}`)})

	if msg.Entity != domain.EntityPricing || msg.Action != domain.ActionUpdated {
		t.Fatalf("unexpected entity/action %s/%s", msg.Entity, msg.Action)
	}
	if msg.ResourceID != "c-7" {
		t.Fatalf("expected resource id from payload, got %q", msg.ResourceID)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
}

func TestDecodeMessageKeepsNonJSONPayload(t *testing.T) {
	msg := decodeMessage(kafka.Message{Topic: "mealquote.products.created", Value: []byte("not-json")})

	if msg.Entity != domain.EntityProducts || msg.Action != domain.ActionCreated {
		t.Fatalf("unexpected entity/action %s/%s", msg.Entity, msg.Action)
	}
	if msg.Data != "not-json" {
		t.Fatalf("expected raw payload, got %#v", msg.Data)
	}
	if msg.Topic != "products.created" {
		t.Fatalf("unexpected topic %s", msg.Topic)
	}
}

func TestInferEntityActionFromTopic(t *testing.T) {
	cases := []struct {
		topic, entity, action string
	}{
		{"mealquote.users.deleted", "users", "deleted"},
		{"mealquote.users", "users", "updated"},
		{"quotes", "quotes", "updated"},
		{"", "", "updated"},
	}
	for _, tc := range cases {
		entity, action := inferEntityActionFromTopic(tc.topic)
		if entity != tc.entity || action != tc.action {
			t.Fatalf("%q: expected %s/%s, got %s/%s", tc.topic, tc.entity, tc.action, entity, action)
		}
	}
}
