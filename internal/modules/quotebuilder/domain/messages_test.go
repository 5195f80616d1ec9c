package domain

import (
	"testing"
	"time"

	quotes "mealQuote/internal/modules/quotes/domain"
)

func TestBuildChangeMessageNormalizesEntity(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("x", 3600))
	msg := BuildChangeMessage("Quote", " Deleted ", " q-1 ", nil, nil, at)

	if msg.Topic != "quotes.deleted" {
		t.Fatalf("unexpected topic %q", msg.Topic)
	}
	if msg.Entity != EntityQuotes || msg.Action != ActionDeleted || msg.ResourceID != "q-1" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.Timestamp.Location() != time.UTC {
		t.Fatal("expected UTC timestamp")
	}

	defaulted := BuildChangeMessage("customer", "", "", nil, nil, at)
	if defaulted.Topic != "pricing.updated" {
		t.Fatalf("expected pricing.updated, got %q", defaulted.Topic)
	}
}

func TestBuildChatMessages(t *testing.T) {
	now := time.Now()
	answer := BuildChatAnswerMessage(quotes.ChatReply{QuoteID: "q-7", Question: "cheaper?", Answer: "yes"}, now)
	if answer.Topic != TopicChatAnswer || answer.Metadata["quoteId"] != "q-7" {
		t.Fatalf("unexpected answer message %+v", answer)
	}

	failure := BuildChatErrorMessage("", "ask", "upstream unavailable", now)
	if failure.Topic != TopicChatError {
		t.Fatalf("unexpected topic %q", failure.Topic)
	}
	if _, ok := failure.Metadata["quoteId"]; ok {
		t.Fatal("empty quote id must not be added to metadata")
	}
	if failure.Metadata["reason"] != "upstream unavailable" || failure.Metadata["action"] != "ask" {
		t.Fatalf("unexpected metadata %v", failure.Metadata)
	}
}

func TestNormalizeEntity(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"quote":     EntityQuotes,
		" Prices ":  EntityPricing,
		"PRODUCT":   EntityProducts,
		"user":      EntityUsers,
		"menu_item": "menu-item",
	}
	for input, expected := range cases {
		if got := NormalizeEntity(input); got != expected {
			t.Fatalf("NormalizeEntity(%q) expected %q got %q", input, expected, got)
		}
	}
}
