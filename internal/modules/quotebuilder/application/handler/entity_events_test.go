package handler

import (
	"context"
	"testing"
	"time"

	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/modules/quotebuilder/domain"
)

type capturingBroadcaster struct {
	messages []*domain.Message
}

func (b *capturingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.messages = append(b.messages, msg)
}

func warm(t *testing.T, cache *usecase.QueryCache, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if _, err := cache.Fetch(context.Background(), key, func(context.Context) (any, error) { return key, nil }); err != nil {
			t.Fatalf("warm %s: %v", key, err)
		}
	}
}

func TestEntityEventHandlerInvalidatesAndBroadcasts(t *testing.T) {
	cache := usecase.NewQueryCache(0, nil)
	warm(t, cache, usecase.KeyQuotes, usecase.QuoteKey("q-1"), usecase.QuoteHistoryKey("q-1"), usecase.QuoteKey("q-2"), usecase.KeyUsers)

	broadcaster := &capturingBroadcaster{}
	h := NewEntityEventHandler("quote", "mealquote.quotes", nil, cache, usecase.NewBroadcastUseCase(broadcaster))
	if h.Topic() != "mealquote.quotes" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}

	err := h.Handle(context.Background(), &domain.Message{Entity: "quote", Action: "Deleted", ResourceID: "q-1", Timestamp: time.Now()})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if cache.Len() != 2 {
		t.Fatalf("expected q-2 and users to remain cached, have %d entries", cache.Len())
	}
	if len(broadcaster.messages) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(broadcaster.messages))
	}
	if got := broadcaster.messages[0].Topic; got != "quotes.deleted" {
		t.Fatalf("unexpected notification topic %q", got)
	}
}

func TestEntityEventHandlerFiltersActions(t *testing.T) {
	cache := usecase.NewQueryCache(0, nil)
	warm(t, cache, usecase.KeyProducts)

	broadcaster := &capturingBroadcaster{}
	h := NewEntityEventHandler("products", "mealquote.products", []string{"created", " UPDATED "}, cache, usecase.NewBroadcastUseCase(broadcaster))

	if err := h.Handle(context.Background(), &domain.Message{Action: "viewed"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if cache.Len() != 1 || len(broadcaster.messages) != 0 {
		t.Fatal("filtered actions must be ignored")
	}

	if err := h.Handle(context.Background(), &domain.Message{Action: "updated"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if cache.Len() != 0 {
		t.Fatal("expected products to be invalidated")
	}
	if len(broadcaster.messages) != 1 || broadcaster.messages[0].Topic != "products.updated" {
		t.Fatalf("unexpected broadcasts %+v", broadcaster.messages)
	}
}

func TestEntityEventHandlerPricingDropsCustomers(t *testing.T) {
	cache := usecase.NewQueryCache(0, nil)
	warm(t, cache, usecase.KeyPricing, usecase.KeyBasePrices, usecase.CustomerKey("c1"), usecase.CustomerKey("c2"), usecase.KeyProducts)

	h := NewEntityEventHandler("", "mealquote.pricing", nil, cache, nil)
	if err := h.Handle(context.Background(), &domain.Message{Entity: "customer", Action: "updated", ResourceID: "c1"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected only products to remain, have %d", cache.Len())
	}
}
