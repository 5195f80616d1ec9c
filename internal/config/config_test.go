package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaultsAndFallbacks(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PRICING_PASSWORD", "letmein")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("PRICING_API_URL", "https://pricing.example.com")
	t.Setenv("KAFKA_BROKERS", " broker-1:9092 , ,broker-2:9092")
	t.Setenv("KAFKA_TOPICS_QUOTES", "quotes.a,quotes.b")
	t.Setenv("API_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.REST.QuoteURL != "https://api.example.com" {
		t.Fatalf("expected quote url fallback, got %s", cfg.REST.QuoteURL)
	}
	if cfg.REST.PricingURL != "https://pricing.example.com" {
		t.Fatalf("expected pricing override, got %s", cfg.REST.PricingURL)
	}
	if cfg.REST.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.REST.Timeout)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if got := cfg.Kafka.Topics["quotes"]; len(got) != 2 || got[0] != "quotes.a" {
		t.Fatalf("unexpected quote topics: %v", got)
	}
	if got := cfg.Kafka.Topics["users"]; len(got) != 1 || got[0] != "mealquote.users" {
		t.Fatalf("unexpected default user topics: %v", got)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Server.Port)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PRICING_PASSWORD", "x")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without session secret")
	}

	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PRICING_PASSWORD", "")
	t.Setenv("PRICING_PASSWORD_HASH", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without pricing password")
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PRICING_PASSWORD", "x")
	t.Setenv("CACHE_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
