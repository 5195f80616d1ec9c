package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	REST      RESTConfig
	Cache     CacheConfig
	Kafka     KafkaConfig
	Security  SecurityConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

// RESTConfig points at the remote quote/pricing API. Each service URL falls back to BaseURL.
type RESTConfig struct {
	BaseURL     string
	QuoteURL    string
	PricingURL  string
	ProductsURL string
	UsersURL    string
	APIKey      string
	Timeout     time.Duration
	RateLimit   float64
	RateBurst   int
}

type CacheConfig struct {
	TTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics maps an entity (quotes, pricing, products, users) to the kafka topics carrying its change events.
	Topics map[string][]string
}

type SecurityConfig struct {
	PricingPassword     string
	PricingPasswordHash string
	SessionSecret       string
	SessionTTL          time.Duration
}

type WebsocketConfig struct {
	SendBuffer int
}

var defaultTopics = map[string][]string{
	"quotes":   {"mealquote.quotes"},
	"pricing":  {"mealquote.pricing"},
	"products": {"mealquote.products"},
	"users":    {"mealquote.users"},
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{Port: envOrDefault("PORT", "8080")},
		Logging: LoggingConfig{
			Directory: envOrDefault("LOG_DIRECTORY", "./logs"),
			Level:     envOrDefault("LOG_LEVEL", "info"),
			Format:    envOrDefault("LOG_FORMAT", "text"),
		},
		REST: RESTConfig{
			BaseURL: envOrDefault("API_BASE_URL", "http://localhost:3000"),
			APIKey:  strings.TrimSpace(os.Getenv("API_KEY")),
		},
		Kafka: KafkaConfig{
			GroupID: envOrDefault("KAFKA_GROUP_ID", "meal-quote-bff"),
			Topics:  map[string][]string{},
		},
		Security: SecurityConfig{
			PricingPassword:     os.Getenv("PRICING_PASSWORD"),
			PricingPasswordHash: strings.TrimSpace(os.Getenv("PRICING_PASSWORD_HASH")),
			SessionSecret:       strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		},
	}
	cfg.REST.QuoteURL = envOrDefault("QUOTE_API_URL", cfg.REST.BaseURL)
	cfg.REST.PricingURL = envOrDefault("PRICING_API_URL", cfg.REST.BaseURL)
	cfg.REST.ProductsURL = envOrDefault("PRODUCTS_API_URL", cfg.REST.BaseURL)
	cfg.REST.UsersURL = envOrDefault("USERS_API_URL", cfg.REST.BaseURL)

	var err error
	if cfg.REST.Timeout, err = durationEnv("API_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.REST.RateLimit, err = floatEnv("API_RATE_LIMIT", 20); err != nil {
		return Config{}, err
	}
	if cfg.REST.RateBurst, err = intEnv("API_RATE_BURST", 10); err != nil {
		return Config{}, err
	}
	if cfg.Cache.TTL, err = durationEnv("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Security.SessionTTL, err = durationEnv("SESSION_TTL", 8*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Websocket.SendBuffer, err = intEnv("WS_SEND_BUFFER", 16); err != nil {
		return Config{}, err
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	if strings.TrimSpace(brokers) == "" {
		brokers = os.Getenv("KAFKA_BROKER")
	}
	cfg.Kafka.Brokers = splitList(brokers)

	for entity, fallback := range defaultTopics {
		topics := splitList(os.Getenv("KAFKA_TOPICS_" + strings.ToUpper(entity)))
		if len(topics) == 0 {
			topics = fallback
		}
		cfg.Kafka.Topics[entity] = topics
	}

	if cfg.Security.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.Security.PricingPassword == "" && cfg.Security.PricingPasswordHash == "" {
		return Config{}, fmt.Errorf("PRICING_PASSWORD or PRICING_PASSWORD_HASH is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
