package domain

import "strings"

const (
	SystemEntity = "system"
	ChatEntity   = "chat"

	EntityQuotes   = "quotes"
	EntityPricing  = "pricing"
	EntityProducts = "products"
	EntityUsers    = "users"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionAnswer    = "answer"
	ActionCleared   = "cleared"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"

	TopicSystemConnected = SystemEntity + "." + ActionConnected
	TopicSystemPong      = SystemEntity + "." + ActionPong
	TopicChatAnswer      = ChatEntity + "." + ActionAnswer
	TopicChatError       = ChatEntity + "." + ActionError
	TopicChatCleared     = ChatEntity + "." + ActionCleared
)

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

var entityAliases = map[string]string{
	"quote":     EntityQuotes,
	"quotes":    EntityQuotes,
	"price":     EntityPricing,
	"prices":    EntityPricing,
	"pricing":   EntityPricing,
	"baseprice": EntityPricing,
	"customer":  EntityPricing,
	"customers": EntityPricing,
	"product":   EntityProducts,
	"products":  EntityProducts,
	"user":      EntityUsers,
	"users":     EntityUsers,
}

// NormalizeEntity maps singular, plural and underscore variants to the canonical entity name.
// Unknown names are returned lowercased.
func NormalizeEntity(raw string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if canonical, ok := entityAliases[normalized]; ok {
		return canonical
	}
	return normalized
}
