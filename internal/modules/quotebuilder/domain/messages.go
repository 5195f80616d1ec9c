package domain

import (
	"strings"
	"time"

	quotes "mealQuote/internal/modules/quotes/domain"
)

// BuildConnectedMessage greets a websocket client with what it is subscribed to.
func BuildConnectedMessage(sessionID, quoteID, mode string, topics []string, at time.Time) *Message {
	metadata := Metadata{"sessionId": sessionID}
	if trimmed := strings.TrimSpace(quoteID); trimmed != "" {
		metadata["quoteId"] = trimmed
	}
	return &Message{
		Topic:      TopicSystemConnected,
		Entity:     SystemEntity,
		Action:     ActionConnected,
		ResourceID: strings.TrimSpace(quoteID),
		Metadata:   metadata,
		Data: map[string]any{
			"mode":   mode,
			"topics": topics,
		},
		Timestamp: at.UTC(),
	}
}

// BuildChatAnswerMessage wraps a chat reply for the chat websocket.
func BuildChatAnswerMessage(reply quotes.ChatReply, at time.Time) *Message {
	return &Message{
		Topic:      TopicChatAnswer,
		Entity:     ChatEntity,
		Action:     ActionAnswer,
		ResourceID: reply.QuoteID,
		Metadata:   quoteMetadata(reply.QuoteID),
		Data:       reply,
		Timestamp:  at.UTC(),
	}
}

// BuildChatErrorMessage reports a failed chat command. The reason is shown to the user as-is.
func BuildChatErrorMessage(quoteID, action, reason string, at time.Time) *Message {
	metadata := quoteMetadata(quoteID)
	metadata["action"] = action
	if strings.TrimSpace(reason) != "" {
		metadata["reason"] = reason
	}
	return &Message{
		Topic:      TopicChatError,
		Entity:     ChatEntity,
		Action:     ActionError,
		ResourceID: strings.TrimSpace(quoteID),
		Metadata:   metadata,
		Data:       map[string]string{"error": reason},
		Timestamp:  at.UTC(),
	}
}

func BuildChatClearedMessage(quoteID string, at time.Time) *Message {
	return &Message{
		Topic:      TopicChatCleared,
		Entity:     ChatEntity,
		Action:     ActionCleared,
		ResourceID: strings.TrimSpace(quoteID),
		Metadata:   quoteMetadata(quoteID),
		Timestamp:  at.UTC(),
	}
}

func BuildPongMessage(at time.Time) *Message {
	return &Message{
		Topic:     TopicSystemPong,
		Entity:    SystemEntity,
		Action:    ActionPong,
		Timestamp: at.UTC(),
	}
}

// BuildChangeMessage is the notification fan-out for a change event on entity.
func BuildChangeMessage(entity, action, resourceID string, metadata Metadata, data any, at time.Time) *Message {
	canonical := NormalizeEntity(entity)
	cleanAction := strings.ToLower(strings.TrimSpace(action))
	if cleanAction == "" {
		cleanAction = ActionUpdated
	}
	return &Message{
		Topic:      CustomTopic(canonical, cleanAction),
		Entity:     canonical,
		Action:     cleanAction,
		ResourceID: strings.TrimSpace(resourceID),
		Metadata:   metadata,
		Data:       data,
		Timestamp:  at.UTC(),
	}
}

func quoteMetadata(quoteID string) Metadata {
	metadata := Metadata{}
	if trimmed := strings.TrimSpace(quoteID); trimmed != "" {
		metadata["quoteId"] = trimmed
	}
	return metadata
}
