package infrastructure

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"mealQuote/internal/modules/quotebuilder/domain"
)

// ConnectionObserver is told when clients join or leave the hub.
type ConnectionObserver interface {
	ClientConnected()
	ClientDisconnected()
}

type Hub struct {
	topics   map[string]map[*Client]struct{}
	clients  map[string]*Client
	global   map[*Client]struct{}
	observer ConnectionObserver
	mu       sync.RWMutex
}

func NewHub(observer ConnectionObserver) *Hub {
	return &Hub{
		topics:   make(map[string]map[*Client]struct{}),
		clients:  make(map[string]*Client),
		global:   make(map[*Client]struct{}),
		observer: observer,
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	existing, ok := h.clients[c.key()]
	if ok && existing == c {
		return
	}
	if ok {
		h.detachLocked(existing)
	}
	h.clients[c.key()] = c
	if h.observer != nil {
		h.observer.ClientConnected()
	}
	slog.Info("ws client registered", slog.String("sessionId", c.sessionID), slog.String("quoteId", c.quoteID))
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.subscribed, topic)
	slog.Debug("ws client unsubscribed", slog.String("sessionId", c.sessionID), slog.String("quoteId", c.quoteID), slog.String("topic", topic))
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if current, ok := h.clients[c.key()]; ok && current == c {
		delete(h.clients, c.key())
		if h.observer != nil {
			h.observer.ClientDisconnected()
		}
	}
	delete(h.global, c)
	c.close()
	slog.Info("ws client detached", slog.String("sessionId", c.sessionID), slog.String("quoteId", c.quoteID))
}

// Broadcast delivers msg to subscribers of its topic or entity and to global subscribers.
// sessionId and quoteId metadata narrow delivery to matching clients.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	seen := make(map[*Client]struct{})
	clients := make([]*Client, 0, len(h.global))
	collect := func(set map[*Client]struct{}) {
		for c := range set {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			clients = append(clients, c)
		}
	}
	collect(h.topics[msg.Topic])
	if msg.Entity != "" && msg.Entity != msg.Topic {
		collect(h.topics[msg.Entity])
	}
	collect(h.global)
	h.mu.RUnlock()

	targetSession := ""
	targetQuote := ""
	if msg.Metadata != nil {
		targetSession = strings.TrimSpace(msg.Metadata["sessionId"])
		targetQuote = strings.TrimSpace(msg.Metadata["quoteId"])
	}

	for _, c := range clients {
		if targetSession != "" && c.sessionID != targetSession {
			continue
		}
		if targetQuote != "" && c.quoteID != "" && c.quoteID != targetQuote {
			continue
		}
		c.enqueue(data)
	}
}

func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
		}
	}
	slog.Info("ws client attached", slog.String("sessionId", c.sessionID), slog.String("quoteId", c.quoteID), slog.Any("topics", topics))
}

// AttachClientToAll registers the client as a global subscriber receiving every broadcasted message.
func (h *Hub) AttachClientToAll(c *Client) {
	h.registerClient(c)
	h.mu.Lock()
	h.global[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("ws client attached to all topics", slog.String("sessionId", c.sessionID))
}

// Len reports the registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
