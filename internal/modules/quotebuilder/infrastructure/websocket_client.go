package infrastructure

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"mealQuote/internal/modules/quotebuilder/domain"
)

const (
	ChannelChat          = "chat"
	ChannelNotifications = "notifications"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 1 << 16
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	sessionID  string
	quoteID    string
	channel    string
	commands   *CommandProcessor
	subscribed map[string]struct{}
	allowTopic func(string) bool
	closeOnce  sync.Once
	sendMu     sync.Mutex
	closed     bool
	closeHooks []func(*Client)
	hookMu     sync.Mutex
}

// NewClient creates a websocket client bound to a browser session, and to a quote on the chat channel.
func NewClient(hub *Hub, conn *websocket.Conn, channel, sessionID, quoteID string, buf int, commandFn CommandHandler) *Client {
	if buf <= 0 {
		buf = 16
	}
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		sessionID:  strings.TrimSpace(sessionID),
		quoteID:    strings.TrimSpace(quoteID),
		channel:    strings.TrimSpace(channel),
		subscribed: make(map[string]struct{}),
	}
	client.commands = NewCommandProcessor(hub, commandFn)
	return client
}

// RestrictTopics limits what the subscribe command may add.
func (c *Client) RestrictTopics(allow func(topic string) bool) {
	c.allowTopic = allow
}

func (c *Client) topicAllowed(topic string) bool {
	return c.allowTopic == nil || c.allowTopic(topic)
}

func (c *Client) SessionID() string { return c.sessionID }
func (c *Client) QuoteID() string   { return c.quoteID }

func (c *Client) key() string {
	parts := []string{c.sessionID, c.channel}
	if c.quoteID != "" {
		parts = append(parts, c.quoteID)
	}
	return strings.Join(parts, ":")
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.invokeCloseHooks()
	})
}

// AddCloseHook registers a callback that will be executed once when the client closes.
func (c *Client) AddCloseHook(fn func(*Client)) {
	if fn == nil {
		return
	}
	c.hookMu.Lock()
	c.closeHooks = append(c.closeHooks, fn)
	c.hookMu.Unlock()
}

func (c *Client) invokeCloseHooks() {
	c.hookMu.Lock()
	hooks := append([]func(*Client){}, c.closeHooks...)
	c.closeHooks = nil
	c.hookMu.Unlock()

	for _, hook := range hooks {
		func(h func(*Client)) {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("ws close hook panic", slog.Any("error", r))
				}
			}()
			h(c)
		}(hook)
	}
}

// enqueue hands a frame to the write pump. A full buffer detaches the client.
func (c *Client) enqueue(data []byte) {
	c.sendMu.Lock()
	if c.closed {
		c.sendMu.Unlock()
		return
	}
	select {
	case c.send <- data:
		c.sendMu.Unlock()
	default:
		c.sendMu.Unlock()
		slog.Warn("websocket send buffer full", slog.String("sessionId", c.sessionID), slog.String("quoteId", c.quoteID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	c.enqueue(data)
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detachClient(c)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("sessionId", c.sessionID), slog.String("quoteId", c.quoteID), slog.Any("error", err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.SendDomainMessage(domain.BuildChatErrorMessage(c.quoteID, "", "malformed command", time.Now()))
			continue
		}
		c.processCommand(cmd)
	}
}

func (c *Client) processCommand(cmd Command) {
	if c.commands == nil {
		return
	}
	c.commands.Process(c, cmd)
}
