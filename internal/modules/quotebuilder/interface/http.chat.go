package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/modules/quotebuilder/domain"
	"mealQuote/internal/modules/quotebuilder/infrastructure"
	quotes "mealQuote/internal/modules/quotes/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	chatActionAsk   = "ask"
	chatActionClear = "clear"
)

// websocketSessionID reads the session from the query string, then the header; browsers
// cannot set headers on a websocket handshake.
func websocketSessionID(c echo.Context) string {
	if id := strings.TrimSpace(c.QueryParam("sessionId")); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Request().Header.Get(HeaderSessionID)); id != "" {
		return id
	}
	return uuid.NewString()
}

// NewChatWebsocketHandler exposes /ws/quote/:id/chat. Clients send ask, clear and ping commands
// and receive chat.answer, chat.error, chat.cleared and system.pong frames.
func NewChatWebsocketHandler(hub *infrastructure.Hub, uc *usecase.QuoteUseCase, sendBuffer int) echo.HandlerFunc {
	return func(c echo.Context) error {
		quoteID := strings.TrimSpace(c.Param("id"))
		if quoteID == "" {
			return respondError(c, usecase.ErrMissingQuoteID, nil)
		}
		session := websocketSessionID(c)

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("chat ws upgrade failed", slog.String("quoteId", quoteID), slog.String("reqID", requestID(c)), slog.Any("error", err))
			return err
		}

		client := infrastructure.NewClient(hub, conn, infrastructure.ChannelChat, session, quoteID, sendBuffer, newChatCommandHandler(uc))
		client.RestrictTopics(allowPublicTopic)
		topics := []string{domain.TopicChatAnswer, domain.TopicChatError, domain.TopicChatCleared}
		hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(domain.BuildConnectedMessage(session, quoteID, infrastructure.ChannelChat, topics, time.Now()))
		slog.Info("chat ws connected", slog.String("quoteId", quoteID), slog.String("sessionId", session), slog.String("ip", c.RealIP()))
		return nil
	}
}

func newChatCommandHandler(uc *usecase.QuoteUseCase) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		switch action {
		case chatActionAsk:
			handleAsk(ctx, uc, client, cmd)
		case chatActionClear:
			if err := uc.Clear(ctx); err != nil {
				sendChatError(client, action, err)
				return
			}
			client.SendDomainMessage(domain.BuildChatClearedMessage(client.QuoteID(), time.Now()))
		default:
			client.SendDomainMessage(domain.BuildChatErrorMessage(client.QuoteID(), action, "unsupported action", time.Now()))
		}
	}
}

func handleAsk(ctx context.Context, uc *usecase.QuoteUseCase, client *infrastructure.Client, cmd infrastructure.Command) {
	var ask quotes.AskCommand
	if len(cmd.Payload) > 0 {
		if err := json.Unmarshal(cmd.Payload, &ask); err != nil {
			client.SendDomainMessage(domain.BuildChatErrorMessage(client.QuoteID(), chatActionAsk, "invalid payload", time.Now()))
			return
		}
	}
	reply, err := uc.Chat(ctx, client.QuoteID(), ask.Question)
	if err != nil {
		sendChatError(client, chatActionAsk, err)
		return
	}
	client.SendDomainMessage(domain.BuildChatAnswerMessage(reply, time.Now()))
}

func sendChatError(client *infrastructure.Client, action string, err error) {
	reason := errorTable.Resolve(err).Message
	slog.Warn("chat command failed", slog.String("action", action), slog.String("quoteId", client.QuoteID()), slog.Any("error", err))
	client.SendDomainMessage(domain.BuildChatErrorMessage(client.QuoteID(), action, reason, time.Now()))
}
