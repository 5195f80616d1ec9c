package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mealQuote/internal/modules/quotebuilder/application/port"
	quotes "mealQuote/internal/modules/quotes/domain"
)

var (
	ErrNoPreviousRequest = errors.New("no previous quote request for this session")
	ErrMissingQuoteID    = fmt.Errorf("%w: missing quote id", ErrInvalidInput)
	ErrMissingQuestion   = fmt.Errorf("%w: missing question", ErrInvalidInput)
)

// QuoteUseCase drives quote submission, chat and the saved quote records.
type QuoteUseCase struct {
	api        port.QuoteAPI
	cache      *QueryCache
	sessions   *sessionStore
	validator  *PayloadValidator
	calculator quotes.QuoteCalculator
}

func NewQuoteUseCase(api port.QuoteAPI, cache *QueryCache, validator *PayloadValidator) *QuoteUseCase {
	return &QuoteUseCase{
		api:       api,
		cache:     cache,
		sessions:  newSessionStore(defaultSessionTTL, defaultSessionEntries),
		validator: validator,
	}
}

// Submit validates the form, remembers it for Retry and requests a quote. Whatever goes wrong,
// the returned response is the failed-quote placeholder and the error says why.
// An empty session submits without remembering the form.
func (uc *QuoteUseCase) Submit(ctx context.Context, session string, form quotes.QuoteFormData) (quotes.QuoteResponse, error) {
	if err := uc.validator.Struct(form); err != nil {
		return quotes.FailedQuoteResponse(), err
	}
	normalized := form.Normalized()
	uc.sessions.remember(session, normalized)
	return uc.request(ctx, session, normalized)
}

// Retry re-issues the last form submitted in session.
func (uc *QuoteUseCase) Retry(ctx context.Context, session string) (quotes.QuoteResponse, error) {
	form, ok := uc.sessions.last(session)
	if !ok {
		return quotes.FailedQuoteResponse(), ErrNoPreviousRequest
	}
	return uc.request(ctx, session, form)
}

func (uc *QuoteUseCase) request(ctx context.Context, session string, form quotes.QuoteFormData) (resp quotes.QuoteResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("quote request panic", slog.String("sessionId", session), slog.Any("panic", r))
			resp, err = quotes.FailedQuoteResponse(), fmt.Errorf("%w: quote request aborted", port.ErrUpstream)
		}
	}()

	resp, err = uc.api.RequestQuote(ctx, form)
	if err != nil {
		slog.Warn("quote request failed", slog.String("sessionId", session), slog.String("careHome", form.CareHomeName), slog.Any("error", err))
		return quotes.FailedQuoteResponse(), fmt.Errorf("request quote: %w", err)
	}
	if resp.QuoteID != "" {
		uc.cache.Invalidate(KeyQuotes)
	}
	slog.Info("quote generated", slog.String("sessionId", session), slog.String("quoteId", resp.QuoteID), slog.Float64("yearlyCost", resp.YearlyCost))
	return resp, nil
}

// Chat asks the quoting service a question about a quote. quoteID may be empty for a general question.
func (uc *QuoteUseCase) Chat(ctx context.Context, quoteID, question string) (quotes.ChatReply, error) {
	quoteID = strings.TrimSpace(quoteID)
	question = strings.TrimSpace(question)
	if question == "" {
		return quotes.ChatReply{}, ErrMissingQuestion
	}

	reply, err := uc.api.Chat(ctx, quoteID, question)
	if err != nil {
		return quotes.ChatReply{}, fmt.Errorf("chat: %w", err)
	}
	if reply.QuoteID == "" {
		reply.QuoteID = quoteID
	}
	if reply.Question == "" {
		reply.Question = question
	}
	if reply.QuoteID != "" {
		uc.cache.Invalidate(QuoteHistoryKey(reply.QuoteID))
	}
	return reply, nil
}

func (uc *QuoteUseCase) Clear(ctx context.Context) error {
	if err := uc.api.ClearChat(ctx); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}

func (uc *QuoteUseCase) List(ctx context.Context) ([]quotes.SavedQuote, error) {
	return cachedList(ctx, uc.cache, KeyQuotes, uc.api.ListQuotes)
}

func (uc *QuoteUseCase) Get(ctx context.Context, id string) (quotes.SavedQuote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return quotes.SavedQuote{}, ErrMissingQuoteID
	}
	return cachedFetch(ctx, uc.cache, QuoteKey(id), func(ctx context.Context) (quotes.SavedQuote, error) {
		return uc.api.GetQuote(ctx, id)
	})
}

func (uc *QuoteUseCase) History(ctx context.Context, id string) ([]quotes.QuoteHistory, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingQuoteID
	}
	return cachedList(ctx, uc.cache, QuoteHistoryKey(id), func(ctx context.Context) ([]quotes.QuoteHistory, error) {
		return uc.api.QuoteHistory(ctx, id)
	})
}

func (uc *QuoteUseCase) Save(ctx context.Context, quote quotes.SavedQuote) (quotes.SavedQuote, error) {
	quote.CareHomeName = strings.TrimSpace(quote.CareHomeName)
	if quote.CareHomeName == "" {
		quote.CareHomeName = strings.TrimSpace(quote.FormData.CareHomeName)
	}
	if err := uc.validator.Struct(quote); err != nil {
		return quotes.SavedQuote{}, err
	}

	saved, err := uc.api.SaveQuote(ctx, quote)
	if err != nil {
		return quotes.SavedQuote{}, fmt.Errorf("save quote: %w", err)
	}
	keys := []string{KeyQuotes}
	if saved.ID != "" {
		keys = append(keys, QuoteKey(saved.ID))
	}
	uc.cache.Invalidate(keys...)
	return saved, nil
}

// Delete removes a quote. The list and the quote's entries are invalidated even when the
// remote API reports it already gone.
func (uc *QuoteUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingQuoteID
	}
	err := uc.api.DeleteQuote(ctx, id)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("delete quote: %w", err)
	}
	uc.cache.Invalidate(KeyQuotes, QuoteKey(id), QuoteHistoryKey(id))
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

func (uc *QuoteUseCase) PushToHubSpot(ctx context.Context, id string) (quotes.HubSpotSync, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return quotes.HubSpotSync{}, ErrMissingQuoteID
	}
	sync, err := uc.api.PushToHubSpot(ctx, id)
	if err != nil {
		return quotes.HubSpotSync{}, fmt.Errorf("push quote to hubspot: %w", err)
	}
	if sync.QuoteID == "" {
		sync.QuoteID = id
	}
	uc.cache.Invalidate(QuoteKey(id))
	return sync, nil
}
