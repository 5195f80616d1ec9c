package infrastructure

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"mealQuote/internal/modules/quotebuilder/application/port"
	quotes "mealQuote/internal/modules/quotes/domain"
)

// QuoteHTTPClient implements port.QuoteAPI against the quote service.
type QuoteHTTPClient struct {
	rest *RESTClient
}

func NewQuoteHTTPClient(rest *RESTClient) *QuoteHTTPClient {
	return &QuoteHTTPClient{rest: rest}
}

func (c *QuoteHTTPClient) RequestQuote(ctx context.Context, form quotes.QuoteFormData) (quotes.QuoteResponse, error) {
	return requestJSON[quotes.QuoteResponse](ctx, c.rest, http.MethodPost, pathQuoteRequest, nil, form)
}

// Chat sends the question as a query parameter, as the quote service expects.
func (c *QuoteHTTPClient) Chat(ctx context.Context, quoteID, question string) (quotes.ChatReply, error) {
	query := url.Values{}
	query.Set("question", question)
	if trimmed := strings.TrimSpace(quoteID); trimmed != "" {
		query.Set("quoteId", trimmed)
	}
	return requestJSON[quotes.ChatReply](ctx, c.rest, http.MethodPost, pathQuoteChat, query, nil)
}

func (c *QuoteHTTPClient) ClearChat(ctx context.Context) error {
	return requestNoContent(ctx, c.rest, http.MethodPost, pathQuoteClear, nil, nil)
}

func (c *QuoteHTTPClient) ListQuotes(ctx context.Context) ([]quotes.SavedQuote, error) {
	return requestJSON[[]quotes.SavedQuote](ctx, c.rest, http.MethodGet, pathQuotes, nil, nil)
}

func (c *QuoteHTTPClient) GetQuote(ctx context.Context, id string) (quotes.SavedQuote, error) {
	path, err := quotePath(id)
	if err != nil {
		return quotes.SavedQuote{}, err
	}
	return requestJSON[quotes.SavedQuote](ctx, c.rest, http.MethodGet, path, nil, nil)
}

func (c *QuoteHTTPClient) QuoteHistory(ctx context.Context, id string) ([]quotes.QuoteHistory, error) {
	path, err := quoteHistoryPath(id)
	if err != nil {
		return nil, err
	}
	return requestJSON[[]quotes.QuoteHistory](ctx, c.rest, http.MethodGet, path, nil, nil)
}

func (c *QuoteHTTPClient) SaveQuote(ctx context.Context, quote quotes.SavedQuote) (quotes.SavedQuote, error) {
	return requestJSON[quotes.SavedQuote](ctx, c.rest, http.MethodPost, pathQuotes, nil, quote)
}

func (c *QuoteHTTPClient) DeleteQuote(ctx context.Context, id string) error {
	path, err := quotePath(id)
	if err != nil {
		return err
	}
	return requestNoContent(ctx, c.rest, http.MethodDelete, path, nil, nil)
}

func (c *QuoteHTTPClient) PushToHubSpot(ctx context.Context, id string) (quotes.HubSpotSync, error) {
	path, err := quoteHubSpotPath(id)
	if err != nil {
		return quotes.HubSpotSync{}, err
	}
	return requestJSON[quotes.HubSpotSync](ctx, c.rest, http.MethodPost, path, nil, nil)
}

var _ port.QuoteAPI = (*QuoteHTTPClient)(nil)
