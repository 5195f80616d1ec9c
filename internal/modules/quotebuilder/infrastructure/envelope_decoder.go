package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"mealQuote/internal/modules/quotebuilder/application/port"
)

const (
	maxResponseBytes = 4 << 20
	maxErrorExcerpt  = 2048
)

// rawEnvelope is the remote API's response wrapper. Some endpoints answer with the bare payload.
type rawEnvelope struct {
	Success    *bool           `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
}

// requestJSON performs one call and decodes its payload into T.
func requestJSON[T any](ctx context.Context, rest *RESTClient, method, endpoint string, query url.Values, payload any) (T, error) {
	var zero T
	data, err := roundTrip(ctx, rest, method, endpoint, query, payload)
	if err != nil {
		return zero, err
	}
	return decodePayload[T](data)
}

// requestNoContent performs a call whose result is not used. Status and the envelope's success
// flag are checked; whatever the envelope carries as data is ignored.
func requestNoContent(ctx context.Context, rest *RESTClient, method, endpoint string, query url.Values, payload any) error {
	_, err := roundTrip(ctx, rest, method, endpoint, query, payload)
	return err
}

func roundTrip(ctx context.Context, rest *RESTClient, method, endpoint string, query url.Values, payload any) (json.RawMessage, error) {
	req, err := rest.NewRequest(ctx, method, endpoint, payload)
	if err != nil {
		slog.Error("api request build failed", slog.String("service", rest.service), slog.String("path", endpoint), slog.Any("error", err))
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	slog.Debug("api request", slog.String("method", method), slog.String("url", req.URL.String()))

	res, err := rest.Do(req)
	if err != nil {
		slog.Error("api request error", slog.String("service", rest.service), slog.String("path", endpoint), slog.Any("error", err))
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer res.Body.Close()

	slog.Debug("api response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))
	return checkResponse(res)
}

func decodeResponse[T any](res *http.Response) (T, error) {
	var zero T
	data, err := checkResponse(res)
	if err != nil {
		return zero, err
	}
	return decodePayload[T](data)
}

// checkResponse maps the status code to a sentinel error and returns the unwrapped payload.
func checkResponse(res *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusForbidden:
		return nil, port.ErrForbidden
	case res.StatusCode == http.StatusNotFound:
		return nil, port.ErrNotFound
	case res.StatusCode < 200 || res.StatusCode > 299:
		message := envelopeMessage(body)
		if message == "" {
			message = excerpt(body)
		}
		slog.Error("api unexpected status", slog.Int("status", res.StatusCode), slog.String("url", requestURL(res)), slog.String("body", excerpt(body)))
		return nil, fmt.Errorf("%w: status %d: %s", port.ErrUpstream, res.StatusCode, message)
	}
	return unwrapEnvelope(body)
}

func decodePayload[T any](data json.RawMessage) (T, error) {
	var out T
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// unwrapEnvelope returns the data of an envelope, or the whole body when it is not one.
// An envelope with success=false is an upstream error even on a 2xx status.
func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	_, hasData := fields["data"]
	_, hasSuccess := fields["success"]
	if !hasData && !hasSuccess {
		return trimmed, nil
	}

	var envelope rawEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Success != nil && !*envelope.Success {
		message := messageText(envelope.Message)
		if message == "" {
			message = "request unsuccessful"
		}
		if errs := strings.TrimSpace(string(envelope.Errors)); errs != "" && errs != "null" {
			message += ": " + errs
		}
		return nil, fmt.Errorf("%w: %s", port.ErrUpstream, message)
	}
	return envelope.Data, nil
}

func envelopeMessage(body []byte) string {
	var envelope rawEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return messageText(envelope.Message)
}

// messageText accepts a string message or a list of messages.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}

func excerpt(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorExcerpt {
		text = text[:maxErrorExcerpt]
	}
	return text
}

func requestURL(res *http.Response) string {
	if res.Request == nil || res.Request.URL == nil {
		return ""
	}
	return res.Request.URL.String()
}
