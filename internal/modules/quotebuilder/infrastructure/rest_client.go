package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const apiKeyHeader = "x-api-key"

// RequestObserver records upstream call outcomes.
type RequestObserver interface {
	ObserveRequest(service, method, status string, elapsed time.Duration)
}

// RESTOptions configures a RESTClient. Zero values mean: default timeout, no api key, no rate limit.
type RESTOptions struct {
	Service   string
	Timeout   time.Duration
	APIKey    string
	RateLimit float64
	RateBurst int
	Client    *http.Client
	Observer  RequestObserver
}

// RESTClient wraps http.Client with base URL handling, the static api key and an outbound rate limit
// so adapters only deal with paths and payloads.
type RESTClient struct {
	service  string
	baseURL  string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	observer RequestObserver
}

func NewRESTClient(baseURL string, opts RESTOptions) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:3000"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(opts.Timeout)}
	} else if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	service := strings.TrimSpace(opts.Service)
	if service == "" {
		service = "api"
	}
	return &RESTClient{
		service:  service,
		baseURL:  trimmed,
		apiKey:   strings.TrimSpace(opts.APIKey),
		client:   client,
		limiter:  limiter,
		observer: opts.Observer,
	}
}

// NewRequest builds a request against the base URL. A non-nil payload is sent as JSON.
func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, payload any) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do waits for the rate limiter, stamps the api key and sends the request.
func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	started := time.Now()
	res, err := c.client.Do(req)
	if c.observer != nil {
		status := "error"
		if err == nil {
			status = strconv.Itoa(res.StatusCode)
		}
		c.observer.ObserveRequest(c.service, req.Method, status, time.Since(started))
	}
	return res, err
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
