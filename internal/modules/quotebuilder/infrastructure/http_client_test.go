package infrastructure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pricing "mealQuote/internal/modules/pricing/domain"
	"mealQuote/internal/modules/quotebuilder/application/port"
	quotes "mealQuote/internal/modules/quotes/domain"
	users "mealQuote/internal/modules/users/domain"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	apiKey string
	body   string
}

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, func() recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		last recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		last = recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			apiKey: r.Header.Get(apiKeyHeader),
			body:   string(raw),
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, func() recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestQuoteClientRequestQuoteUnwrapsEnvelope(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusOK, `{"success":true,"statusCode":200,"message":"ok","data":{"quoteId":"q-1","dailyCost":120.5,"summary":"Fine"}}`)
	client := NewQuoteHTTPClient(NewRESTClient(srv.URL, RESTOptions{APIKey: "secret"}))

	res, err := client.RequestQuote(context.Background(), quotes.QuoteFormData{CareHomeName: "Oak House"})
	require.NoError(t, err)

	assert.Equal(t, "q-1", res.QuoteID)
	assert.Equal(t, 120.5, res.DailyCost)
	assert.Equal(t, http.MethodPost, seen().method)
	assert.Equal(t, "/quote/request", seen().path)
	assert.Equal(t, "secret", seen().apiKey)
	assert.Contains(t, seen().body, `"careHomeName":"Oak House"`)
}

func TestQuoteClientAcceptsBarePayload(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `[{"id":"q-1","careHomeName":"Oak House"},{"id":"q-2","careHomeName":"Elm Court"}]`)
	client := NewQuoteHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	list, err := client.ListQuotes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Elm Court", list[1].CareHomeName)
}

func TestQuoteClientChatSendsQueryParameters(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusOK, `{"success":true,"data":{"quoteId":"q-9","question":"cheaper?","answer":"Yes"}}`)
	client := NewQuoteHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	reply, err := client.Chat(context.Background(), " q-9 ", "cheaper?")
	require.NoError(t, err)

	assert.Equal(t, "Yes", reply.Answer)
	assert.Equal(t, "/quote/chat", seen().path)
	assert.Contains(t, seen().query, "question=cheaper%3F")
	assert.Contains(t, seen().query, "quoteId=q-9")
	assert.Empty(t, seen().body)
}

func TestQuoteClientChatOmitsEmptyQuoteID(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusOK, `{"success":true,"data":{"answer":"Hi"}}`)
	client := NewQuoteHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	_, err := client.Chat(context.Background(), "", "hello")
	require.NoError(t, err)
	assert.NotContains(t, seen().query, "quoteId")
}

func TestQuoteClientResourcePaths(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusOK, `{"success":true,"data":null}`)
	client := NewQuoteHTTPClient(NewRESTClient(srv.URL+"/", RESTOptions{}))
	ctx := context.Background()

	require.NoError(t, client.DeleteQuote(ctx, "q 1"))
	assert.Equal(t, http.MethodDelete, seen().method)
	assert.Equal(t, "/quote/q 1", seen().path)

	_, err := client.QuoteHistory(ctx, "q-2")
	require.NoError(t, err)
	assert.Equal(t, "/quote/q-2/history", seen().path)

	_, err = client.PushToHubSpot(ctx, "q-3")
	require.NoError(t, err)
	assert.Equal(t, "/quote/q-3/hubspot", seen().path)

	require.NoError(t, client.ClearChat(ctx))
	assert.Equal(t, "/quote/clear", seen().path)
}

func TestQuoteClientRejectsBlankID(t *testing.T) {
	client := NewQuoteHTTPClient(NewRESTClient("http://127.0.0.1:1", RESTOptions{}))
	_, err := client.GetQuote(context.Background(), "  ")
	require.Error(t, err)
}

func TestDecodeMapsStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{}`, want: port.ErrForbidden},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, want: port.ErrForbidden},
		{name: "not found", status: http.StatusNotFound, body: `{"message":"missing"}`, want: port.ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: `{"success":false,"message":"boom"}`, want: port.ErrUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newUpstream(t, tc.status, tc.body)
			client := NewQuoteHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))
			_, err := client.GetQuote(context.Background(), "q-1")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecodeUnsuccessfulEnvelopeCarriesMessageAndErrors(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"success":false,"statusCode":422,"message":["name required","email invalid"],"errors":{"email":"invalid"}}`)
	client := NewUserHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	_, err := client.CreateUser(context.Background(), users.NewUser{Name: "A", Email: "a@example.com"})
	require.ErrorIs(t, err, port.ErrUpstream)
	assert.Contains(t, err.Error(), "name required; email invalid")
	assert.Contains(t, err.Error(), `"email":"invalid"`)
}

func TestDecodeServerErrorFallsBackToExcerpt(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusBadGateway, `gateway exploded`)
	client := NewProductHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	_, err := client.ListProducts(context.Background())
	require.ErrorIs(t, err, port.ErrUpstream)
	assert.Contains(t, err.Error(), "gateway exploded")
	assert.Contains(t, err.Error(), "502")
}

func TestPricingClientPaths(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusOK, `{"success":true,"data":{"customerId":"c-1","name":"Oak","basePercentage":10,"prices":[]}}`)
	client := NewPricingHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))
	ctx := context.Background()

	customer, err := client.CustomerPrices(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, customer.BasePercentage)
	assert.Equal(t, "/pricing/customer/c-1", seen().path)

	pct := 5.0
	require.NoError(t, client.SavePricing(ctx, pricing.PricingUpdate{CustomerID: "c-1", BasePercentage: &pct}))
	assert.Equal(t, http.MethodPost, seen().method)
	assert.Equal(t, "/pricing", seen().path)
	assert.Contains(t, seen().body, `"basePercentage":5`)
}

func TestPricingClientBasePrices(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusOK, `{"success":true,"data":[{"productId":"p-1","productName":"Cottage Pie","category":"Standard","unitPrice":3.2}]}`)
	client := NewPricingHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	prices, err := client.BasePrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "Cottage Pie", prices[0].ProductName)
	assert.Equal(t, "/pricing/baseprice", seen().path)
}

func TestUserClientDelete(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusNoContent, ``)
	client := NewUserHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	require.NoError(t, client.DeleteUser(context.Background(), "u-4"))
	assert.Equal(t, http.MethodDelete, seen().method)
	assert.Equal(t, "/user/u-4", seen().path)
}

func TestCallsWithoutResultIgnoreAnyData(t *testing.T) {
	for _, body := range []string{
		`{"success":true,"data":"q-1"}`,
		`{"success":true,"data":true}`,
		`{"success":true,"data":[]}`,
		`{"success":true,"data":42}`,
		`Deleted`,
	} {
		t.Run(body, func(t *testing.T) {
			srv, seen := newUpstream(t, http.StatusOK, body)
			rest := NewRESTClient(srv.URL, RESTOptions{})

			require.NoError(t, NewQuoteHTTPClient(rest).DeleteQuote(context.Background(), "q-1"))
			assert.Equal(t, "/quote/q-1", seen().path)
			require.NoError(t, NewQuoteHTTPClient(rest).ClearChat(context.Background()))
			require.NoError(t, NewUserHTTPClient(rest).DeleteUser(context.Background(), "u-1"))
			require.NoError(t, NewPricingHTTPClient(rest).SavePricing(context.Background(), pricing.PricingUpdate{CustomerID: "c-1"}))
		})
	}
}

func TestCallsWithoutResultStillCheckSuccess(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"success":false,"message":"quote locked","data":"q-1"}`)
	client := NewQuoteHTTPClient(NewRESTClient(srv.URL, RESTOptions{}))

	err := client.DeleteQuote(context.Background(), "q-1")
	require.Error(t, err)
	require.ErrorIs(t, err, port.ErrUpstream)
	assert.Contains(t, err.Error(), "quote locked")
}

type observedCall struct {
	service, method, status string
}

type recordingObserver struct {
	calls []observedCall
}

func (o *recordingObserver) ObserveRequest(service, method, status string, _ time.Duration) {
	o.calls = append(o.calls, observedCall{service, method, status})
}

func TestRESTClientReportsToObserver(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `[]`)
	observer := &recordingObserver{}
	client := NewProductHTTPClient(NewRESTClient(srv.URL, RESTOptions{Service: "products", Observer: observer}))

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, observer.calls, 1)
	assert.Equal(t, observedCall{"products", http.MethodGet, "200"}, observer.calls[0])
}

func TestRESTClientRateLimitHonoursContext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	client := NewUserHTTPClient(NewRESTClient(srv.URL, RESTOptions{RateLimit: 0.001, RateBurst: 1}))
	_, err := client.ListUsers(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.ListUsers(ctx)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "rate limit"), err.Error())
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewRESTClientDefaults(t *testing.T) {
	client := NewRESTClient("  ", RESTOptions{})
	assert.Equal(t, "http://localhost:3000", client.baseURL)
	assert.Equal(t, "api", client.service)
	assert.Equal(t, 10*time.Second, client.client.Timeout)
	assert.Nil(t, client.limiter)
}
