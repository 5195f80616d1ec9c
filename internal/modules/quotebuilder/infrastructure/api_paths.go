package infrastructure

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	pathQuoteRequest   = "/quote/request"
	pathQuoteChat      = "/quote/chat"
	pathQuoteClear     = "/quote/clear"
	pathQuotes         = "/quote"
	pathPricing        = "/pricing"
	pathBasePrices     = "/pricing/baseprice"
	pathCustomerPrices = "/pricing/customer"
	pathProducts       = "/products"
	pathUsers          = "/user"
)

// resourcePath joins base and an escaped id, with optional trailing segments.
func resourcePath(base, id string, suffix ...string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", fmt.Errorf("missing resource id for %s", base)
	}
	segments := append([]string{strings.TrimRight(base, "/"), url.PathEscape(trimmed)}, suffix...)
	return strings.Join(segments, "/"), nil
}

func quotePath(id string) (string, error) {
	return resourcePath(pathQuotes, id)
}

func quoteHistoryPath(id string) (string, error) {
	return resourcePath(pathQuotes, id, "history")
}

func quoteHubSpotPath(id string) (string, error) {
	return resourcePath(pathQuotes, id, "hubspot")
}

func customerPricesPath(id string) (string, error) {
	return resourcePath(pathCustomerPrices, id)
}

func userPath(id string) (string, error) {
	return resourcePath(pathUsers, id)
}
