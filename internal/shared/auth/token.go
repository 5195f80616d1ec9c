package auth

import (
	"net/http"
	"strings"
)

// SessionCookieName carries the pricing session token for browsers that do not set headers.
const SessionCookieName = "pricing_session"

// ExtractBearerTokenFromHeader extracts the token from an Authorization header value.
// It returns an empty string if no bearer token is present.
//
// Example:
//
//	token := ExtractBearerTokenFromHeader("Bearer eyJhbGciOiJIUzI1NiIs...")
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const bearerPrefix = "bearer "
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ExtractToken looks for a session token in order:
// 1. Authorization header (Bearer token)
// 2. session cookie
// 3. query parameter (default "token")
func ExtractToken(r *http.Request, queryParam string) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerTokenFromHeader(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if token := strings.TrimSpace(cookie.Value); token != "" {
			return token
		}
	}
	if queryParam == "" {
		queryParam = "token"
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
