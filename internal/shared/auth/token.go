package auth

import (
	"net/http"
	"strings"
)

const bearerPrefix = "bearer "

// ExtractBearerToken returns the token of a "Bearer x" Authorization header, matching the
// scheme case-insensitively.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ExtractToken reads the Authorization header, then the queryParam query parameter.
// Browsers cannot set headers on websocket upgrades, hence the query fallback.
func ExtractToken(r *http.Request, queryParam string) string {
	if token := ExtractBearerToken(r); token != "" {
		return token
	}
	if r == nil || r.URL == nil {
		return ""
	}
	if queryParam == "" {
		queryParam = "token"
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
