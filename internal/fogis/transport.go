package fogis

import (
	"net/http"
	"strings"
)

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// resolveTransport extracts the round tripper the login handshake should
// share with the API client, so tests can intercept both paths.
func resolveTransport(client *http.Client) http.RoundTripper {
	if client != nil && client.Transport != nil {
		return client.Transport
	}
	return http.DefaultTransport
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func joinCookiePairs(pairs []string) string {
	return strings.Join(pairs, "; ")
}
