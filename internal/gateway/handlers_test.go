package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchconnect/fogis-api-client-go/internal/filter"
	"github.com/pitchconnect/fogis-api-client-go/internal/fogis"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// newTestRouter wires the routes to a client whose upstream is stubbed out.
func newTestRouter(t *testing.T, upstream roundTripperFunc) http.Handler {
	t.Helper()
	client, err := fogis.NewClient(fogis.Config{
		BaseURL: "https://fogis.example.com/mdk",
		Cookies: map[string]string{"FogisMobilDomarKlient.ASPXAUTH": "ticket"},
		HTTPClient: &http.Client{
			Transport: upstream,
		},
	})
	require.NoError(t, err)
	return NewRouter(NewHandler(client, nil))
}

func doRequest(router http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return decoded
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doRequest(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestHello(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doRequest(router, http.MethodGet, "/hello", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "Hello")
}

func TestMatchesAppliesQueryFilter(t *testing.T) {
	router := newTestRouter(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"d": "{\"matchlista\": [{\"matchid\": 1, \"tavlingKonId\": 3}, {\"matchid\": 2, \"tavlingKonId\": 2}]}"}`), nil
	})

	rec := doRequest(router, http.MethodGet, "/matches?genders=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestMatchesRejectsBadQuery(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []string{
		"/matches?genders=9",
		"/matches?genders=abc",
		"/matches?fromDate=2026-03-31&toDate=2026-03-01",
		"/matches?status=pausad",
	}
	for _, target := range tests {
		rec := doRequest(router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestMatchesUpstreamFailure(t *testing.T) {
	router := newTestRouter(t, func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	rec := doRequest(router, http.MethodGet, "/matches", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "failed")
}

func TestMatchSubResources(t *testing.T) {
	var lastEndpoint string
	router := newTestRouter(t, func(req *http.Request) (*http.Response, error) {
		lastEndpoint = req.URL.Path
		if strings.HasSuffix(req.URL.Path, "GetMatchhandelselista") {
			return jsonResponse(http.StatusOK, `{"d": "[]"}`), nil
		}
		return jsonResponse(http.StatusOK, `{"d": "{\"matchid\": 7}"}`), nil
	})

	tests := []struct {
		target       string
		wantEndpoint string
	}{
		{"/match/7", "GetMatch"},
		{"/match/7/players", "GetMatchdeltagareLista"},
		{"/match/7/officials", "GetMatchfunktionarerLista"},
		{"/match/7/events", "GetMatchhandelselista"},
	}
	for _, tc := range tests {
		rec := doRequest(router, http.MethodGet, tc.target, nil)
		assert.Equal(t, http.StatusOK, rec.Code, tc.target)
		assert.True(t, strings.HasSuffix(lastEndpoint, tc.wantEndpoint),
			"%s hit %s", tc.target, lastEndpoint)
	}
}

func TestMatchResourceRejectsBadPaths(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(router, http.MethodGet, "/match/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodGet, "/match/7/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportEventRoute(t *testing.T) {
	router := newTestRouter(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"d": "{\"success\": true}"}`), nil
	})

	body := strings.NewReader(`{"matchid": 1, "handelsekod": 6, "minut": 12, "lagid": 3}`)
	rec := doRequest(router, http.MethodPost, "/events", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/events", strings.NewReader("not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodGet, "/events", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDeleteEventRoute(t *testing.T) {
	router := newTestRouter(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"d": null}`), nil
	})

	rec := doRequest(router, http.MethodDelete, "/event/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = doRequest(router, http.MethodDelete, "/event/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthCookiesWithoutSession(t *testing.T) {
	client, err := fogis.NewClient(fogis.Config{
		BaseURL:  "https://fogis.example.com/mdk",
		Username: "referee",
		Password: "whistle",
	})
	require.NoError(t, err)
	router := NewRouter(NewHandler(client, nil))

	rec := doRequest(router, http.MethodGet, "/auth/cookies", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthCookiesWithSession(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(router, http.MethodGet, "/auth/cookies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ticket", decodeBody(t, rec)["FogisMobilDomarKlient.ASPXAUTH"])
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &filter.ValidationError{Field: "gender"}, http.StatusBadRequest},
		{"login", &fogis.LoginError{Message: "rejected"}, http.StatusUnauthorized},
		{"request", &fogis.RequestError{Endpoint: "/x"}, http.StatusBadGateway},
		{"data", &fogis.DataError{Endpoint: "/x"}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusForError(tc.err))
		})
	}
}
