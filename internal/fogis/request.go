package fogis

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pitchconnect/fogis-api-client-go/internal/logging"
)

// payloadShape declares the expected top-level container of a page-method
// response. The executor enforces it so callers never see a null or a list
// where they declared an object.
type payloadShape int

const (
	shapeAny payloadShape = iota
	shapeObject
	shapeList
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// apiRequest is the single choke point for authenticated calls. It ensures a
// valid session, issues the call with the current cookies, translates
// transport failures and non-success statuses into RequestError, unpacks the
// ASP.NET "d" envelope and enforces the declared payload shape.
func (c *Client) apiRequest(ctx context.Context, method, endpoint string, payload any, shape payloadShape) (any, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	req, err := c.buildAPIRequest(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordAPICall(endpoint, time.Since(start), err)
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, &RequestError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	decoded, err := decodeEnvelope(resp.Body, endpoint)
	if err != nil {
		return nil, err
	}

	logging.Debug(c.logger, "fogis call complete",
		logging.FieldEndpoint, endpoint,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	return checkShape(endpoint, decoded, shape)
}

func (c *Client) buildAPIRequest(ctx context.Context, method, endpoint string, payload any) (*http.Request, error) {
	url := c.baseURL + endpoint

	var body io.Reader
	if method == http.MethodPost {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &RequestError{Endpoint: endpoint, Err: err}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}

	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", c.baseURL+"/")
	if origin := originOf(c.baseURL); origin != "" {
		req.Header.Set("Origin", origin)
	}
	if cookie := c.cookieHeader(); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	return req, nil
}

// decodeEnvelope unpacks the legacy page-method convention: the body is a JSON
// object whose "d" key holds the payload as a doubly-encoded JSON string.
// Bodies without the envelope are returned as decoded.
func decodeEnvelope(body io.Reader, endpoint string) (any, error) {
	var decoded any
	if err := json.NewDecoder(body).Decode(&decoded); err != nil {
		return nil, &DataError{Endpoint: endpoint, Message: "failed to parse response: " + err.Error()}
	}

	envelope, ok := decoded.(map[string]any)
	if !ok {
		return decoded, nil
	}
	inner, ok := envelope["d"]
	if !ok {
		return decoded, nil
	}

	if encoded, ok := inner.(string); ok {
		var payload any
		if err := json.Unmarshal([]byte(encoded), &payload); err != nil {
			// Not nested JSON after all; surface the raw string.
			return encoded, nil
		}
		return payload, nil
	}
	return inner, nil
}

func checkShape(endpoint string, payload any, shape payloadShape) (any, error) {
	switch shape {
	case shapeObject:
		if obj, ok := payload.(map[string]any); ok {
			return obj, nil
		}
		return nil, &DataError{Endpoint: endpoint, Message: shapeMessage("object", payload)}
	case shapeList:
		if list, ok := payload.([]any); ok {
			return list, nil
		}
		return nil, &DataError{Endpoint: endpoint, Message: shapeMessage("list", payload)}
	default:
		return payload, nil
	}
}

func shapeMessage(want string, payload any) string {
	switch payload.(type) {
	case nil:
		return "expected " + want + " response but got null"
	case map[string]any:
		return "expected " + want + " response but got object"
	case []any:
		return "expected " + want + " response but got list"
	case string:
		return "expected " + want + " response but got string"
	default:
		return "expected " + want + " response but got scalar"
	}
}

func originOf(baseURL string) string {
	rest, scheme := baseURL, ""
	for _, p := range []string{"https://", "http://"} {
		if strings.HasPrefix(baseURL, p) {
			scheme, rest = p, strings.TrimPrefix(baseURL, p)
			break
		}
	}
	if scheme == "" {
		return ""
	}
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[:idx]
	}
	return scheme + rest
}
