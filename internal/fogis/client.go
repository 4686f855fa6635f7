// Package fogis is a client for the FOGIS referee web backend. The backend
// exposes no formal API: authentication emulates a browser's HTML form
// submission and business operations are JSON POST calls against legacy
// ASP.NET page-method endpoints. The client implements lazy login and will
// authenticate automatically on the first call that needs it.
package fogis

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pitchconnect/fogis-api-client-go/internal/logging"
	"github.com/pitchconnect/fogis-api-client-go/internal/metrics"
	"github.com/pitchconnect/fogis-api-client-go/internal/timeutil"
)

// Config controls how the client reaches the upstream backend and how it
// authenticates. Exactly one of the two credential forms must be provided:
// Username+Password, or Cookies captured from a previous session.
type Config struct {
	BaseURL    string
	Username   string
	Password   string
	Cookies    map[string]string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client talks to the FOGIS backend. A single instance may be shared across
// goroutines; session state transitions are serialized internally.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient httpDoer
	transport  http.RoundTripper
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time

	mu            sync.Mutex
	authenticated bool
	cookies       map[string]string
	loginGroup    singleflight.Group
}

// NewClient constructs a client. Providing cookies authenticates immediately
// without any network call; providing username and password defers the login
// handshake until first use. Providing neither is a construction error.
func NewClient(cfg Config) (*Client, error) {
	hasCredentials := cfg.Username != "" && cfg.Password != ""
	if len(cfg.Cookies) == 0 && !hasCredentials {
		return nil, &LoginError{Message: "either username and password or cookies must be provided"}
	}

	c := &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		transport:  resolveTransport(cfg.HTTPClient),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        time.Now,
	}

	if len(cfg.Cookies) > 0 {
		c.cookies = make(map[string]string, len(cfg.Cookies))
		for k, v := range cfg.Cookies {
			c.cookies[k] = v
		}
		c.authenticated = true
		logging.Info(c.logger, "initialized with provided cookies")
	}

	return c, nil
}

// HelloWorld is a trivial liveness probe that needs no session.
func (c *Client) HelloWorld() string {
	return "Hello, brave new world!"
}

// MatchFilter narrows a match list query: a server-side projection (date
// range) sent with the request and a client-side pass applied to the fetched
// records. filter.Criteria is the canonical implementation.
type MatchFilter interface {
	Validate() error
	ServerPayload() map[string]any
	Apply(records []MatchRecord) []MatchRecord
}

// FetchMatches retrieves the referee's match list. The filter's server-side
// projection is merged over the default query window before the request, and
// its client-side pass runs over the fetched records. A nil filter fetches
// the default window unfiltered.
func (c *Client) FetchMatches(ctx context.Context, filter MatchFilter) ([]MatchRecord, error) {
	if filter != nil {
		if err := filter.Validate(); err != nil {
			return nil, err
		}
	}

	from, to, saved := timeutil.DefaultMatchWindow(c.now())
	payloadFilter := map[string]any{
		"datumFran":      from,
		"datumTill":      to,
		"datumTyp":       0,
		"typ":            "alla",
		"status":         []string{"avbruten", "uppskjuten", "installd"},
		"alderskategori": []int{1, 2, 3, 4, 5},
		"kon":            []int{3, 2, 4},
		"sparadDatum":    saved,
	}
	if filter != nil {
		for key, value := range filter.ServerPayload() {
			payloadFilter[key] = value
		}
	}

	data, err := c.apiRequest(ctx, http.MethodPost, endpointMatchList, map[string]any{"filter": payloadFilter}, shapeObject)
	if err != nil {
		return nil, err
	}

	matches := recordList[MatchRecord](data.(map[string]any)["matchlista"])
	if filter != nil {
		matches = filter.Apply(matches)
	}

	logging.Debug(c.logger, "fetched match list", logging.FieldCount, len(matches))
	return matches, nil
}

// FetchMatch retrieves details for a single match.
func (c *Client) FetchMatch(ctx context.Context, matchID int) (MatchRecord, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointMatch, map[string]any{"matchid": matchID}, shapeObject)
	if err != nil {
		return nil, err
	}
	return MatchRecord(data.(map[string]any)), nil
}

// FetchMatchPlayers retrieves the player lists for a match, keyed per side.
func (c *Client) FetchMatchPlayers(ctx context.Context, matchID int) (map[string]any, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointMatchPlayers, map[string]any{"matchid": matchID}, shapeObject)
	if err != nil {
		return nil, err
	}
	return data.(map[string]any), nil
}

// FetchMatchOfficials retrieves the officials assigned to a match, keyed by role group.
func (c *Client) FetchMatchOfficials(ctx context.Context, matchID int) (map[string]any, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointMatchOfficials, map[string]any{"matchid": matchID}, shapeObject)
	if err != nil {
		return nil, err
	}
	return data.(map[string]any), nil
}

// FetchMatchEvents retrieves the reported events of a match.
func (c *Client) FetchMatchEvents(ctx context.Context, matchID int) ([]EventRecord, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointMatchEvents, map[string]any{"matchid": matchID}, shapeList)
	if err != nil {
		return nil, err
	}
	return recordSlice[EventRecord](data.([]any)), nil
}

// FetchMatchResults retrieves the recorded results for a match. The upstream
// endpoint answers with either a single object or a list; a single object is
// returned as a one-element list.
func (c *Client) FetchMatchResults(ctx context.Context, matchID int) ([]ResultRecord, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointMatchResults, map[string]any{"matchid": matchID}, shapeAny)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case map[string]any:
		return []ResultRecord{ResultRecord(v)}, nil
	case []any:
		return recordSlice[ResultRecord](v), nil
	default:
		return nil, &DataError{Endpoint: endpointMatchResults, Message: shapeMessage("object or list", data)}
	}
}

// FetchTeamPlayers retrieves the player roster of a match team. The roster is
// returned under the upstream "spelare" key; a bare list answer is wrapped.
func (c *Client) FetchTeamPlayers(ctx context.Context, teamID int) (map[string]any, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointTeamPlayers, map[string]any{"lagid": teamID}, shapeAny)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case map[string]any:
		if _, ok := v["spelare"]; ok {
			return v, nil
		}
		return nil, &DataError{Endpoint: endpointTeamPlayers, Message: "response object missing spelare key"}
	case []any:
		return map[string]any{"spelare": v}, nil
	default:
		return nil, &DataError{Endpoint: endpointTeamPlayers, Message: shapeMessage("object or list", data)}
	}
}

// FetchTeamOfficials retrieves the staff (coaches, managers) of a match team.
func (c *Client) FetchTeamOfficials(ctx context.Context, teamID int) ([]OfficialRecord, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointTeamOfficials, map[string]any{"matchlagid": teamID}, shapeList)
	if err != nil {
		return nil, err
	}
	return recordSlice[OfficialRecord](data.([]any)), nil
}

// ReportMatchEvent reports a match event (goal, card, substitution, ...).
func (c *Client) ReportMatchEvent(ctx context.Context, event EventRecord) (map[string]any, error) {
	if err := requireFields(event, "event", "matchid", "handelsekod", "minut", "lagid"); err != nil {
		return nil, err
	}
	payload := coerceIntFields(event,
		"matchid", "handelsekod", "minut", "lagid", "personid",
		"assisterandeid", "period", "resultatHemma", "resultatBorta")

	data, err := c.apiRequest(ctx, http.MethodPost, endpointSaveEvent, payload, shapeObject)
	if err != nil {
		return nil, err
	}
	return data.(map[string]any), nil
}

// ReportMatchResult reports full-time (and optionally half-time) scores.
func (c *Client) ReportMatchResult(ctx context.Context, result ResultRecord) (map[string]any, error) {
	if err := requireFields(result, "result", "matchid", "hemmamal", "bortamal"); err != nil {
		return nil, err
	}
	payload := coerceIntFields(result,
		"matchid", "hemmamal", "bortamal", "halvtidHemmamal", "halvtidBortamal")

	data, err := c.apiRequest(ctx, http.MethodPost, endpointSaveResult, payload, shapeObject)
	if err != nil {
		return nil, err
	}
	return data.(map[string]any), nil
}

// ReportTeamOfficialAction reports a disciplinary action against team staff.
func (c *Client) ReportTeamOfficialAction(ctx context.Context, action OfficialActionRecord) (map[string]any, error) {
	if err := requireFields(action, "action", "matchid", "lagid", "personid", "matchlagledaretypid"); err != nil {
		return nil, err
	}
	payload := coerceIntFields(action,
		"matchid", "lagid", "personid", "matchlagledaretypid", "minut")

	data, err := c.apiRequest(ctx, http.MethodPost, endpointSaveOfficial, payload, shapeObject)
	if err != nil {
		return nil, err
	}
	return data.(map[string]any), nil
}

// DeleteMatchEvent removes a reported event. The upstream endpoint answers a
// successful delete with an empty payload; request and shape failures are
// reported as false rather than raised, matching the reporting workflow's
// tolerance for already-deleted events. Authentication failures still raise.
func (c *Client) DeleteMatchEvent(ctx context.Context, eventID int) (bool, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointDeleteEvent, map[string]any{"matchhandelseid": eventID}, shapeAny)
	if err != nil {
		if _, ok := AsLoginError(err); ok {
			return false, err
		}
		logging.Error(c.logger, "delete event failed", err, logging.FieldEventID, eventID)
		return false, nil
	}

	switch v := data.(type) {
	case nil:
		return true, nil
	case map[string]any:
		success, _ := v["success"].(bool)
		return success, nil
	default:
		logging.Warn(c.logger, "unexpected delete event response", logging.FieldEventID, eventID)
		return false, nil
	}
}

// ClearMatchEvents removes every reported event of a match.
func (c *Client) ClearMatchEvents(ctx context.Context, matchID int) (map[string]any, error) {
	data, err := c.apiRequest(ctx, http.MethodPost, endpointClearEvents, map[string]any{"matchid": matchID}, shapeObject)
	if err != nil {
		return nil, err
	}
	resp := data.(map[string]any)
	if success, _ := resp["success"].(bool); !success {
		logging.Warn(c.logger, "failed to clear events", logging.FieldMatchID, matchID)
	}
	return resp, nil
}

// MarkReportingFinished finalizes and officially submits a match report.
func (c *Client) MarkReportingFinished(ctx context.Context, matchID int) (map[string]any, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("match id must be positive, got %d", matchID)
	}

	data, err := c.apiRequest(ctx, http.MethodPost, endpointFinishReport, map[string]any{"matchid": matchID}, shapeObject)
	if err != nil {
		return nil, err
	}
	resp := data.(map[string]any)
	if success, _ := resp["success"].(bool); success {
		logging.Info(c.logger, "match report finished", logging.FieldMatchID, matchID)
	} else {
		logging.Warn(c.logger, "failed to finish match report", logging.FieldMatchID, matchID)
	}
	return resp, nil
}

func (c *Client) cookieHeader() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	pairs := make([]string, 0, len(c.cookies))
	for name, value := range c.cookies {
		pairs = append(pairs, name+"="+value)
	}
	return joinCookiePairs(pairs)
}

func requireFields(record map[string]any, kind string, fields ...string) error {
	for _, field := range fields {
		if _, ok := record[field]; !ok {
			return fmt.Errorf("missing required field %q in %s data", field, kind)
		}
	}
	return nil
}

// coerceIntFields copies the record, converting numeric strings in the named
// fields to integers so the wire payload carries numbers.
func coerceIntFields(record map[string]any, fields ...string) map[string]any {
	copied := make(map[string]any, len(record))
	for k, v := range record {
		copied[k] = v
	}
	for _, field := range fields {
		raw, ok := copied[field]
		if !ok || raw == nil {
			continue
		}
		if s, ok := raw.(string); ok {
			if n, err := strconv.Atoi(s); err == nil {
				copied[field] = n
			}
		}
	}
	return copied
}

func recordList[T ~map[string]any](raw any) []T {
	list, _ := raw.([]any)
	return recordSlice[T](list)
}

func recordSlice[T ~map[string]any](list []any) []T {
	records := make([]T, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, T(obj))
		}
	}
	return records
}
