// Package gateway exposes the client's operations over a thin HTTP surface:
// routing, query/body decoding and JSON error envelopes only. All business
// behavior lives in the fogis and filter packages.
package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pitchconnect/fogis-api-client-go/internal/filter"
	"github.com/pitchconnect/fogis-api-client-go/internal/fogis"
	"github.com/pitchconnect/fogis-api-client-go/internal/logging"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the FOGIS client.
type Handler struct {
	client *fogis.Client
	logger *slog.Logger
	now    nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(client *fogis.Client, logger *slog.Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Hello is the trivial connectivity check kept from the original client.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": h.client.HelloWorld()})
}

// Matches returns the referee's match list, filtered by the query string.
func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	matches, err := h.client.FetchMatches(r.Context(), criteria)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"date":    h.now().Format("2006-01-02"),
		"count":   len(matches),
		"matches": matches,
	})
}

// MatchResource serves /match/{id} and its sub-resources
// (players, officials, events, results, result, finish).
func (h *Handler) MatchResource(w http.ResponseWriter, r *http.Request) {
	matchID, rest, err := matchPath(r.URL.Path)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	switch {
	case rest == "" && r.Method == http.MethodGet:
		detail, err := h.client.FetchMatch(ctx, matchID)
		h.respond(w, detail, err)
	case rest == "players" && r.Method == http.MethodGet:
		players, err := h.client.FetchMatchPlayers(ctx, matchID)
		h.respond(w, players, err)
	case rest == "officials" && r.Method == http.MethodGet:
		officials, err := h.client.FetchMatchOfficials(ctx, matchID)
		h.respond(w, officials, err)
	case rest == "events" && r.Method == http.MethodGet:
		events, err := h.client.FetchMatchEvents(ctx, matchID)
		h.respond(w, events, err)
	case rest == "events" && r.Method == http.MethodDelete:
		cleared, err := h.client.ClearMatchEvents(ctx, matchID)
		h.respond(w, cleared, err)
	case rest == "results" && r.Method == http.MethodGet:
		results, err := h.client.FetchMatchResults(ctx, matchID)
		h.respond(w, results, err)
	case rest == "result" && r.Method == http.MethodPost:
		h.reportResult(w, r, matchID)
	case rest == "finish" && r.Method == http.MethodPost:
		report, err := h.client.MarkReportingFinished(ctx, matchID)
		h.respond(w, report, err)
	default:
		h.writeError(w, http.StatusNotFound, "unknown match resource")
	}
}

// TeamResource serves /team/{id}/players and /team/{id}/officials. POSTing
// to the officials sub-resource reports a disciplinary action.
func (h *Handler) TeamResource(w http.ResponseWriter, r *http.Request) {
	teamID, rest, err := resourcePath(r.URL.Path, "/team/")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case rest == "players" && r.Method == http.MethodGet:
		roster, err := h.client.FetchTeamPlayers(r.Context(), teamID)
		h.respond(w, roster, err)
	case rest == "officials" && r.Method == http.MethodGet:
		officials, err := h.client.FetchTeamOfficials(r.Context(), teamID)
		h.respond(w, officials, err)
	case rest == "officials" && r.Method == http.MethodPost:
		h.reportOfficialAction(w, r, teamID)
	default:
		h.writeError(w, http.StatusNotFound, "unknown team resource")
	}
}

func (h *Handler) reportOfficialAction(w http.ResponseWriter, r *http.Request, teamID int) {
	var action fogis.OfficialActionRecord
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if action == nil {
		action = fogis.OfficialActionRecord{}
	}
	if _, ok := action["lagid"]; !ok {
		action["lagid"] = teamID
	}

	resp, err := h.client.ReportTeamOfficialAction(r.Context(), action)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ReportEvent accepts a match event and forwards it for reporting.
func (h *Handler) ReportEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var event fogis.EventRecord
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.client.ReportMatchEvent(r.Context(), event)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// DeleteEvent removes a single reported event.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		h.writeError(w, http.StatusMethodNotAllowed, "DELETE required")
		return
	}

	eventID, _, err := resourcePath(r.URL.Path, "/event/")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.client.DeleteMatchEvent(r.Context(), eventID)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (h *Handler) reportResult(w http.ResponseWriter, r *http.Request, matchID int) {
	var result fogis.ResultRecord
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if result == nil {
		result = fogis.ResultRecord{}
	}
	if _, ok := result["matchid"]; !ok {
		result["matchid"] = matchID
	}

	resp, err := h.client.ReportMatchResult(r.Context(), result)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) respond(w http.ResponseWriter, payload any, err error) {
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	logging.Warn(h.logger, "request failed", "error", err)
	h.writeError(w, statusForError(err), err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps the client's error taxonomy onto gateway status codes.
func statusForError(err error) int {
	if _, ok := filter.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	if _, ok := fogis.AsLoginError(err); ok {
		return http.StatusUnauthorized
	}
	if _, ok := fogis.AsRequestError(err); ok {
		return http.StatusBadGateway
	}
	if _, ok := fogis.AsDataError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func matchPath(path string) (int, string, error) {
	return resourcePath(path, "/match/")
}

func resourcePath(path, prefix string) (int, string, error) {
	trimmed := strings.TrimPrefix(path, prefix)
	id := trimmed
	rest := ""
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		id = trimmed[:idx]
		rest = strings.Trim(trimmed[idx+1:], "/")
	}
	parsed, err := strconv.Atoi(id)
	if err != nil || parsed <= 0 {
		return 0, "", errInvalidID
	}
	return parsed, rest, nil
}

var errInvalidID = errors.New("invalid numeric id in path")

// criteriaFromQuery builds validated filter criteria from the query string.
// List-valued parameters are comma-separated.
func criteriaFromQuery(r *http.Request) (*filter.Criteria, error) {
	q := r.URL.Query()
	input := filter.Input{
		FromDate:      q.Get("fromDate"),
		ToDate:        q.Get("toDate"),
		Status:        splitCSV(q.Get("status")),
		ExcludeStatus: splitCSV(q.Get("excludeStatus")),
	}

	intParams := []struct {
		param string
		field string
		dest  *[]int
	}{
		{"ageCategories", "ageCategory", &input.AgeCategories},
		{"excludeAgeCategories", "ageCategory", &input.ExcludeAgeCategories},
		{"genders", "gender", &input.Genders},
		{"excludeGenders", "gender", &input.ExcludeGenders},
		{"footballTypes", "footballType", &input.FootballTypes},
		{"excludeFootballTypes", "footballType", &input.ExcludeFootballTypes},
	}
	for _, p := range intParams {
		values, err := splitCSVInts(q.Get(p.param))
		if err != nil {
			return nil, &filter.ValidationError{Field: p.field, Value: q.Get(p.param), Message: "not a number list"}
		}
		*p.dest = values
	}

	return filter.Parse(input)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func splitCSVInts(raw string) ([]int, error) {
	parts := splitCSV(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	values := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		values[i] = n
	}
	return values, nil
}
