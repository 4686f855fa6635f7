package fogis

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://fogis.example.com/mdk"})
	loginErr, ok := AsLoginError(err)
	if !ok {
		t.Fatalf("expected LoginError, got %v", err)
	}
	if !strings.Contains(loginErr.Message, "username and password or cookies") {
		t.Fatalf("message = %q", loginErr.Message)
	}
}

func TestNewClientCopiesCookies(t *testing.T) {
	provided := map[string]string{authCookieName: "ticket"}
	c, err := NewClient(Config{Cookies: provided})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	provided[authCookieName] = "tampered"
	if c.Cookies()[authCookieName] != "ticket" {
		t.Fatal("client aliases the caller's cookie map")
	}
}

// trivially satisfies MatchFilter for exercising FetchMatches wiring.
type stubFilter struct {
	payload map[string]any
	applied bool
}

func (f *stubFilter) Validate() error               { return nil }
func (f *stubFilter) ServerPayload() map[string]any { return f.payload }
func (f *stubFilter) Apply(r []MatchRecord) []MatchRecord {
	f.applied = true
	return r[:1]
}

func TestFetchMatchesDefaultQueryWindow(t *testing.T) {
	var body map[string]any
	c := newStubClient(t, func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"d": "{\"matchlista\": []}"}`), nil
	})

	if _, err := c.FetchMatches(context.Background(), nil); err != nil {
		t.Fatalf("FetchMatches: %v", err)
	}

	payload, ok := body["filter"].(map[string]any)
	if !ok {
		t.Fatalf("payload missing filter wrapper: %v", body)
	}
	for _, key := range []string{"datumFran", "datumTill", "sparadDatum", "datumTyp", "typ", "status", "alderskategori", "kon"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("default query payload missing %q", key)
		}
	}
	if payload["typ"] != "alla" {
		t.Errorf("typ = %v", payload["typ"])
	}
}

func TestFetchMatchesMergesFilterPayloadAndApplies(t *testing.T) {
	var body map[string]any
	c := newStubClient(t, func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		json.Unmarshal(raw, &body)
		return jsonResponse(http.StatusOK,
			`{"d": "{\"matchlista\": [{\"matchid\": 1}, {\"matchid\": 2}]}"}`), nil
	})

	f := &stubFilter{payload: map[string]any{"datumFran": "2026-01-01", "datumTill": "2026-02-01"}}
	matches, err := c.FetchMatches(context.Background(), f)
	if err != nil {
		t.Fatalf("FetchMatches: %v", err)
	}

	payload := body["filter"].(map[string]any)
	if payload["datumFran"] != "2026-01-01" || payload["datumTill"] != "2026-02-01" {
		t.Errorf("filter dates not merged: %v", payload)
	}
	if !f.applied {
		t.Error("client-side pass was not applied")
	}
	if len(matches) != 1 {
		t.Errorf("got %d matches after filtering, want 1", len(matches))
	}
}

func TestFetchMatchResultsNormalizesShape(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"single object wrapped", `{"d": "{\"matchid\": 1, \"hemmamal\": 2}"}`, 1},
		{"list passed through", `{"d": "[{\"matchid\": 1}, {\"matchid\": 1}]"}`, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newStubClient(t, func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tc.body), nil
			})
			results, err := c.FetchMatchResults(context.Background(), 1)
			if err != nil {
				t.Fatalf("FetchMatchResults: %v", err)
			}
			if len(results) != tc.want {
				t.Fatalf("got %d results, want %d", len(results), tc.want)
			}
		})
	}
}

func TestFetchMatchResultsRejectsScalar(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"d": "5"}`), nil
	})
	_, err := c.FetchMatchResults(context.Background(), 1)
	if _, ok := AsDataError(err); !ok {
		t.Fatalf("expected DataError, got %v", err)
	}
}

func TestFetchTeamPlayersRosterKey(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"roster under spelare", `{"d": "{\"spelare\": [{\"personid\": 7}]}"}`, false},
		{"bare list wrapped", `{"d": "[{\"personid\": 7}]"}`, false},
		{"object missing roster", `{"d": "{\"other\": 1}"}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newStubClient(t, func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tc.body), nil
			})
			roster, err := c.FetchTeamPlayers(context.Background(), 99)
			if tc.wantErr {
				if _, ok := AsDataError(err); !ok {
					t.Fatalf("expected DataError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchTeamPlayers: %v", err)
			}
			if _, ok := roster["spelare"]; !ok {
				t.Fatalf("roster missing spelare key: %v", roster)
			}
		})
	}
}

func TestReportMatchEventValidation(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		t.Fatal("invalid event must not reach the wire")
		return nil, nil
	})

	_, err := c.ReportMatchEvent(context.Background(), EventRecord{"matchid": 1})
	if err == nil || !strings.Contains(err.Error(), "missing required field") {
		t.Fatalf("err = %v", err)
	}
}

func TestReportMatchEventCoercesNumericStrings(t *testing.T) {
	var body map[string]any
	c := newStubClient(t, func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		json.Unmarshal(raw, &body)
		return jsonResponse(http.StatusOK, `{"d": "{\"success\": true}"}`), nil
	})

	event := EventRecord{
		"matchid":     "12345",
		"handelsekod": 6,
		"minut":       "90",
		"lagid":       22,
		"kommentar":   "straff",
	}
	if _, err := c.ReportMatchEvent(context.Background(), event); err != nil {
		t.Fatalf("ReportMatchEvent: %v", err)
	}

	if body["matchid"] != float64(12345) || body["minut"] != float64(90) {
		t.Errorf("numeric strings not coerced: %v", body)
	}
	if body["kommentar"] != "straff" {
		t.Errorf("non-numeric field altered: %v", body["kommentar"])
	}
	if event["matchid"] != "12345" {
		t.Error("coercion mutated the caller's record")
	}
}

func TestReportMatchResultValidation(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"d": "{\"success\": true}"}`), nil
	})

	_, err := c.ReportMatchResult(context.Background(), ResultRecord{"matchid": 1, "hemmamal": 2})
	if err == nil || !strings.Contains(err.Error(), "bortamal") {
		t.Fatalf("err = %v", err)
	}

	if _, err := c.ReportMatchResult(context.Background(),
		ResultRecord{"matchid": 1, "hemmamal": 2, "bortamal": 0}); err != nil {
		t.Fatalf("valid result rejected: %v", err)
	}
}

func TestDeleteMatchEvent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"empty payload means deleted", `{"d": null}`, true},
		{"explicit success", `{"d": "{\"success\": true}"}`, true},
		{"explicit failure", `{"d": "{\"success\": false}"}`, false},
		{"scalar answer", `{"d": "1"}`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newStubClient(t, func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tc.body), nil
			})
			ok, err := c.DeleteMatchEvent(context.Background(), 7)
			if err != nil {
				t.Fatalf("DeleteMatchEvent: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("got %v, want %v", ok, tc.want)
			}
		})
	}
}

func TestDeleteMatchEventSwallowsRequestFailures(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, ``), nil
	})

	ok, err := c.DeleteMatchEvent(context.Background(), 7)
	if err != nil {
		t.Fatalf("request failure must not raise: %v", err)
	}
	if ok {
		t.Fatal("failed delete reported as success")
	}
}

func TestMarkReportingFinishedRejectsNonPositiveID(t *testing.T) {
	c := newStubClient(t, func(*http.Request) (*http.Response, error) {
		t.Fatal("invalid id must not reach the wire")
		return nil, nil
	})

	for _, id := range []int{0, -5} {
		if _, err := c.MarkReportingFinished(context.Background(), id); err == nil {
			t.Errorf("id %d accepted", id)
		}
	}
}

func TestRecordFieldAccessors(t *testing.T) {
	record := MatchRecord{
		"matchid":  float64(12345),
		"lagid":    "67",
		"antal":    3,
		"installd": true,
		"avbruten": false,
	}

	if got, ok := IntField(record, "matchid"); !ok || got != 12345 {
		t.Errorf("IntField float64 = %d, %v", got, ok)
	}
	if got, ok := IntField(record, "lagid"); !ok || got != 67 {
		t.Errorf("IntField string = %d, %v", got, ok)
	}
	if got, ok := IntField(record, "antal"); !ok || got != 3 {
		t.Errorf("IntField int = %d, %v", got, ok)
	}
	if _, ok := IntField(record, "saknas"); ok {
		t.Error("missing field reported present")
	}
	if !BoolField(record, "installd") {
		t.Error("BoolField true = false")
	}
	if BoolField(record, "avbruten") || BoolField(record, "saknas") {
		t.Error("BoolField false/missing = true")
	}
}
