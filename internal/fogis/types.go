package fogis

import "strconv"

// Records returned by the page-method endpoints keep the upstream field names
// (Swedish) and arrive as loosely-typed JSON objects. They are carried as maps
// rather than structs so a missing field stays distinguishable from a zero
// value, which the match list filtering relies on.

// MatchRecord is a single match as returned by the match list or match detail
// endpoints.
type MatchRecord map[string]any

// PlayerRecord is a single player entry.
type PlayerRecord map[string]any

// OfficialRecord is a single referee or team staff entry.
type OfficialRecord map[string]any

// EventRecord is a single match event (goal, card, substitution, ...). The
// same shape is used as input when reporting an event.
type EventRecord map[string]any

// ResultRecord carries full-time/half-time scores for a match. The same shape
// is used as input when reporting a result.
type ResultRecord map[string]any

// OfficialActionRecord is a team official disciplinary action to report.
type OfficialActionRecord map[string]any

// Match record fields inspected by the client-side filter.
const (
	FieldCancelled    = "installd"
	FieldInterrupted  = "avbruten"
	FieldPostponed    = "uppskjuten"
	FieldFinalResult  = "arslutresultat"
	FieldAgeCategory  = "tavlingAlderskategori"
	FieldGender       = "tavlingKonId"
	FieldFootballType = "fotbollstypid"
)

// IntField reads an integer-valued field, tolerating the float64 values that
// encoding/json produces and numeric strings. The second return reports
// whether the field was present and usable.
func IntField(record map[string]any, key string) (int, bool) {
	raw, ok := record[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

// BoolField reads a boolean-valued field; absent or non-boolean values read as false.
func BoolField(record map[string]any, key string) bool {
	v, ok := record[key].(bool)
	return ok && v
}

// EventType describes a match event code from the reporting vocabulary.
type EventType struct {
	Name         string
	Goal         bool
	ControlEvent bool
}

// EventTypes maps event codes to their descriptions, as used in match reporting.
var EventTypes = map[int]EventType{
	// Goals
	6:  {Name: "Regular Goal", Goal: true},
	39: {Name: "Header Goal", Goal: true},
	28: {Name: "Corner Goal", Goal: true},
	29: {Name: "Free Kick Goal", Goal: true},
	15: {Name: "Own Goal", Goal: true},
	14: {Name: "Penalty Goal", Goal: true},
	// Penalties
	18: {Name: "Penalty Missing Goal"},
	19: {Name: "Penalty Save"},
	26: {Name: "Penalty Hitting the Frame"},
	// Cards
	20: {Name: "Yellow Card"},
	8:  {Name: "Red Card (Denying Goal Opportunity)"},
	9:  {Name: "Red Card (Other Reasons)"},
	// Other events
	17: {Name: "Substitution"},
	// Control events
	31: {Name: "Period Start", ControlEvent: true},
	32: {Name: "Period End", ControlEvent: true},
	23: {Name: "Match End", ControlEvent: true},
}
