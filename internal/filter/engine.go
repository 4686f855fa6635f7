package filter

import (
	"github.com/pitchconnect/fogis-api-client-go/internal/fogis"
)

// Apply runs the client-side pass over an already date-narrowed match list.
// A record survives when, for every dimension with a non-empty include set,
// its value is a member of that set, and for every dimension with a non-empty
// exclude set, its value is not. Unconstrained dimensions impose nothing, so
// empty criteria return the input unchanged. Input order is preserved.
//
// A record missing the field of an active include dimension cannot match it
// and is dropped; a missing field cannot carry an excluded value, so exclude
// sets keep such records. Malformed records never abort the pass.
func (c *Criteria) Apply(records []fogis.MatchRecord) []fogis.MatchRecord {
	kept := make([]fogis.MatchRecord, 0, len(records))
	for _, record := range records {
		if c.matches(record) {
			kept = append(kept, record)
		}
	}
	return kept
}

func (c *Criteria) matches(record fogis.MatchRecord) bool {
	if len(c.statusInclude) > 0 && !anyStatus(record, c.statusInclude) {
		return false
	}
	if len(c.statusExclude) > 0 && anyStatus(record, c.statusExclude) {
		return false
	}

	if !intDimension(record, fogis.FieldAgeCategory, asInts(c.ageInclude), asInts(c.ageExclude)) {
		return false
	}
	if !intDimension(record, fogis.FieldGender, asInts(c.genderInclude), asInts(c.genderExclude)) {
		return false
	}
	if !intDimension(record, fogis.FieldFootballType, asInts(c.typeInclude), asInts(c.typeExclude)) {
		return false
	}
	return true
}

// recordStatuses derives the status set from the record's state flags. A
// record with none of the flags set counts as not started.
func recordStatuses(record fogis.MatchRecord) map[MatchStatus]struct{} {
	statuses := make(map[MatchStatus]struct{}, 2)
	if fogis.BoolField(record, fogis.FieldCancelled) {
		statuses[StatusCancelled] = struct{}{}
	}
	if fogis.BoolField(record, fogis.FieldInterrupted) {
		statuses[StatusInterrupted] = struct{}{}
	}
	if fogis.BoolField(record, fogis.FieldPostponed) {
		statuses[StatusPostponed] = struct{}{}
	}
	if fogis.BoolField(record, fogis.FieldFinalResult) {
		statuses[StatusCompleted] = struct{}{}
	}
	if len(statuses) == 0 {
		statuses[StatusNotStarted] = struct{}{}
	}
	return statuses
}

func anyStatus(record fogis.MatchRecord, wanted []MatchStatus) bool {
	have := recordStatuses(record)
	for _, status := range wanted {
		if _, ok := have[status]; ok {
			return true
		}
	}
	return false
}

func intDimension(record fogis.MatchRecord, field string, include, exclude []int) bool {
	value, present := fogis.IntField(record, field)
	if len(include) > 0 {
		if !present || !containsInt(include, value) {
			return false
		}
	}
	if len(exclude) > 0 && present && containsInt(exclude, value) {
		return false
	}
	return true
}

func containsInt(values []int, value int) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func asInts[T ~int](values []T) []int {
	if len(values) == 0 {
		return nil
	}
	ints := make([]int, len(values))
	for i, v := range values {
		ints[i] = int(v)
	}
	return ints
}
