package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchconnect/fogis-api-client-go/internal/fogis"
)

func match(id int, fields map[string]any) fogis.MatchRecord {
	record := fogis.MatchRecord{"matchid": id}
	for k, v := range fields {
		record[k] = v
	}
	return record
}

func ids(records []fogis.MatchRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r["matchid"].(int)
	}
	return out
}

func TestApplyEmptyCriteriaIsIdentity(t *testing.T) {
	records := []fogis.MatchRecord{
		match(1, nil),
		match(2, map[string]any{"installd": true}),
		match(3, map[string]any{"tavlingKonId": 3}),
	}

	kept := New().Apply(records)
	assert.Equal(t, []int{1, 2, 3}, ids(kept))
}

func TestApplyStatusInclude(t *testing.T) {
	records := make([]fogis.MatchRecord, 0, 10)
	for i := 1; i <= 10; i++ {
		records = append(records, match(i, map[string]any{"installd": i%3 == 0}))
	}

	kept := New().IncludeStatuses(StatusCancelled).Apply(records)
	assert.Equal(t, []int{3, 6, 9}, ids(kept))
}

func TestApplyStatusDerivation(t *testing.T) {
	records := []fogis.MatchRecord{
		match(1, map[string]any{"installd": true}),
		match(2, map[string]any{"avbruten": true}),
		match(3, map[string]any{"uppskjuten": true}),
		match(4, map[string]any{"arslutresultat": true}),
		match(5, nil),
	}

	tests := []struct {
		status MatchStatus
		want   []int
	}{
		{StatusCancelled, []int{1}},
		{StatusInterrupted, []int{2}},
		{StatusPostponed, []int{3}},
		{StatusCompleted, []int{4}},
		{StatusNotStarted, []int{5}},
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			kept := New().IncludeStatuses(tc.status).Apply(records)
			assert.Equal(t, tc.want, ids(kept))
		})
	}
}

func TestApplyStatusExclude(t *testing.T) {
	records := []fogis.MatchRecord{
		match(1, map[string]any{"installd": true}),
		match(2, map[string]any{"uppskjuten": true}),
		match(3, nil),
	}

	kept := New().ExcludeStatuses(StatusCancelled, StatusPostponed).Apply(records)
	assert.Equal(t, []int{3}, ids(kept))
}

func TestApplyIntDimensions(t *testing.T) {
	records := []fogis.MatchRecord{
		match(1, map[string]any{"tavlingAlderskategori": 4, "tavlingKonId": 2, "fotbollstypid": 1}),
		match(2, map[string]any{"tavlingAlderskategori": 3, "tavlingKonId": 3, "fotbollstypid": 1}),
		match(3, map[string]any{"tavlingAlderskategori": 4, "tavlingKonId": 3, "fotbollstypid": 2}),
	}

	kept := New().IncludeAgeCategories(AgeSenior).Apply(records)
	assert.Equal(t, []int{1, 3}, ids(kept))

	kept = New().IncludeGenders(GenderFemale).ExcludeFootballTypes(TypeFutsal).Apply(records)
	assert.Equal(t, []int{2}, ids(kept))

	kept = New().IncludeAgeCategories(AgeSenior).IncludeFootballTypes(TypeFootball).Apply(records)
	assert.Equal(t, []int{1}, ids(kept), "dimensions combine as AND")
}

func TestApplyFloatAndStringFieldValues(t *testing.T) {
	// Values decoded from JSON arrive as float64; some feeds carry strings.
	records := []fogis.MatchRecord{
		match(1, map[string]any{"tavlingKonId": float64(3)}),
		match(2, map[string]any{"tavlingKonId": "3"}),
		match(3, map[string]any{"tavlingKonId": float64(2)}),
	}

	kept := New().IncludeGenders(GenderFemale).Apply(records)
	assert.Equal(t, []int{1, 2}, ids(kept))
}

func TestApplyMissingFieldSemantics(t *testing.T) {
	records := []fogis.MatchRecord{
		match(1, map[string]any{"tavlingKonId": 2}),
		match(2, nil),
	}

	// An active include set drops records that cannot prove membership.
	kept := New().IncludeGenders(GenderMale).Apply(records)
	assert.Equal(t, []int{1}, ids(kept))

	// An exclude set keeps records that cannot carry the excluded value.
	kept = New().ExcludeGenders(GenderMale).Apply(records)
	assert.Equal(t, []int{2}, ids(kept))
}

func TestApplyPreservesOrderAndInput(t *testing.T) {
	records := []fogis.MatchRecord{
		match(5, map[string]any{"tavlingKonId": 3}),
		match(1, map[string]any{"tavlingKonId": 2}),
		match(9, map[string]any{"tavlingKonId": 3}),
		match(2, map[string]any{"tavlingKonId": 3}),
	}

	kept := New().IncludeGenders(GenderFemale).Apply(records)
	require.Equal(t, []int{5, 9, 2}, ids(kept), "input order preserved")
	assert.Len(t, records, 4, "input slice untouched")
}

func TestApplyEmptyInput(t *testing.T) {
	kept := New().IncludeStatuses(StatusCancelled).Apply(nil)
	assert.Empty(t, kept)
}
