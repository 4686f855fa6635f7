// Package filter builds and applies match list filters. The upstream backend
// only understands a date range; every other dimension (status, age category,
// gender, football type) is validated here and applied locally to the fetched
// records.
package filter

// MatchStatus is a match state flag carried on match records.
type MatchStatus string

const (
	StatusInterrupted MatchStatus = "avbruten"
	StatusPostponed   MatchStatus = "uppskjuten"
	StatusCancelled   MatchStatus = "installd"
	StatusCompleted   MatchStatus = "genomford"
	StatusNotStarted  MatchStatus = "ej_startad"
)

// AgeCategory is the competition age bracket.
type AgeCategory int

const (
	AgeUndefined AgeCategory = 1
	AgeChildren  AgeCategory = 2
	AgeYouth     AgeCategory = 3
	AgeSenior    AgeCategory = 4
	AgeVeterans  AgeCategory = 5
)

// Gender is the competition gender class.
type Gender int

const (
	GenderMale   Gender = 2
	GenderFemale Gender = 3
	GenderMixed  Gender = 4
)

// FootballType distinguishes outdoor football from futsal.
type FootballType int

const (
	TypeFootball FootballType = 1
	TypeFutsal   FootballType = 2
)

var validStatuses = map[MatchStatus]struct{}{
	StatusInterrupted: {},
	StatusPostponed:   {},
	StatusCancelled:   {},
	StatusCompleted:   {},
	StatusNotStarted:  {},
}

var validAgeCategories = map[AgeCategory]struct{}{
	AgeUndefined: {},
	AgeChildren:  {},
	AgeYouth:     {},
	AgeSenior:    {},
	AgeVeterans:  {},
}

var validGenders = map[Gender]struct{}{
	GenderMale:   {},
	GenderFemale: {},
	GenderMixed:  {},
}

var validFootballTypes = map[FootballType]struct{}{
	TypeFootball: {},
	TypeFutsal:   {},
}
