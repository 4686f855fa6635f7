package filter

import (
	"github.com/pitchconnect/fogis-api-client-go/internal/timeutil"
)

// Criteria is a validated match list filter. The zero value (or New())
// matches everything. Builder methods chain; Validate must pass before the
// criteria reaches the network or the filtering engine.
type Criteria struct {
	fromDate string
	toDate   string

	statusInclude []MatchStatus
	statusExclude []MatchStatus
	ageInclude    []AgeCategory
	ageExclude    []AgeCategory
	genderInclude []Gender
	genderExclude []Gender
	typeInclude   []FootballType
	typeExclude   []FootballType
}

// New returns criteria with no constraints.
func New() *Criteria {
	return &Criteria{}
}

// StartDate sets the server-side range start (YYYY-MM-DD).
func (c *Criteria) StartDate(date string) *Criteria {
	c.fromDate = date
	return c
}

// EndDate sets the server-side range end (YYYY-MM-DD).
func (c *Criteria) EndDate(date string) *Criteria {
	c.toDate = date
	return c
}

// IncludeStatuses keeps only matches in one of the given statuses.
func (c *Criteria) IncludeStatuses(statuses ...MatchStatus) *Criteria {
	c.statusInclude = append(c.statusInclude, statuses...)
	return c
}

// ExcludeStatuses drops matches in any of the given statuses.
func (c *Criteria) ExcludeStatuses(statuses ...MatchStatus) *Criteria {
	c.statusExclude = append(c.statusExclude, statuses...)
	return c
}

// IncludeAgeCategories keeps only matches in one of the given age categories.
func (c *Criteria) IncludeAgeCategories(categories ...AgeCategory) *Criteria {
	c.ageInclude = append(c.ageInclude, categories...)
	return c
}

// ExcludeAgeCategories drops matches in any of the given age categories.
func (c *Criteria) ExcludeAgeCategories(categories ...AgeCategory) *Criteria {
	c.ageExclude = append(c.ageExclude, categories...)
	return c
}

// IncludeGenders keeps only matches in one of the given gender classes.
func (c *Criteria) IncludeGenders(genders ...Gender) *Criteria {
	c.genderInclude = append(c.genderInclude, genders...)
	return c
}

// ExcludeGenders drops matches in any of the given gender classes.
func (c *Criteria) ExcludeGenders(genders ...Gender) *Criteria {
	c.genderExclude = append(c.genderExclude, genders...)
	return c
}

// IncludeFootballTypes keeps only matches of one of the given football types.
func (c *Criteria) IncludeFootballTypes(types ...FootballType) *Criteria {
	c.typeInclude = append(c.typeInclude, types...)
	return c
}

// ExcludeFootballTypes drops matches of any of the given football types.
func (c *Criteria) ExcludeFootballTypes(types ...FootballType) *Criteria {
	c.typeExclude = append(c.typeExclude, types...)
	return c
}

// Validate checks every set member against its enumeration and the date range
// for well-formedness and ordering. The first offending field/value is named
// in the returned ValidationError. Empty criteria are valid.
func (c *Criteria) Validate() error {
	for _, status := range append(append([]MatchStatus{}, c.statusInclude...), c.statusExclude...) {
		if _, ok := validStatuses[status]; !ok {
			return &ValidationError{Field: "status", Value: string(status)}
		}
	}
	for _, category := range append(append([]AgeCategory{}, c.ageInclude...), c.ageExclude...) {
		if _, ok := validAgeCategories[category]; !ok {
			return &ValidationError{Field: "ageCategory", Value: int(category)}
		}
	}
	for _, gender := range append(append([]Gender{}, c.genderInclude...), c.genderExclude...) {
		if _, ok := validGenders[gender]; !ok {
			return &ValidationError{Field: "gender", Value: int(gender)}
		}
	}
	for _, footballType := range append(append([]FootballType{}, c.typeInclude...), c.typeExclude...) {
		if _, ok := validFootballTypes[footballType]; !ok {
			return &ValidationError{Field: "footballType", Value: int(footballType)}
		}
	}

	return c.validateDates()
}

func (c *Criteria) validateDates() error {
	var from, to string
	if c.fromDate != "" {
		parsed, err := timeutil.ParseDate(c.fromDate)
		if err != nil {
			return &ValidationError{Field: "fromDate", Value: c.fromDate, Message: "not a valid date"}
		}
		from = timeutil.FormatDate(parsed)
	}
	if c.toDate != "" {
		parsed, err := timeutil.ParseDate(c.toDate)
		if err != nil {
			return &ValidationError{Field: "toDate", Value: c.toDate, Message: "not a valid date"}
		}
		to = timeutil.FormatDate(parsed)
	}
	if from != "" && to != "" && from > to {
		return &ValidationError{Field: "toDate", Value: c.toDate, Message: "end date precedes start date"}
	}
	return nil
}

// ServerPayload projects the criteria onto what the backend itself
// understands: the date range, and nothing else. Every other dimension is
// applied client-side by Apply.
func (c *Criteria) ServerPayload() map[string]any {
	payload := make(map[string]any)
	if c.fromDate != "" {
		payload["datumFran"] = c.fromDate
	}
	if c.toDate != "" {
		payload["datumTill"] = c.toDate
	}
	return payload
}
