package filter

// Input is the loosely-typed criteria surface as it arrives from a request
// body or query string. All fields are optional; an empty input matches
// everything.
type Input struct {
	FromDate string `json:"fromDate,omitempty"`
	ToDate   string `json:"toDate,omitempty"`

	Status        []string `json:"status,omitempty"`
	AgeCategories []int    `json:"ageCategories,omitempty"`
	Genders       []int    `json:"genders,omitempty"`
	FootballTypes []int    `json:"footballTypes,omitempty"`

	ExcludeStatus        []string `json:"excludeStatus,omitempty"`
	ExcludeAgeCategories []int    `json:"excludeAgeCategories,omitempty"`
	ExcludeGenders       []int    `json:"excludeGenders,omitempty"`
	ExcludeFootballTypes []int    `json:"excludeFootballTypes,omitempty"`
}

// Parse turns loose input into validated Criteria, failing fast on the first
// value outside its enumeration or an invalid date range. Nothing unvalidated
// ever reaches the filtering engine.
func Parse(input Input) (*Criteria, error) {
	criteria := New()
	if input.FromDate != "" {
		criteria.StartDate(input.FromDate)
	}
	if input.ToDate != "" {
		criteria.EndDate(input.ToDate)
	}

	criteria.IncludeStatuses(asStatuses(input.Status)...)
	criteria.ExcludeStatuses(asStatuses(input.ExcludeStatus)...)
	criteria.IncludeAgeCategories(asEnum[AgeCategory](input.AgeCategories)...)
	criteria.ExcludeAgeCategories(asEnum[AgeCategory](input.ExcludeAgeCategories)...)
	criteria.IncludeGenders(asEnum[Gender](input.Genders)...)
	criteria.ExcludeGenders(asEnum[Gender](input.ExcludeGenders)...)
	criteria.IncludeFootballTypes(asEnum[FootballType](input.FootballTypes)...)
	criteria.ExcludeFootballTypes(asEnum[FootballType](input.ExcludeFootballTypes)...)

	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return criteria, nil
}

func asStatuses(values []string) []MatchStatus {
	statuses := make([]MatchStatus, len(values))
	for i, v := range values {
		statuses[i] = MatchStatus(v)
	}
	return statuses
}

func asEnum[T ~int](values []int) []T {
	converted := make([]T, len(values))
	for i, v := range values {
		converted[i] = T(v)
	}
	return converted
}
