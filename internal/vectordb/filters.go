package vectordb

// Match is an exact-match condition on a single payload field.
type Match struct {
	Field string `json:"field"`
	Value string `json:"equalTo"`
}

// Filter is a conjunction of exact-match conditions: a point matches only
// when every condition in Must holds. An empty or nil filter matches
// everything and is treated as "no filter" by adapters.
type Filter struct {
	Must []Match `json:"must,omitempty"`
}

// Eq builds a single exact-match condition.
func Eq(field, value string) Match {
	return Match{Field: field, Value: value}
}

// NewFilter builds a conjunction from the given conditions.
// Returns nil when no conditions are given, so the result can be passed
// straight into SearchRequest.Filter.
func NewFilter(conditions ...Match) *Filter {
	if len(conditions) == 0 {
		return nil
	}
	return &Filter{Must: conditions}
}

// ByCategory is the common single-field filter for category-scoped searches.
func ByCategory(category string) *Filter {
	if category == "" {
		return nil
	}
	return NewFilter(Eq(FieldCategory, category))
}

// Empty reports whether the filter imposes no restriction.
func (f *Filter) Empty() bool {
	return f == nil || len(f.Must) == 0
}
