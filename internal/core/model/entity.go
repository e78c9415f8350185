package model

// Person is an individual mentioned in the document together with the
// role the text assigns them (claimant, judge, counsel, ...).
type Person struct {
	Name       string  `json:"name"`
	Role       string  `json:"role,omitempty"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context,omitempty"`
}

// Issue is a legal question or dispute raised by the document.
type Issue struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
	Context     string  `json:"context,omitempty"`
}

// ChronologyEvent is a dated occurrence extracted from the document.
type ChronologyEvent struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// Authority is a citation to case law, legislation or another legal source.
type Authority struct {
	Citation   string  `json:"citation"`
	Relevance  string  `json:"relevance,omitempty"`
	Confidence float64 `json:"confidence"`
}

// EntitySet groups the four entity collections every engine produces.
type EntitySet struct {
	Persons     []Person          `json:"persons"`
	Issues      []Issue           `json:"issues"`
	Events      []ChronologyEvent `json:"chronology_events"`
	Authorities []Authority       `json:"authorities"`
}

// Count returns the total number of entities across all four collections.
func (s *EntitySet) Count() int {
	return len(s.Persons) + len(s.Issues) + len(s.Events) + len(s.Authorities)
}
