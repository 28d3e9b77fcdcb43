package models

// SimilarityMatch is a single nearest-neighbour hit. Score is a distance:
// lower means more similar.
type SimilarityMatch struct {
	BugID int     `json:"bug_id"`
	Score float64 `json:"score"`
	Title string  `json:"title"`
	Text  string  `json:"text"`
}

// Reference points at a historical bug that grounded a suggestion
type Reference struct {
	BugID int     `json:"bugId"`
	Score float64 `json:"score"`
}

// Suggestion is the result of one RCA request
type Suggestion struct {
	Suggestion       string      `json:"suggestion"`
	References       []Reference `json:"references"`
	ReferenceMessage *string     `json:"referenceMessage"`
}

// Grounded reports whether any historical bug backed the suggestion
func (s *Suggestion) Grounded() bool {
	return len(s.References) > 0
}

// IngestStats contains statistics from an ingestion run
type IngestStats struct {
	Tagged      int  `json:"tagged"`
	New         int  `json:"new"`
	Indexed     int  `json:"indexed"`
	NothingToDo bool `json:"nothing_to_do"`
	DryRun      bool `json:"dry_run,omitempty"`
	DurationMs  int  `json:"duration_ms"`
}
