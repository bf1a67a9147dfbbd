package driven

// SynonymStore supplies the query synonym table used for relevance scoring.
// Keys are lowercase query words; values are words that mean the same thing.
type SynonymStore interface {
	// Synonyms returns the current table.
	Synonyms() (map[string][]string, error)
}
