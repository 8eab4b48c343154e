package data

// A Candidate is one artist considered for the similar-artists list, with its
// accumulated similarity score and the human-readable reasons behind it.
// Candidates are transient: rebuilt per request, never cached.
type Candidate struct {
	Artist       Artist
	Score        float64
	MatchReasons []string
}
