package data

import "time"

// A PlayRecord pairs a track with the exact time the user played it. The
// recently-played feed caps out at the last 50 plays and is not guaranteed
// complete: playback gaps and private sessions leave holes.
type PlayRecord struct {
	Track    Track
	PlayedAt time.Time
}

// Range names one of the catalog provider's fixed top-items windows.
type Range string

const (
	RangeShortTerm  Range = "short_term"  // roughly the last 4 weeks
	RangeMediumTerm Range = "medium_term" // roughly the last 6 months
	RangeLongTerm   Range = "long_term"   // all time
)

// Ranges lists the top-items windows from most to least recent.
var Ranges = []Range{RangeShortTerm, RangeMediumTerm, RangeLongTerm}
