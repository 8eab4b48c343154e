package data

import "time"

// Source says where a track's association with an artist was observed.
type Source string

const (
	SourceRecent     Source = "recent"
	SourceShortTerm  Source = "short_term"
	SourceMediumTerm Source = "medium_term"
	SourceLongTerm   Source = "long_term"
)

// A TrackHistoryItem records one track's association with an artist's
// listening history, tagged with the highest-precedence source that observed
// it. PlayedAt is only set for SourceRecent; the top-items feeds carry no
// timestamps.
type TrackHistoryItem struct {
	Track    Track
	Source   Source
	PlayedAt time.Time
}

// Trend classifies whether the user's listening to an artist is picking up
// or tailing off, judged by presence in the short- vs medium-term windows.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendSteady  Trend = "steady"
)

// ListenData summarizes the user's listening relationship with one artist.
// It is recomputed from fresh snapshots on every request; nothing here is
// persisted or versioned.
type ListenData struct {
	// RankInTopArtists is the artist's 1-based position among the user's
	// short-term top artists, or nil if the artist isn't in the first two
	// pages.
	RankInTopArtists *int

	// TotalListensMS mixes real durations (recent plays) with estimated
	// ones (top-tracks appearances), so treat it as an order-of-magnitude
	// figure.
	TotalListensMS int64

	ListenTrend     Trend
	TopTimeOfDay    string
	FavoriteTrackID string
	TrackHistory    []TrackHistoryItem
}
