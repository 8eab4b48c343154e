// Package insights derives a user's listening relationship with one artist
// from their top-tracks snapshots and recently-played feed: merged track
// history, estimated listening time, trend, favorite track, and time-of-day
// habits.
package insights

import (
	"github.com/avelis/earshot/data"
)

// estimatedPlays is the assumed play count for a track that appears in a
// top-tracks window. The feeds carry no play counts, so duration accounting
// for them is an estimate.
const estimatedPlays = 5

// Weights for picking a favorite track: a verified recent play says more
// than an all-time top-tracks appearance.
var sourceWeights = map[data.Source]float64{
	data.SourceRecent:     1.5,
	data.SourceShortTerm:  1.0,
	data.SourceMediumTerm: 0.8,
	data.SourceLongTerm:   0.5,
}

// CalculateListenData merges the three top-tracks snapshots and the
// recently-played feed into one ListenData record for the artist. It is a
// pure computation over already-fetched snapshots. artistRecentlyPlayed is
// the subset of allRecentlyPlayed crediting the artist; pass nil to have it
// derived here.
func CalculateListenData(artistID string, shortTerm, mediumTerm, longTerm []data.Track, allRecentlyPlayed, artistRecentlyPlayed []data.PlayRecord, rank *int) data.ListenData {
	if artistRecentlyPlayed == nil {
		for _, play := range allRecentlyPlayed {
			if play.Track.HasArtist(artistID) {
				artistRecentlyPlayed = append(artistRecentlyPlayed, play)
			}
		}
	}

	artistInShortTerm := creditedTracks(artistID, shortTerm)
	artistInMediumTerm := creditedTracks(artistID, mediumTerm)
	artistInLongTerm := creditedTracks(artistID, longTerm)

	history := mergeHistory(artistRecentlyPlayed, artistInShortTerm, artistInMediumTerm, artistInLongTerm)

	ld := data.ListenData{
		RankInTopArtists: rank,
		ListenTrend:      trend(len(artistInShortTerm), len(artistInMediumTerm)),
		TopTimeOfDay:     topTimeOfDay(artistRecentlyPlayed),
		FavoriteTrackID:  favoriteTrack(history),
		TrackHistory:     history,
	}

	// real durations for verified plays...
	for _, play := range artistRecentlyPlayed {
		ld.TotalListensMS += play.Track.DurationMS
	}
	// ...plus per-tier estimates. Each tier contributes independently, so a
	// track topping all three windows is counted three times here even
	// though the history list holds it once. That mirrors how the product
	// has always accounted for it.
	ld.TotalListensMS += estimatedPlaytime(artistInShortTerm)
	ld.TotalListensMS += estimatedPlaytime(artistInMediumTerm)
	ld.TotalListensMS += estimatedPlaytime(artistInLongTerm)

	return ld
}

// mergeHistory builds the deduplicated, source-tagged track history. The
// stages run in strict precedence order: recent plays first, then each
// top-tracks tier filtered against everything already present, so a track
// appears at most once, tagged with its highest-precedence source.
func mergeHistory(recent []data.PlayRecord, short, medium, long []data.Track) []data.TrackHistoryItem {
	var history []data.TrackHistoryItem
	present := map[string]bool{}

	for _, play := range recent {
		if present[play.Track.SpotifyID] {
			continue
		}
		present[play.Track.SpotifyID] = true
		history = append(history, data.TrackHistoryItem{
			Track:    play.Track,
			Source:   data.SourceRecent,
			PlayedAt: play.PlayedAt,
		})
	}

	tiers := []struct {
		tracks []data.Track
		source data.Source
	}{
		{short, data.SourceShortTerm},
		{medium, data.SourceMediumTerm},
		{long, data.SourceLongTerm},
	}
	for _, tier := range tiers {
		for _, track := range tier.tracks {
			if present[track.SpotifyID] {
				continue
			}
			present[track.SpotifyID] = true
			history = append(history, data.TrackHistoryItem{
				Track:  track,
				Source: tier.source,
			})
		}
	}

	return history
}

// favoriteTrack weights each history item by source and returns the id of
// the heaviest track, or "" for an empty history.
func favoriteTrack(history []data.TrackHistoryItem) string {
	weights := data.Vector{}
	for _, item := range history {
		weights.Add(item.Track.SpotifyID, sourceWeights[item.Source])
	}
	return weights.Top()
}

// trend compares presence in the short- and medium-term windows. A drop to
// zero short-term appearances reads as steady, not falling: the artist may
// simply have fallen off the window's edge.
func trend(shortCount, mediumCount int) data.Trend {
	switch {
	case shortCount > mediumCount:
		return data.TrendRising
	case shortCount < mediumCount && shortCount > 0:
		return data.TrendFalling
	default:
		return data.TrendSteady
	}
}

// topTimeOfDay buckets verified plays into morning/afternoon/evening/night
// and returns the fullest bucket, or "" when there are no timestamped plays.
func topTimeOfDay(recent []data.PlayRecord) string {
	buckets := data.Vector{}
	for _, play := range recent {
		hour := play.PlayedAt.Hour()
		switch {
		case hour >= 5 && hour < 12:
			buckets.Add("morning", 1)
		case hour >= 12 && hour < 17:
			buckets.Add("afternoon", 1)
		case hour >= 17 && hour < 21:
			buckets.Add("evening", 1)
		default:
			buckets.Add("night", 1)
		}
	}
	return buckets.Top()
}

func creditedTracks(artistID string, tracks []data.Track) []data.Track {
	var credited []data.Track
	for _, track := range tracks {
		if track.HasArtist(artistID) {
			credited = append(credited, track)
		}
	}
	return credited
}

func estimatedPlaytime(tracks []data.Track) int64 {
	var total int64
	for _, track := range tracks {
		total += track.DurationMS * estimatedPlays
	}
	return total
}
