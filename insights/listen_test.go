package insights_test

import (
	"testing"
	"time"

	"github.com/avelis/earshot/data"
	"github.com/avelis/earshot/insights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zinnia = data.Artist{SpotifyID: "zinnia", Name: "Zinnia"}

func zinniaTrack(id string, durationMS int64) data.Track {
	return data.Track{
		SpotifyID:  id,
		Name:       "track " + id,
		DurationMS: durationMS,
		Artists:    []data.Artist{zinnia},
	}
}

func playedAt(track data.Track, at time.Time) data.PlayRecord {
	return data.PlayRecord{Track: track, PlayedAt: at}
}

func TestNoHistoryAnywhere(t *testing.T) {
	otherTrack := data.Track{SpotifyID: "x", Artists: []data.Artist{{SpotifyID: "someone-else"}}}

	got := insights.CalculateListenData("zinnia",
		[]data.Track{otherTrack}, []data.Track{otherTrack}, []data.Track{otherTrack},
		[]data.PlayRecord{playedAt(otherTrack, time.Now())}, nil, nil)

	assert.Nil(t, got.RankInTopArtists)
	assert.Equal(t, int64(0), got.TotalListensMS)
	assert.Equal(t, data.TrendSteady, got.ListenTrend)
	assert.Empty(t, got.TrackHistory)
	assert.Empty(t, got.FavoriteTrackID)
	assert.Empty(t, got.TopTimeOfDay)
}

func TestHistoryPrecedenceAndDedup(t *testing.T) {
	a := zinniaTrack("a", 1000)
	b := zinniaTrack("b", 1000)
	c := zinniaTrack("c", 1000)
	d := zinniaTrack("d", 1000)
	now := time.Now()

	got := insights.CalculateListenData("zinnia",
		[]data.Track{a, b},    // short: a deduped against recent
		[]data.Track{b, c},    // medium: b deduped against short
		[]data.Track{a, c, d}, // long: only d survives
		nil,
		[]data.PlayRecord{playedAt(a, now)},
		nil)

	require.Len(t, got.TrackHistory, 4)
	assert.Equal(t, "a", got.TrackHistory[0].Track.SpotifyID)
	assert.Equal(t, data.SourceRecent, got.TrackHistory[0].Source)
	assert.Equal(t, now, got.TrackHistory[0].PlayedAt)
	assert.Equal(t, "b", got.TrackHistory[1].Track.SpotifyID)
	assert.Equal(t, data.SourceShortTerm, got.TrackHistory[1].Source)
	assert.Equal(t, "c", got.TrackHistory[2].Track.SpotifyID)
	assert.Equal(t, data.SourceMediumTerm, got.TrackHistory[2].Source)
	assert.Equal(t, "d", got.TrackHistory[3].Track.SpotifyID)
	assert.Equal(t, data.SourceLongTerm, got.TrackHistory[3].Source)

	seen := map[string]bool{}
	for _, item := range got.TrackHistory {
		assert.False(t, seen[item.Track.SpotifyID])
		seen[item.Track.SpotifyID] = true
	}
}

func TestDurationSumsEachTierIndependently(t *testing.T) {
	// one track topping all three windows counts once per tier, even though
	// the history list holds it once
	a := zinniaTrack("a", 1000)

	got := insights.CalculateListenData("zinnia",
		[]data.Track{a}, []data.Track{a}, []data.Track{a},
		nil, nil, nil)

	require.Len(t, got.TrackHistory, 1)
	assert.Equal(t, int64(3*5*1000), got.TotalListensMS)
}

func TestDurationAddsVerifiedPlays(t *testing.T) {
	a := zinniaTrack("a", 1000)
	b := zinniaTrack("b", 2000)

	got := insights.CalculateListenData("zinnia",
		[]data.Track{b}, nil, nil,
		nil,
		[]data.PlayRecord{playedAt(a, time.Now()), playedAt(a, time.Now())},
		nil)

	// two real plays of a, plus the short-term estimate for b
	assert.Equal(t, int64(2*1000+5*2000), got.TotalListensMS)
}

func TestTrendRising(t *testing.T) {
	a, b, c := zinniaTrack("a", 1), zinniaTrack("b", 1), zinniaTrack("c", 1)

	got := insights.CalculateListenData("zinnia",
		[]data.Track{a, b, c}, []data.Track{a}, nil, nil, nil, nil)
	assert.Equal(t, data.TrendRising, got.ListenTrend)
}

func TestTrendSteadyWhenGoneFromShortTerm(t *testing.T) {
	a, b := zinniaTrack("a", 1), zinniaTrack("b", 1)

	// absent from the short window reads as steady, not falling
	got := insights.CalculateListenData("zinnia",
		nil, []data.Track{a, b}, nil, nil, nil, nil)
	assert.Equal(t, data.TrendSteady, got.ListenTrend)
}

func TestTrendFalling(t *testing.T) {
	a, b, c, d := zinniaTrack("a", 1), zinniaTrack("b", 1), zinniaTrack("c", 1), zinniaTrack("d", 1)

	got := insights.CalculateListenData("zinnia",
		[]data.Track{a}, []data.Track{a, b, c, d}, nil, nil, nil, nil)
	assert.Equal(t, data.TrendFalling, got.ListenTrend)
}

func TestFavoriteTrackWeighting(t *testing.T) {
	// one verified recent play (1.5) outweighs a medium-term appearance
	// (0.8); b's long-term appearance is deduplicated away entirely
	a := zinniaTrack("a", 1000)
	b := zinniaTrack("b", 1000)

	got := insights.CalculateListenData("zinnia",
		nil, []data.Track{b}, []data.Track{b},
		nil,
		[]data.PlayRecord{playedAt(a, time.Now())},
		nil)

	assert.Equal(t, "a", got.FavoriteTrackID)
}

func TestFavoriteTrackTieBreaksOnID(t *testing.T) {
	a := zinniaTrack("a", 1000)
	b := zinniaTrack("b", 1000)

	// b tops every window, but dedup tags it short_term only. At equal
	// weight the smaller id wins.
	got := insights.CalculateListenData("zinnia",
		[]data.Track{b, a}, []data.Track{b}, []data.Track{b},
		nil, nil, nil)

	assert.Equal(t, "a", got.FavoriteTrackID)
}

func TestTopTimeOfDay(t *testing.T) {
	a := zinniaTrack("a", 1000)
	morning := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC)
	night := time.Date(2026, 8, 30, 23, 30, 0, 0, time.UTC)

	got := insights.CalculateListenData("zinnia",
		nil, nil, nil,
		nil,
		[]data.PlayRecord{
			playedAt(a, evening),
			playedAt(a, night),
			playedAt(a, evening),
			playedAt(a, morning),
		},
		nil)

	assert.Equal(t, "evening", got.TopTimeOfDay)
}

func TestArtistPlaysDerivedFromFullFeed(t *testing.T) {
	mine := zinniaTrack("a", 1000)
	other := data.Track{SpotifyID: "x", DurationMS: 9000, Artists: []data.Artist{{SpotifyID: "someone-else"}}}

	got := insights.CalculateListenData("zinnia",
		nil, nil, nil,
		[]data.PlayRecord{playedAt(other, time.Now()), playedAt(mine, time.Now())},
		nil, // derive the artist subset from the full feed
		nil)

	require.Len(t, got.TrackHistory, 1)
	assert.Equal(t, "a", got.TrackHistory[0].Track.SpotifyID)
	assert.Equal(t, int64(1000), got.TotalListensMS)
}

func TestRankPassedThrough(t *testing.T) {
	rank := 7
	got := insights.CalculateListenData("zinnia", nil, nil, nil, nil, nil, &rank)
	require.NotNil(t, got.RankInTopArtists)
	assert.Equal(t, 7, *got.RankInTopArtists)
}
