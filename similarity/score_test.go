package similarity

import (
	"testing"

	"github.com/avelis/earshot/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreOne(t *testing.T, target data.Artist, candidate data.Artist, top []data.Artist, tracks []data.Track, recent []data.PlayRecord) data.Candidate {
	t.Helper()
	results := scoreCandidates(&target, []data.Artist{candidate}, top, tracks, recent)
	require.Len(t, results, 1)
	return results[0]
}

func TestGenreOverlapWithDiscoveryBonus(t *testing.T) {
	// half the target's genres shared, candidate unfamiliar: 50 base + 15 bonus.
	// popularity is picked so the proximity signal stays quiet.
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 10,
		Genres: []string{"dream pop", "indie rock"}}
	candidate := data.Artist{SpotifyID: "c", Name: "Candidate", Popularity: 42,
		Genres: []string{"dream pop"}}

	got := scoreOne(t, target, candidate, nil, nil, nil)
	assert.InDelta(t, 65.0, got.Score, 1e-9)
	assert.Equal(t, []string{"1 shared genres", "discovery bonus"}, got.MatchReasons)
}

func TestGenreOverlapNoBonusForTopArtist(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 10,
		Genres: []string{"dream pop", "indie rock"}}
	candidate := data.Artist{SpotifyID: "c", Name: "Candidate", Popularity: 42,
		Genres: []string{"dream pop"}}

	got := scoreOne(t, target, candidate, []data.Artist{candidate}, nil, nil)
	assert.InDelta(t, 50.0, got.Score, 1e-9)
	assert.Equal(t, []string{"1 shared genres"}, got.MatchReasons)
}

func TestCoListeningDampsFamiliarArtists(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 10}
	familiar := data.Artist{SpotifyID: "f", Name: "Familiar", Popularity: 42}
	unfamiliar := data.Artist{SpotifyID: "u", Name: "Unfamiliar", Popularity: 42}

	// one top-track credit each: every frequency is 1, every ratio 1
	tracks := []data.Track{
		{SpotifyID: "t1", Artists: []data.Artist{target}},
		{SpotifyID: "t2", Artists: []data.Artist{familiar}},
		{SpotifyID: "t3", Artists: []data.Artist{unfamiliar}},
	}

	gotFamiliar := scoreOne(t, target, familiar, []data.Artist{familiar}, tracks, nil)
	gotUnfamiliar := scoreOne(t, target, unfamiliar, nil, tracks, nil)

	assert.InDelta(t, 24.0, gotFamiliar.Score, 1e-9)   // 60 * 0.4
	assert.InDelta(t, 48.0, gotUnfamiliar.Score, 1e-9) // 60 * 0.8
}

func TestCoListeningFreshDiscoveryBump(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 10}
	fresh := data.Artist{SpotifyID: "n", Name: "Never Played", Popularity: 42}

	tracks := []data.Track{{SpotifyID: "t1", Artists: []data.Artist{target}}}

	got := scoreOne(t, target, fresh, nil, tracks, nil)
	assert.InDelta(t, 20.0, got.Score, 1e-9)
	assert.Equal(t, []string{"fresh discovery"}, got.MatchReasons)
}

func TestCoListeningSkippedWhenTargetUnplayed(t *testing.T) {
	// the user never plays the target: no ratios, and no novelty bump either
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 10}
	other := data.Artist{SpotifyID: "o", Name: "Other", Popularity: 42}

	tracks := []data.Track{{SpotifyID: "t1", Artists: []data.Artist{other}}}

	results := scoreCandidates(&target, []data.Artist{other}, nil, tracks, nil)
	assert.Empty(t, results)
}

func TestPopularityProximityAndDiversity(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 80}

	near := data.Artist{SpotifyID: "n", Name: "Near", Popularity: 75}
	niche := data.Artist{SpotifyID: "d", Name: "Niche", Popularity: 40}

	gotNear := scoreOne(t, target, near, nil, nil, nil)
	assert.InDelta(t, 36.0, gotNear.Score, 1e-9) // 40 - 5*0.8
	assert.Equal(t, []string{"similar popularity level"}, gotNear.MatchReasons)

	// gap of 40: proximity 40-32=8 stays quiet, diversity caps gap*0.5 at 20
	gotNiche := scoreOne(t, target, niche, nil, nil, nil)
	assert.InDelta(t, 20.0, gotNiche.Score, 1e-9)
	assert.Equal(t, []string{"diversity bonus"}, gotNiche.MatchReasons)
}

func TestNameCollaboration(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Big Star", Popularity: 10}
	feature := data.Artist{SpotifyID: "f", Name: "big star & friends", Popularity: 42}

	got := scoreOne(t, target, feature, nil, nil, nil)
	assert.InDelta(t, 50.0, got.Score, 1e-9)
	assert.Equal(t, []string{"possible collaboration relationship"}, got.MatchReasons)
}

func TestEchoDampingForHighScoringTopArtists(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 50,
		Genres: []string{"dream pop", "indie rock"}}
	candidate := data.Artist{SpotifyID: "c", Name: "Target Orchestra", Popularity: 50,
		Genres: []string{"dream pop", "indie rock"}}

	tracks := []data.Track{
		{SpotifyID: "t1", Artists: []data.Artist{target}},
		{SpotifyID: "t2", Artists: []data.Artist{candidate}},
	}

	// genre 100 + co-listen 24 + proximity 40 + collaboration 50 = 214 raw
	got := scoreOne(t, target, candidate, []data.Artist{candidate}, tracks, nil)
	assert.InDelta(t, 214*0.9, got.Score, 1e-9)
}

func TestEchoDampingNotAppliedBelowThreshold(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 50,
		Genres: []string{"dream pop"}}
	candidate := data.Artist{SpotifyID: "c", Name: "Candidate", Popularity: 50,
		Genres: []string{"dream pop"}}

	// genre 100 + proximity 40 = 140, under the threshold
	got := scoreOne(t, target, candidate, []data.Artist{candidate}, nil, nil)
	assert.InDelta(t, 140.0, got.Score, 1e-9)
}

func TestStableSortPreservesCandidateOrder(t *testing.T) {
	target := data.Artist{SpotifyID: "t", Name: "Target", Popularity: 10,
		Genres: []string{"dream pop"}}
	first := data.Artist{SpotifyID: "a", Name: "First", Popularity: 42,
		Genres: []string{"dream pop"}}
	second := data.Artist{SpotifyID: "b", Name: "Second", Popularity: 42,
		Genres: []string{"dream pop"}}

	results := scoreCandidates(&target, []data.Artist{first, second}, nil, nil, nil)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "a", results[0].Artist.SpotifyID)
	assert.Equal(t, "b", results[1].Artist.SpotifyID)
}
