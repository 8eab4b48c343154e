package similarity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/avelis/earshot/data"
)

// Per-signal caps and weights. Each signal contributes independently to a
// candidate's accumulator; none may take an accumulated score below zero.
const (
	genreScoreCap      = 100
	discoveryBonusRate = 0.3

	coListenCap        = 60
	topArtistDamping   = 0.4
	otherDamping       = 0.8
	freshDiscoveryBump = 20

	temporalCap = 40

	proximityCap       = 40
	proximityFalloff   = 0.8
	proximityThreshold = 15
	diversityCap       = 30
	diversityRate      = 0.5
	diversityGap       = 10

	collaborationBump = 50

	// already-familiar artists with runaway scores get trimmed a little
	echoThreshold = 150
	echoDamping   = 0.9
)

// scoreContext holds everything the signals need, computed once per call.
type scoreContext struct {
	target       *data.Artist
	inTopArtists map[string]bool
	frequency    map[string]float64
	targetFreq   float64
	targetDays   data.Vector
	recent       []data.PlayRecord
}

// scoreCandidates folds the five similarity signals over every candidate and
// returns those with positive scores, sorted by descending score. The sort is
// stable, so equal scores keep candidate-collection order.
func scoreCandidates(target *data.Artist, candidates []data.Artist, userTopArtists []data.Artist, userTopTracks []data.Track, recentlyPlayed []data.PlayRecord) []data.Candidate {
	sctx := &scoreContext{
		target:       target,
		inTopArtists: map[string]bool{},
		frequency:    map[string]float64{},
		targetDays:   dayOfWeekVector(target.SpotifyID, recentlyPlayed),
		recent:       recentlyPlayed,
	}
	for _, artist := range userTopArtists {
		sctx.inTopArtists[artist.SpotifyID] = true
	}

	// co-listen frequency: a credit on a top track counts 1, a credit on a
	// recent play counts 0.5
	for _, track := range userTopTracks {
		for _, artist := range track.Artists {
			sctx.frequency[artist.SpotifyID] += 1
		}
	}
	for _, play := range recentlyPlayed {
		for _, artist := range play.Track.Artists {
			sctx.frequency[artist.SpotifyID] += 0.5
		}
	}
	sctx.targetFreq = sctx.frequency[target.SpotifyID]

	signals := []signal{
		genreOverlap,
		coListening,
		temporalSimilarity,
		popularityProximity,
		nameCollaboration,
	}

	var results []data.Candidate
	for i := range candidates {
		acc := data.Candidate{Artist: candidates[i]}
		for _, sig := range signals {
			sig(&acc, sctx)
		}
		if sctx.inTopArtists[acc.Artist.SpotifyID] && acc.Score > echoThreshold {
			acc.Score *= echoDamping
		}
		if acc.Score > 0 {
			results = append(results, acc)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// A signal inspects one candidate and adds its contribution, with a reason
// tag, to the accumulator. Signals never subtract.
type signal func(acc *data.Candidate, sctx *scoreContext)

// genreOverlap scores shared genre tags against the target's genre count,
// with a bonus when the candidate isn't already a familiar top artist.
func genreOverlap(acc *data.Candidate, sctx *scoreContext) {
	if len(acc.Artist.Genres) == 0 || len(sctx.target.Genres) == 0 {
		return
	}

	var shared int
	for _, g := range acc.Artist.Genres {
		if sctx.target.HasGenre(g) {
			shared++
		}
	}
	if shared == 0 {
		return
	}

	genreScore := math.Min(genreScoreCap,
		float64(shared)/math.Max(1, float64(len(sctx.target.Genres)))*100)
	acc.Score += genreScore
	acc.MatchReasons = append(acc.MatchReasons, fmt.Sprintf("%d shared genres", shared))

	if !sctx.inTopArtists[acc.Artist.SpotifyID] {
		acc.Score += genreScore * discoveryBonusRate
		acc.MatchReasons = append(acc.MatchReasons, "discovery bonus")
	}
}

// coListening rewards candidates the user plays about as often as the target.
// Already-familiar top artists are damped harder than everyone else, and
// candidates with no listening history at all get a flat novelty bump
// instead. Neither applies when the user never plays the target.
func coListening(acc *data.Candidate, sctx *scoreContext) {
	if sctx.targetFreq == 0 {
		return
	}

	freq := sctx.frequency[acc.Artist.SpotifyID]
	if freq == 0 {
		acc.Score += freshDiscoveryBump
		acc.MatchReasons = append(acc.MatchReasons, "fresh discovery")
		return
	}

	ratio := math.Min(freq/sctx.targetFreq, sctx.targetFreq/freq)
	weight := otherDamping
	if sctx.inTopArtists[acc.Artist.SpotifyID] {
		weight = topArtistDamping
	}
	acc.Score += math.Min(coListenCap, ratio*coListenCap*weight)
	acc.MatchReasons = append(acc.MatchReasons, "listening patterns")
}

// temporalSimilarity compares when in the week the user plays the target vs
// the candidate, over the recent-plays feed only.
func temporalSimilarity(acc *data.Candidate, sctx *scoreContext) {
	days := dayOfWeekVector(acc.Artist.SpotifyID, sctx.recent)
	similarity := sctx.targetDays.Cosine(days)
	if similarity <= 0 {
		return
	}
	acc.Score += math.Min(temporalCap, similarity*temporalCap)
	acc.MatchReasons = append(acc.MatchReasons, "similar listening patterns")
}

// popularityProximity rewards candidates near the target's popularity, and
// separately rewards clearly less mainstream candidates to keep the list from
// clustering at one popularity level.
func popularityProximity(acc *data.Candidate, sctx *scoreContext) {
	diff := math.Abs(float64(acc.Artist.Popularity - sctx.target.Popularity))
	proximity := math.Max(0, proximityCap-diff*proximityFalloff)
	if proximity > proximityThreshold {
		acc.Score += proximity
		acc.MatchReasons = append(acc.MatchReasons, "similar popularity level")
	}

	gap := float64(sctx.target.Popularity - acc.Artist.Popularity)
	if gap > diversityGap {
		acc.Score += math.Min(diversityCap, gap*diversityRate)
		acc.MatchReasons = append(acc.MatchReasons, "diversity bonus")
	}
}

// nameCollaboration catches featured-artist style naming, where one act's
// name contains the other's.
func nameCollaboration(acc *data.Candidate, sctx *scoreContext) {
	a := strings.ToLower(acc.Artist.Name)
	b := strings.ToLower(sctx.target.Name)
	if a == "" || b == "" {
		return
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		acc.Score += collaborationBump
		acc.MatchReasons = append(acc.MatchReasons, "possible collaboration relationship")
	}
}

// dayOfWeekVector counts the artist's recent plays per weekday.
func dayOfWeekVector(artistID string, recentlyPlayed []data.PlayRecord) data.Vector {
	days := data.Vector{}
	for _, play := range recentlyPlayed {
		if play.Track.HasArtist(artistID) {
			days.Add(play.PlayedAt.Weekday().String(), 1)
		}
	}
	return days
}
