// Package similarity ranks artists similar to a target artist, using the
// user's own listening data plus catalog metadata: a candidate collector, a
// five-signal scorer, and a rebalancing pass that protects a minimum share of
// not-yet-familiar recommendations.
package similarity

import (
	"context"

	"github.com/avelis/earshot/data"
)

// maxResults caps the ranked list.
const maxResults = 20

// Catalog is the slice of the client that candidate collection needs.
type Catalog interface {
	SearchArtists(ctx context.Context, q string, limit int) ([]data.Artist, error)
	FetchArtists(ctx context.Context, ids []string) ([]data.Artist, error)
}

// FindRelatedArtists produces at most 20 candidates similar to the target,
// sorted by descending score. It never fails outright: every catalog call is
// best-effort, attempted once, and a failure just shrinks the candidate set.
// The target artist never appears in its own results.
func FindRelatedArtists(ctx context.Context, client Catalog, target *data.Artist, userTopArtists []data.Artist, userTopTracks []data.Track, recentlyPlayed []data.PlayRecord) ([]data.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := collectCandidates(ctx, client, target, userTopArtists, userTopTracks, recentlyPlayed)
	if len(candidates) == 0 {
		return nil, nil
	}

	ranked := scoreCandidates(target, candidates, userTopArtists, userTopTracks, recentlyPlayed)

	return rebalance(ranked, userTopArtists), nil
}
