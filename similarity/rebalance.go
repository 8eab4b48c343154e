package similarity

import "github.com/avelis/earshot/data"

// Rebalancing quota: of the top 20, at least this many should be artists the
// user doesn't already have in their top-artists snapshot. When the quota
// misses, the bottom 5 slots are re-dealt to the best such candidates from
// the whole pool.
const (
	discoveryQuota = 7
	keepCount      = 15
	dealCount      = 5
)

// rebalance trims the ranked list to 20, trading pure score order for a
// minimum share of unfamiliar artists when the pool is deep enough to afford
// it.
func rebalance(ranked []data.Candidate, userTopArtists []data.Artist) []data.Candidate {
	inTop := map[string]bool{}
	for _, artist := range userTopArtists {
		inTop[artist.SpotifyID] = true
	}

	top := ranked
	if len(top) > maxResults {
		top = top[:maxResults]
	}

	var discoveries int
	for _, c := range top {
		if !inTop[c.Artist.SpotifyID] {
			discoveries++
		}
	}
	if discoveries >= discoveryQuota || len(ranked) <= maxResults {
		return top
	}

	kept := top[:keepCount]
	used := map[string]bool{}
	for _, c := range kept {
		used[c.Artist.SpotifyID] = true
	}

	blended := append([]data.Candidate{}, kept...)
	var dealt int
	for _, c := range ranked {
		if dealt == dealCount {
			break
		}
		if inTop[c.Artist.SpotifyID] || used[c.Artist.SpotifyID] {
			continue
		}
		blended = append(blended, c)
		used[c.Artist.SpotifyID] = true
		dealt++
	}

	if len(blended) > maxResults {
		blended = blended[:maxResults]
	}
	return blended
}
