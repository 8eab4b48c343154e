package similarity

import (
	"context"
	"log"

	"github.com/avelis/earshot/data"
)

// genreSearchLimit is how many artists the genre-expansion search asks for.
const genreSearchLimit = 20

// batchLimit is the most ids one artist-lookup call accepts.
const batchLimit = 50

// collectCandidates gathers full artist records for every candidate worth
// scoring: the user's top artists, every artist credited on their top and
// recent tracks, and a genre-keyword expansion seeded from the target's most
// specific genre tag. The target itself is excluded. Candidate order is
// insertion order, which later acts as the tie-break for equal scores.
func collectCandidates(ctx context.Context, client Catalog, target *data.Artist, userTopArtists []data.Artist, userTopTracks []data.Track, recentlyPlayed []data.PlayRecord) []data.Artist {
	var order []string
	seen := map[string]struct{}{}
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}

	// seed with the target so nothing below re-adds it; it is dropped from
	// the final list
	add(target.SpotifyID)

	for _, artist := range userTopArtists {
		add(artist.SpotifyID)
	}
	for _, track := range userTopTracks {
		for _, artist := range track.Artists {
			add(artist.SpotifyID)
		}
	}
	for _, play := range recentlyPlayed {
		for _, artist := range play.Track.Artists {
			add(artist.SpotifyID)
		}
	}

	// genre expansion is best-effort: a failed search just means a smaller
	// candidate pool
	if genre := target.PrimaryGenre(); genre != "" && client != nil {
		found, err := client.SearchArtists(ctx, genre, genreSearchLimit)
		if err != nil {
			log.Printf("genre search for '%s' failed: %v", genre, err)
		} else {
			for _, artist := range found {
				if artist.SpotifyID != target.SpotifyID {
					add(artist.SpotifyID)
				}
			}
		}
	}

	ids := make([]string, 0, len(order))
	for _, id := range order {
		if id != target.SpotifyID {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	return resolveArtists(ctx, client, ids)
}

// resolveArtists fetches full artist records in sequential batches of 50. A
// failed batch is logged and skipped, not retried; scoring proceeds with
// whatever batches succeeded.
func resolveArtists(ctx context.Context, client Catalog, ids []string) []data.Artist {
	if client == nil {
		return nil
	}

	var artists []data.Artist
	for start := 0; start < len(ids); start += batchLimit {
		if err := ctx.Err(); err != nil {
			return artists
		}
		end := start + batchLimit
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := client.FetchArtists(ctx, ids[start:end])
		if err != nil {
			log.Printf("artist batch %d-%d failed: %v", start, end, err)
			continue
		}
		artists = append(artists, batch...)
	}
	return artists
}
