package insights

import (
	"context"
	"log"

	"github.com/avelis/earshot/data"
)

// topArtistsPageSize is the page size for rank lookups; the API's maximum.
const topArtistsPageSize = 50

// TopArtistSource is the slice of the client that rank lookup needs.
type TopArtistSource interface {
	FetchTopArtists(ctx context.Context, rng data.Range, limit, offset int) ([]data.Artist, error)
}

// ArtistRank returns the artist's 1-based position among the user's
// short-term top artists. firstPage is the already-fetched first page of that
// snapshot; when the artist isn't on it, a second page is fetched on demand.
// Absence and fetch failure both yield nil, a rank no-one holds.
func ArtistRank(ctx context.Context, client TopArtistSource, artistID string, firstPage []data.Artist) *int {
	for i, artist := range firstPage {
		if artist.SpotifyID == artistID {
			rank := i + 1
			return &rank
		}
	}

	if client == nil {
		return nil
	}
	nextPage, err := client.FetchTopArtists(ctx, data.RangeShortTerm, topArtistsPageSize, topArtistsPageSize)
	if err != nil {
		log.Printf("second top-artists page failed: %v", err)
		return nil
	}
	for i, artist := range nextPage {
		if artist.SpotifyID == artistID {
			rank := topArtistsPageSize + i + 1
			return &rank
		}
	}

	return nil
}
