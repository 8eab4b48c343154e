// Package report assembles everything the artist view needs in one shot:
// catalog metadata, the user's listening insights, and the similar-artists
// ranking. Every page of data is fetched fresh per request; nothing is cached
// or shared between requests.
package report

import (
	"context"
	"log"
	"sync"

	"github.com/avelis/earshot/data"
	"github.com/avelis/earshot/insights"
	"github.com/avelis/earshot/similarity"
)

const pageSize = 50

// Catalog is the full capability set a report build consumes. All calls are
// read-only.
type Catalog interface {
	similarity.Catalog
	insights.TopArtistSource

	FetchArtist(ctx context.Context, id string) (*data.Artist, error)
	FetchArtistTopTracks(ctx context.Context, id, market string) ([]data.Track, error)
	FetchArtistAlbums(ctx context.Context, id string, groups []string, market string, limit int) ([]data.Album, error)
	FetchFollowStatus(ctx context.Context, ids []string) ([]bool, error)
	FetchRecentlyPlayed(ctx context.Context, limit int) ([]data.PlayRecord, error)
	FetchTopTracks(ctx context.Context, rng data.Range, limit int) ([]data.Track, error)
}

// A Report is one artist's full picture: their catalog presence, the user's
// relationship with them, and who else the user might like.
type Report struct {
	Artist    data.Artist
	TopTracks []data.Track
	Following bool

	Albums       []data.Album
	Singles      []data.Album
	Compilations []data.Album

	Listen  data.ListenData
	Similar []data.Candidate
}

// Build fans out all the fetches an artist view needs, joins them, and runs
// both derivation pipelines. Only the artist-detail fetch is fatal; every
// other leg degrades to its zero value with a log line, so the worst case is
// a sparser report, not a failed one.
func Build(ctx context.Context, client Catalog, artistID, market string) (*Report, error) {
	var (
		wg sync.WaitGroup

		artist    *data.Artist
		artistErr error

		topTracks  []data.Track
		albums     []data.Album
		following  []bool
		recent     []data.PlayRecord
		topArtists []data.Artist

		byRange = map[data.Range][]data.Track{}
		mu      sync.Mutex
	)

	leg := func(name string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				log.Printf("%s fetch failed: %v", name, err)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		artist, artistErr = client.FetchArtist(ctx, artistID)
	}()

	leg("top tracks", func() (err error) {
		topTracks, err = client.FetchArtistTopTracks(ctx, artistID, market)
		return err
	})
	leg("albums", func() (err error) {
		albums, err = client.FetchArtistAlbums(ctx, artistID, []string{"album", "single", "appears_on"}, market, pageSize)
		return err
	})
	leg("follow status", func() (err error) {
		following, err = client.FetchFollowStatus(ctx, []string{artistID})
		return err
	})
	leg("recently played", func() (err error) {
		recent, err = client.FetchRecentlyPlayed(ctx, pageSize)
		return err
	})
	leg("top artists", func() (err error) {
		topArtists, err = client.FetchTopArtists(ctx, data.RangeShortTerm, pageSize, 0)
		return err
	})
	for _, rng := range data.Ranges {
		rng := rng
		leg("top tracks "+string(rng), func() error {
			tracks, err := client.FetchTopTracks(ctx, rng, pageSize)
			if err != nil {
				return err
			}
			mu.Lock()
			byRange[rng] = tracks
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()

	if artistErr != nil {
		return nil, artistErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rank := insights.ArtistRank(ctx, client, artistID, topArtists)

	listen := insights.CalculateListenData(artistID,
		byRange[data.RangeShortTerm], byRange[data.RangeMediumTerm], byRange[data.RangeLongTerm],
		recent, nil, rank)

	merged := make([]data.Track, 0,
		len(byRange[data.RangeShortTerm])+len(byRange[data.RangeMediumTerm])+len(byRange[data.RangeLongTerm]))
	for _, rng := range data.Ranges {
		merged = append(merged, byRange[rng]...)
	}

	similar, err := similarity.FindRelatedArtists(ctx, client, artist, topArtists, merged, recent)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Artist:    *artist,
		TopTracks: topTracks,
		Following: len(following) > 0 && following[0],
		Listen:    listen,
		Similar:   similar,
	}
	for _, album := range albums {
		switch album.Type {
		case "album":
			rep.Albums = append(rep.Albums, album)
		case "single":
			rep.Singles = append(rep.Singles, album)
		case "compilation":
			rep.Compilations = append(rep.Compilations, album)
		}
	}

	return rep, nil
}
