// Package spotify is a thin client for the parts of the Spotify Web API that
// earshot reads: artist and track metadata, the current user's top items,
// their recently-played feed, and artist search. All calls are read-only.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avelis/earshot/data"
	"github.com/avelis/earshot/limiter"
	"github.com/avelis/earshot/request"
)

const nextReqFilename = "next-req"

// BatchLimit is the most artist ids the API accepts in one lookup.
const BatchLimit = 50

// ErrNoClient is returned by every method of a nil *Client. Callers that can
// degrade gracefully treat it like any other failed fetch.
var ErrNoClient = errors.New("no catalog client")

// New creates a client around a ready-to-use user access token. The client
// does not refresh the token; when it expires, calls start failing with 401s.
func New(accessToken string) *Client {
	lim := limiter.New(nextReqFilename, time.Second/10)
	if err := lim.Load(); err != nil {
		// a corrupt limiter file shouldn't stop us
		lim = limiter.New(nextReqFilename, time.Second/10)
	}
	return &Client{
		accessToken: accessToken,
		lim:         lim,
	}
}

type Client struct {
	mu sync.Mutex

	accessToken string
	lim         *limiter.Limiter
}

// FetchArtist fetches one artist's full record.
func (spo *Client) FetchArtist(ctx context.Context, id string) (*data.Artist, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/artists/"+id, nil)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var result artistResult
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("artist decode error: %w", err)
	}

	artist := result.artist()
	return &artist, nil
}

// FetchArtists fetches full records for up to BatchLimit artist ids in one
// request. Callers with more ids batch the calls themselves.
func (spo *Client) FetchArtists(ctx context.Context, ids []string) ([]data.Artist, error) {
	if spo == nil {
		return nil, ErrNoClient
	}
	if len(ids) > BatchLimit {
		return nil, fmt.Errorf("requested %d artists; the api limit is %d per call", len(ids), BatchLimit)
	}

	query := url.Values{}
	query.Add("ids", strings.Join(ids, ","))

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/artists", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results struct {
		Artists []artistResult
	}
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("artists decode error: %w", err)
	}

	artists := make([]data.Artist, 0, len(results.Artists))
	for _, item := range results.Artists {
		if item.ID == "" {
			continue
		}
		artists = append(artists, item.artist())
	}
	return artists, nil
}

// FetchArtistTopTracks fetches an artist's top tracks for the given market.
func (spo *Client) FetchArtistTopTracks(ctx context.Context, id, market string) ([]data.Track, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	query := url.Values{}
	query.Add("market", market)

	resp, err := spo.get(ctx, fmt.Sprintf("https://api.spotify.com/v1/artists/%s/top-tracks", id), query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results struct {
		Tracks []trackResult
	}
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("top tracks decode error: %w", err)
	}

	tracks := make([]data.Track, len(results.Tracks))
	for i, item := range results.Tracks {
		tracks[i] = item.track()
	}
	return tracks, nil
}

// FetchArtistAlbums fetches one page of an artist's releases, filtered to the
// given include groups ("album", "single", "appears_on", "compilation").
func (spo *Client) FetchArtistAlbums(ctx context.Context, id string, groups []string, market string, limit int) ([]data.Album, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	query := url.Values{}
	query.Add("include_groups", strings.Join(groups, ","))
	query.Add("market", market)
	query.Add("limit", fmt.Sprintf("%d", limit))

	resp, err := spo.get(ctx, fmt.Sprintf("https://api.spotify.com/v1/artists/%s/albums", id), query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results struct {
		Items []struct {
			ID        string
			Name      string
			AlbumType string `json:"album_type"`
			Images    []struct {
				URL string
			}
			TotalTracks int64  `json:"total_tracks"`
			ReleaseDate string `json:"release_date"`
			Artists     []struct {
				ID   string
				Name string
			}
		}
	}
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("artist albums decode error: %w", err)
	}

	albums := make([]data.Album, len(results.Items))
	for i, item := range results.Items {
		var imageURL string
		if len(item.Images) > 0 {
			imageURL = item.Images[0].URL
		}
		artists := make([]data.Artist, len(item.Artists))
		for j, artist := range item.Artists {
			artists[j] = data.Artist{SpotifyID: artist.ID, Name: artist.Name}
		}
		albums[i] = data.Album{
			SpotifyID:   item.ID,
			Name:        item.Name,
			Type:        item.AlbumType,
			ImageURL:    imageURL,
			TotalTracks: item.TotalTracks,
			ReleaseDate: item.ReleaseDate,
			Artists:     artists,
		}
	}
	return albums, nil
}

// SearchArtists searches the catalog for artists matching the query.
func (spo *Client) SearchArtists(ctx context.Context, q string, limit int) ([]data.Artist, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	query := url.Values{}
	query.Add("q", q)
	query.Add("type", "artist")
	query.Add("limit", fmt.Sprintf("%d", limit))

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/search", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results struct {
		Artists struct {
			Items []artistResult
		}
	}
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("search decode error: %w", err)
	}

	artists := make([]data.Artist, len(results.Artists.Items))
	for i, item := range results.Artists.Items {
		artists[i] = item.artist()
	}
	return artists, nil
}

// FetchTopArtists fetches one page of the current user's top artists for the
// given range.
func (spo *Client) FetchTopArtists(ctx context.Context, rng data.Range, limit, offset int) ([]data.Artist, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/me/top/artists", topItemsQuery(rng, limit, offset))
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results struct {
		Items []artistResult
	}
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("top artists decode error: %w", err)
	}

	artists := make([]data.Artist, len(results.Items))
	for i, item := range results.Items {
		artists[i] = item.artist()
	}
	return artists, nil
}

// FetchTopTracks fetches one page of the current user's top tracks for the
// given range.
func (spo *Client) FetchTopTracks(ctx context.Context, rng data.Range, limit int) ([]data.Track, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/me/top/tracks", topItemsQuery(rng, limit, 0))
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results struct {
		Items []trackResult
	}
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("top tracks decode error: %w", err)
	}

	tracks := make([]data.Track, len(results.Items))
	for i, item := range results.Items {
		tracks[i] = item.track()
	}
	return tracks, nil
}

// FetchRecentlyPlayed fetches the user's most recent plays, at most 50. The
// feed lags real playback and isn't guaranteed complete.
func (spo *Client) FetchRecentlyPlayed(ctx context.Context, limit int) ([]data.PlayRecord, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	query := url.Values{}
	query.Add("limit", fmt.Sprintf("%d", limit))

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/me/player/recently-played", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results struct {
		Items []struct {
			Track    trackResult
			PlayedAt string `json:"played_at"`
		}
	}
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("recently played decode error: %w", err)
	}

	plays := make([]data.PlayRecord, 0, len(results.Items))
	for _, item := range results.Items {
		playedAt, err := time.Parse(time.RFC3339, item.PlayedAt)
		if err != nil {
			continue
		}
		plays = append(plays, data.PlayRecord{
			Track:    item.Track.track(),
			PlayedAt: playedAt,
		})
	}
	return plays, nil
}

// FetchFollowStatus reports, id by id, whether the current user follows each
// of the given artists.
func (spo *Client) FetchFollowStatus(ctx context.Context, ids []string) ([]bool, error) {
	if spo == nil {
		return nil, ErrNoClient
	}

	query := url.Values{}
	query.Add("type", "artist")
	query.Add("ids", strings.Join(ids, ","))

	resp, err := spo.get(ctx, "https://api.spotify.com/v1/me/following/contains", query)
	if err != nil {
		return nil, err
	}

	defer resp.Close()
	var results []bool
	dec := json.NewDecoder(resp)
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("follow status decode error: %w", err)
	}

	return results, nil
}

func topItemsQuery(rng data.Range, limit, offset int) url.Values {
	query := url.Values{}
	query.Add("time_range", string(rng))
	query.Add("limit", fmt.Sprintf("%d", limit))
	if offset > 0 {
		query.Add("offset", fmt.Sprintf("%d", offset))
	}
	return query
}

type artistResult struct {
	ID        string
	Name      string
	Genres    []string
	Followers struct {
		Total int64
	}
	Images []struct {
		Height int64
		Width  int64
		URL    string
	}
	Popularity int64
}

func (item artistResult) artist() data.Artist {
	var imageURL string
	var maxSize int64
	for _, image := range item.Images {
		if image.Width > maxSize {
			imageURL = image.URL
			maxSize = image.Width
		}
	}
	return data.Artist{
		SpotifyID:  item.ID,
		Name:       item.Name,
		ImageURL:   imageURL,
		Followers:  item.Followers.Total,
		Popularity: item.Popularity,
		Genres:     item.Genres,
	}
}

type trackResult struct {
	ID         string
	Name       string
	DurationMS int64 `json:"duration_ms"`
	Popularity int64
	Album      struct {
		ID        string
		Name      string
		AlbumType string `json:"album_type"`
		Images    []struct {
			URL string
		}
	}
	Artists []struct {
		ID   string
		Name string
	}
}

func (item trackResult) track() data.Track {
	var albumImageURL string
	if len(item.Album.Images) > 0 {
		albumImageURL = item.Album.Images[0].URL
	}
	artists := make([]data.Artist, len(item.Artists))
	for i, artist := range item.Artists {
		artists[i] = data.Artist{SpotifyID: artist.ID, Name: artist.Name}
	}
	return data.Track{
		SpotifyID:      item.ID,
		Name:           item.Name,
		DurationMS:     item.DurationMS,
		Popularity:     item.Popularity,
		AlbumSpotifyID: item.Album.ID,
		AlbumName:      item.Album.Name,
		AlbumType:      item.Album.AlbumType,
		AlbumImageURL:  albumImageURL,
		Artists:        artists,
	}
}

func (spo *Client) get(ctx context.Context, baseURL string, query url.Values) (io.ReadCloser, error) {
	spo.mu.Lock()
	defer spo.mu.Unlock()

retry:
	if err := spo.lim.Wait(ctx); err != nil {
		return nil, err
	}

	url, _ := url.Parse(baseURL)
	url.RawQuery = query.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+spo.accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	if resp.StatusCode == 429 {
		resp.Body.Close()
		if err := spo.lim.SetNextAt(resp.Header.Get("Retry-After")); err != nil {
			return nil, err
		}
		goto retry
	}
	if err := request.Error(resp); err != nil {
		return nil, fmt.Errorf("fetch error: %w", err)
	}

	spo.lim.Delay()

	return resp.Body, nil
}
