package data

// Track is a snapshot of a track fetched from the catalog API.
//
// Artists is ordered, primary artist first.
type Track struct {
	SpotifyID  string
	Name       string
	DurationMS int64
	Popularity int64

	AlbumSpotifyID string
	AlbumName      string
	AlbumType      string
	AlbumImageURL  string

	Artists []Artist `gorm:"-"`
}

// HasArtist reports whether the given artist is credited on the track.
func (t *Track) HasArtist(artistSpotifyID string) bool {
	for _, artist := range t.Artists {
		if artist.SpotifyID == artistSpotifyID {
			return true
		}
	}
	return false
}
