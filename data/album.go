package data

// Album is a snapshot of a release fetched from the catalog API. Type is one
// of "album", "single", or "compilation".
type Album struct {
	SpotifyID string
	Name      string
	Type      string
	ImageURL  string

	TotalTracks int64
	ReleaseDate string

	Artists []Artist `gorm:"-"`
}
