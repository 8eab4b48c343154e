package data

// Artist is a snapshot of an artist fetched from the catalog API. Snapshots
// are rebuilt on every request and never mutated after construction.
type Artist struct {
	SpotifyID  string
	Name       string
	ImageURL   string
	Followers  int64
	Popularity int64
	Genres     []string `gorm:"-"`
}

// HasGenre reports whether the artist carries the given genre tag.
func (a *Artist) HasGenre(genre string) bool {
	for _, g := range a.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// PrimaryGenre returns the artist's longest genre tag, on the theory that
// longer tags ("australian shoegaze") are more specific than shorter ones
// ("rock"). Returns "" when the artist has no genres.
func (a *Artist) PrimaryGenre() string {
	var primary string
	for _, g := range a.Genres {
		if len(g) > len(primary) {
			primary = g
		}
	}
	return primary
}
