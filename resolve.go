package main

import (
	"context"
	"fmt"

	"github.com/avelis/earshot/data"
	"github.com/avelis/earshot/spotify"
)

// resolveArtist turns a CLI argument into a full artist record. A bare
// 22-character base62 string is treated as an id; anything else is a search
// query whose best hit wins.
func resolveArtist(ctx context.Context, spo *spotify.Client, input string) (*data.Artist, error) {
	if input == "" {
		return nil, fmt.Errorf("an artist id or search query is required")
	}

	if looksLikeID(input) {
		return spo.FetchArtist(ctx, input)
	}

	artists, err := spo.SearchArtists(ctx, input, 1)
	if err != nil {
		return nil, fmt.Errorf("error in search for '%s': %w", input, err)
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("no artist found for query '%s'", input)
	}
	return &artists[0], nil
}

func looksLikeID(s string) bool {
	if len(s) != 22 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}
