package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/avelis/earshot/config"
	"github.com/avelis/earshot/setflag"
	"github.com/avelis/earshot/spotify"
	"github.com/avelis/earshot/subcmd"
)

func albums(ctx context.Context, spo *spotify.Client, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("albums", "list the given artist's releases")
	subcmd.SetArg("artist", "string", "artist id or search query (required)")
	groups := setflag.New("album", "single", "appears_on", "compilation")
	subcmd.Var(groups, "groups", "release types to include, comma-separated (default album,single)")
	var (
		limit = subcmd.Int("limit", 50, "number of releases to fetch")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	target, err := resolveArtist(ctx, spo, strings.Join(subcmd.Args(), " "))
	if err != nil {
		return err
	}

	include := groups.List()
	if len(include) == 0 {
		include = []string{"album", "single"}
	}

	albums, err := spo.FetchArtistAlbums(ctx, target.SpotifyID, include, cfg.Market, *limit)
	if err != nil {
		return fmt.Errorf("error fetching albums for '%s': %w", target.Name, err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "released\tname\ttype\ttracks")
	for _, album := range albums {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", album.ReleaseDate, album.Name, album.Type, album.TotalTracks)
	}
	return tw.Flush()
}
