package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelis/earshot/config"
	"github.com/avelis/earshot/db"
	"github.com/avelis/earshot/report"
	"github.com/avelis/earshot/spotify"
	"github.com/avelis/earshot/subcmd"
)

func sync(ctx context.Context, spo *spotify.Client, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("sync", "compute a report for the given artist and save it as a snapshot")
	subcmd.SetArg("artist", "string", "artist id or search query (required)")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	target, err := resolveArtist(ctx, spo, strings.Join(subcmd.Args(), " "))
	if err != nil {
		return err
	}

	rep, err := report.Build(ctx, spo, target.SpotifyID, cfg.Market)
	if err != nil {
		return fmt.Errorf("error building report for '%s': %w", target.Name, err)
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.InsertSnapshot(&rep.Artist, rep.Listen, rep.Similar)
	if err != nil {
		return err
	}

	fmt.Printf("saved snapshot %d for %s (%d similar artists)\n", id, rep.Artist.Name, len(rep.Similar))
	return nil
}
