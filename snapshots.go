package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/avelis/earshot/config"
	"github.com/avelis/earshot/db"
	"github.com/avelis/earshot/subcmd"
	"github.com/dustin/go-humanize"
)

func snapshots(cfg *config.Config, args []string) error {
	subcmd := subcmd.New("snapshots", "list saved report snapshots")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.ListSnapshots()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("no snapshots yet; run 'earshot sync <artist>' to save one")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tartist\ttaken\ttrend\tsimilar")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n",
			s.ID, s.ArtistName, humanize.Time(s.TakenAt), s.ListenTrend, s.SimilarCount)
	}
	return tw.Flush()
}
