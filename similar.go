package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/avelis/earshot/config"
	"github.com/avelis/earshot/report"
	"github.com/avelis/earshot/spotify"
	"github.com/avelis/earshot/subcmd"
	"github.com/dustin/go-humanize"
)

func similar(ctx context.Context, spo *spotify.Client, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("similar", "rank artists similar to the given artist using your listening history")
	subcmd.SetArg("artist", "string", "artist id or search query (required)")
	var (
		count   = subcmd.Int("count", 20, "number of artists to show")
		reasons = subcmd.Bool("reasons", true, "show why each artist matched")
	)
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

	similar := rep.Similar
	if len(similar) > *count {
		similar = similar[:*count]
	}
	if len(similar) == 0 {
		fmt.Printf("no similar artists found for %s\n", target.Name)
		return nil
	}

	fmt.Printf("artists similar to %s:\n\n", target.Name)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"#", "artist", "score", "popularity", "followers"}
	if *reasons {
		header = append(header, "why")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i, c := range similar {
		row := []string{
			fmt.Sprintf("%d", i+1),
			c.Artist.Name,
			fmt.Sprintf("%.1f", c.Score),
			fmt.Sprintf("%d", c.Artist.Popularity),
			humanize.Comma(c.Artist.Followers),
		}
		if *reasons {
			row = append(row, strings.Join(c.MatchReasons, ", "))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
