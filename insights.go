package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/avelis/earshot/config"
	"github.com/avelis/earshot/data"
	"github.com/avelis/earshot/report"
	"github.com/avelis/earshot/spotify"
	"github.com/avelis/earshot/subcmd"
	"github.com/dustin/go-humanize"
)

func insights(ctx context.Context, spo *spotify.Client, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("insights", "summarize your listening relationship with the given artist")
	subcmd.SetArg("artist", "string", "artist id or search query (required)")
	var (
		history = subcmd.Bool("history", true, "show the merged track history")
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
	listen := rep.Listen

	fmt.Printf("%s\n", rep.Artist.Name)
	fmt.Printf("  followers:\t%s\n", humanize.Comma(rep.Artist.Followers))
	if rep.Following {
		fmt.Printf("  you follow them\n")
	}
	if listen.RankInTopArtists != nil {
		fmt.Printf("  your #%d artist this month\n", *listen.RankInTopArtists)
	}
	fmt.Printf("  trend:\t%s\n", listen.ListenTrend)
	if listen.TopTimeOfDay != "" {
		fmt.Printf("  you mostly listen in the %s\n", listen.TopTimeOfDay)
	}
	fmt.Printf("  estimated listening time:\t%s\n", listenTime(listen.TotalListensMS))
	if name := trackName(listen.FavoriteTrackID, listen.TrackHistory); name != "" {
		fmt.Printf("  favorite track:\t%s\n", name)
	}

	if !*history || len(listen.TrackHistory) == 0 {
		return nil
	}

	fmt.Printf("\nyour history:\n\n")
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "track\talbum\tsource\tplayed")
	for _, item := range listen.TrackHistory {
		played := ""
		if item.Source == data.SourceRecent {
			played = humanize.Time(item.PlayedAt)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Track.Name, item.Track.AlbumName, item.Source, played)
	}
	return tw.Flush()
}

// listenTime renders a millisecond total as a rough hours/minutes figure.
func listenTime(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

// trackName finds a track's display name in the history list.
func trackName(trackID string, history []data.TrackHistoryItem) string {
	for _, item := range history {
		if item.Track.SpotifyID == trackID {
			return item.Track.Name
		}
	}
	return ""
}
