// earshot computes artist-similarity rankings and listening insights from a
// spotify account's listening history.
//
// it wants a user access token in its config (or EARSHOT_ACCESS_TOKEN) with
// the user-top-read, user-read-recently-played, and user-follow-read scopes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/avelis/earshot/config"
	"github.com/avelis/earshot/sigctx"
	"github.com/avelis/earshot/spotify"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: earshot $cmd
valid $cmd are 'similar', 'insights', 'albums', 'sync', 'snapshots', 'serve'
for help: earshot $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	// a missing token means a nil client; the pipelines degrade to empty
	// results rather than crashing
	var spo *spotify.Client
	if cfg.AccessToken != "" {
		spo = spotify.New(cfg.AccessToken)
	}

	switch cmd {
	case "similar":
		return similar(ctx, spo, cfg, args)

	case "insights":
		return insights(ctx, spo, cfg, args)

	case "albums":
		return albums(ctx, spo, cfg, args)

	case "sync":
		return sync(ctx, spo, cfg, args)

	case "snapshots":
		return snapshots(cfg, args)

	case "serve":
		return serve(ctx, spo, cfg, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
