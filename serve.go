package main

import (
	"context"
	"fmt"
	"log"

	"github.com/avelis/earshot/config"
	"github.com/avelis/earshot/server"
	"github.com/avelis/earshot/spotify"
	"github.com/avelis/earshot/subcmd"
)

func serve(ctx context.Context, spo *spotify.Client, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("serve", "serve reports as json over http")
	var (
		addr = subcmd.String("addr", cfg.ListenAddr, "address to listen on")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	log.Printf("listening on %s", *addr)
	return server.Run(ctx, spo, cfg.Market, *addr)
}
