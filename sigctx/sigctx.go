// Package sigctx provides a root context that is canceled by an interrupt
// signal. A second interrupt kills the process immediately.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func New() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		cancel()
		<-sigs
		os.Exit(1)
	}()

	return ctx
}
