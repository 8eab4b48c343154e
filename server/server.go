// Package server exposes the report pipelines over a small JSON API, one
// fresh computation per request.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/avelis/earshot/report"
)

func Run(ctx context.Context, client report.Catalog, market, addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /artists/{id}", func(w http.ResponseWriter, req *http.Request) {
		rep, ok := build(w, req, client, market)
		if !ok {
			return
		}
		respond(w, rep)
	})
	mux.HandleFunc("GET /artists/{id}/similar", func(w http.ResponseWriter, req *http.Request) {
		rep, ok := build(w, req, client, market)
		if !ok {
			return
		}
		respond(w, rep.Similar)
	})
	mux.HandleFunc("GET /artists/{id}/insights", func(w http.ResponseWriter, req *http.Request) {
		rep, ok := build(w, req, client, market)
		if !ok {
			return
		}
		respond(w, rep.Listen)
	})

	srv := http.Server{Addr: addr, Handler: mux}

	errs := make(chan error)
	go func() { errs <- srv.ListenAndServe() }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		return <-errs
	}
}

func build(w http.ResponseWriter, req *http.Request, client report.Catalog, market string) (*report.Report, bool) {
	rep, err := report.Build(req.Context(), client, req.PathValue("id"), market)
	if err != nil {
		log.Printf("report for '%s' failed: %v", req.PathValue("id"), err)
		http.Error(w, "artist unavailable", http.StatusBadGateway)
		return nil, false
	}
	return rep, true
}

func respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("response encode error: %v", err)
	}
}
