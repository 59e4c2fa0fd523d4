// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
	"github.com/kraklabs/ctx-agent/internal/watch"
)

// runWatch runs the Watcher until cancelled. Unlike every other command, watch never
// opportunistically spawns a background copy of itself.
func runWatch(args []string) {
	fs, g := newFlagSet("watch")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics at this address (e.g. :9090)")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: ctx-agent watch [--json] [--project PATH] [--metrics-addr ADDR]\n")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	s, root := openExisting(g)
	defer s.Close()

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("watch.metrics.start", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				slog.Warn("watch.metrics.error", "err", err)
			}
		}()
	}

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)...\n", root)
	if err := watch.Run(s, root, stop); err != nil {
		cerrors.FatalError(err, g.JSON)
	}
}
