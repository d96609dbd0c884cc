//go:build !test

/* server.go
 * Contains the HTTP server Start function that listens for incoming
 * connections. Excluded from test coverage as it blocks and requires real
 * network binding.
 */

package web

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Start initializes and starts the HTTP server with the given configuration
func Start(cfg Config) error {
	s := &Server{
		league: cfg.League,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/standings", s.StandingsHandler)
	mux.HandleFunc("/api/bracket", s.BracketHandler)
	mux.HandleFunc("/api/snapshot", s.SnapshotHandler)
	mux.HandleFunc("/api/schedule", s.ScheduleHandler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	logrus.WithField("addr", cfg.Addr).Info("HTTP server listening")
	return srv.ListenAndServe()
}
