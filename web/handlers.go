/* handlers.go
 * Contains the JSON endpoint handlers. Each one is a thin caller of the
 * league package; nothing here computes or stores anything.
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"h2h-league-bot/league/shared"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// StandingsHandler serves the current regular-season table.
// GET /api/standings?mode=live|final (defaults to live)
func (s *Server) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	mode := shared.ModeLive
	if r.URL.Query().Get("mode") == string(shared.ModeFinal) {
		mode = shared.ModeFinal
	}

	rows, err := s.league.Standings(mode)
	if err != nil {
		if errors.Is(err, shared.ErrDataIncomplete) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, rows)
}

// BracketHandler serves the playoff bracket state.
// GET /api/bracket
func (s *Server) BracketHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.league.Bracket()
	if err != nil {
		if errors.Is(err, shared.ErrIncompleteSeason) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, state)
}

// SnapshotHandler serves a published snapshot.
// GET /api/snapshot?gw=N (defaults to the latest)
func (s *Server) SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	gwParam := r.URL.Query().Get("gw")

	if gwParam == "" {
		snap, err := s.league.Store.FetchLatestSnapshot()
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				writeError(w, http.StatusNotFound, errors.New("no snapshots published yet"))
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, snap)
		return
	}

	gw, err := strconv.Atoi(gwParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("gw must be a number"))
		return
	}

	snap, err := s.league.Store.FetchSnapshot(gw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, errors.New("no snapshot for that gameweek"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, snap)
}

// ScheduleHandler serves the season definition: teams, regular-season
// fixtures and the bracket template.
// GET /api/schedule
func (s *Server) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"teams":    s.league.Season.Teams,
		"fixtures": s.league.Season.Fixtures,
		"bracket":  s.league.Season.Bracket,
	})
}

// writeJSON writes an indented JSON response
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// writeError writes a JSON error body with the given status
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
