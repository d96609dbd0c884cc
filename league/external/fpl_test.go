/* fpl_test.go
 * Contains unit tests for the FPL API client against a local test server
 */

package external

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"h2h-league-bot/league/shared"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger returns a quiet logger for client construction
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fplServer serves canned FPL responses for two entries in gameweek 5
func fplServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/entry/101/history/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current":[{"event":4,"points":48},{"event":5,"points":62}]}`)
	})
	mux.HandleFunc("/entry/102/history/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current":[{"event":4,"points":51}]}`)
	})
	mux.HandleFunc("/event/5/live/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"elements":[{"id":10,"stats":{"total_points":8}},{"id":20,"stats":{"total_points":5}},{"id":30,"stats":{"total_points":2}}]}`)
	})
	mux.HandleFunc("/entry/101/event/5/picks/", func(w http.ResponseWriter, r *http.Request) {
		// captained element 10, benched element 30
		fmt.Fprint(w, `{"picks":[{"element":10,"multiplier":2},{"element":20,"multiplier":1},{"element":30,"multiplier":0}]}`)
	})
	mux.HandleFunc("/entry/103/event/5/picks/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"picks":[]}`)
	})

	return httptest.NewServer(mux)
}

// TestGameweekScores_Final tests final points fetched from entry history
func TestGameweekScores_Final(t *testing.T) {
	server := fplServer(t)
	defer server.Close()
	client := NewHTTPClientWithBase(server.URL, testLogger())

	scores, err := client.GameweekScores(5, []int{101}, shared.ModeFinal)

	require.NoError(t, err)
	assert.Equal(t, 62, scores[101].Points)
	assert.Equal(t, shared.StatusFinal, scores[101].Status)
}

// TestGameweekScores_FinalMissingGameweek tests that an entry with no
// history line for the gameweek is ScoresUnavailable, not zero
func TestGameweekScores_FinalMissingGameweek(t *testing.T) {
	server := fplServer(t)
	defer server.Close()
	client := NewHTTPClientWithBase(server.URL, testLogger())

	_, err := client.GameweekScores(5, []int{102}, shared.ModeFinal)

	assert.ErrorIs(t, err, shared.ErrScoresUnavailable)
}

// TestGameweekScores_Live tests the live reconstruction: each active
// pick's live points times its multiplier, bench ignored
func TestGameweekScores_Live(t *testing.T) {
	server := fplServer(t)
	defer server.Close()
	client := NewHTTPClientWithBase(server.URL, testLogger())

	scores, err := client.GameweekScores(5, []int{101}, shared.ModeLive)

	require.NoError(t, err)
	// 8*2 (captain) + 5*1, element 30 benched
	assert.Equal(t, 21, scores[101].Points)
	assert.Equal(t, shared.StatusLive, scores[101].Status)
}

// TestGameweekScores_LiveNoPicks tests that an entry with an empty picks
// list is ScoresUnavailable
func TestGameweekScores_LiveNoPicks(t *testing.T) {
	server := fplServer(t)
	defer server.Close()
	client := NewHTTPClientWithBase(server.URL, testLogger())

	_, err := client.GameweekScores(5, []int{103}, shared.ModeLive)

	assert.ErrorIs(t, err, shared.ErrScoresUnavailable)
}

// TestGameweekScores_ServerError tests that a non-200 response maps to
// ScoresUnavailable
func TestGameweekScores_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()
	client := NewHTTPClientWithBase(server.URL, testLogger())

	_, err := client.GameweekScores(5, []int{101}, shared.ModeFinal)

	assert.ErrorIs(t, err, shared.ErrScoresUnavailable)
}

// TestGameweekScores_Unreachable tests that a connection failure maps to
// ScoresUnavailable
func TestGameweekScores_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewHTTPClientWithBase(server.URL, testLogger())

	_, err := client.GameweekScores(5, []int{101}, shared.ModeFinal)

	assert.ErrorIs(t, err, shared.ErrScoresUnavailable)
}
