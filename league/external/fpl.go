/* fpl.go
 * The score provider: fetches per-entry gameweek points from the FPL API.
 * Final points come from the entry history endpoint; live points are
 * reconstructed from the entry's picks and the event-live player stats.
 * Requests are rate limited because the FPL API throttles aggressively.
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"h2h-league-bot/league/shared"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the FPL API root
	BaseURL = "https://fantasy.premierleague.com/api"
	// DefaultTimeout bounds each request
	DefaultTimeout = 20 * time.Second
	// requestsPerSecond keeps us under the API's throttle
	requestsPerSecond = 2
)

// Client is the score provider contract the league core consumes. A
// gameweek with no data yet is reported as shared.ErrScoresUnavailable,
// never as zero points.
type Client interface {
	GameweekScores(gw int, entryIDs []int, mode shared.Mode) (map[int]shared.GameweekScore, error)
}

// HTTPClient implements Client against the real FPL API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewHTTPClient creates a rate-limited FPL API client
func NewHTTPClient(logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}
}

// NewHTTPClientWithBase creates a client against a different base URL,
// used by tests to point at a local server
func NewHTTPClientWithBase(baseURL string, logger *logrus.Logger) *HTTPClient {
	c := NewHTTPClient(logger)
	c.baseURL = baseURL
	return c
}

// GameweekScores fetches every listed entry's points for one gameweek.
// Preconditions: receives the gameweek, the entry ids to fetch and the
// mode (live or final)
// Postconditions: returns a complete entry id -> score mapping, or
// shared.ErrScoresUnavailable if any entry has no data for that gameweek
func (c *HTTPClient) GameweekScores(gw int, entryIDs []int, mode shared.Mode) (map[int]shared.GameweekScore, error) {
	scores := make(map[int]shared.GameweekScore, len(entryIDs))

	var live map[int]int
	if mode == shared.ModeLive {
		var err error
		live, err = c.fetchEventLive(gw)
		if err != nil {
			return nil, err
		}
	}

	for _, entryID := range entryIDs {
		var points int
		var err error
		if mode == shared.ModeFinal {
			points, err = c.fetchFinalPoints(entryID, gw)
		} else {
			points, err = c.fetchLivePoints(entryID, gw, live)
		}
		if err != nil {
			return nil, err
		}

		status := shared.StatusFinal
		if mode == shared.ModeLive {
			status = shared.StatusLive
		}
		scores[entryID] = shared.GameweekScore{EntryID: entryID, Points: points, Status: status}
	}
	return scores, nil
}

// fetchFinalPoints reads an entry's confirmed points for one gameweek from
// its season history
func (c *HTTPClient) fetchFinalPoints(entryID int, gw int) (int, error) {
	var history entryHistoryResponse
	if err := c.makeRequest(fmt.Sprintf("/entry/%d/history/", entryID), &history); err != nil {
		return 0, err
	}

	for _, item := range history.Current {
		if item.Event == gw {
			return item.Points, nil
		}
	}
	return 0, fmt.Errorf("%w: entry %d has no history for gw %d", shared.ErrScoresUnavailable, entryID, gw)
}

// fetchLivePoints reconstructs an entry's in-progress total: the sum of
// each active pick's live points times its multiplier
func (c *HTTPClient) fetchLivePoints(entryID int, gw int, live map[int]int) (int, error) {
	var picks picksResponse
	if err := c.makeRequest(fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw), &picks); err != nil {
		return 0, err
	}
	if len(picks.Picks) == 0 {
		return 0, fmt.Errorf("%w: entry %d has no picks for gw %d", shared.ErrScoresUnavailable, entryID, gw)
	}

	total := 0
	for _, p := range picks.Picks {
		if p.Multiplier <= 0 {
			continue
		}
		total += live[p.Element] * p.Multiplier
	}
	return total, nil
}

// fetchEventLive reads the per-player live totals for one gameweek
func (c *HTTPClient) fetchEventLive(gw int) (map[int]int, error) {
	var resp liveResponse
	if err := c.makeRequest(fmt.Sprintf("/event/%d/live/", gw), &resp); err != nil {
		return nil, err
	}

	points := make(map[int]int, len(resp.Elements))
	for _, el := range resp.Elements {
		points[el.ID] = el.Stats.TotalPoints
	}
	return points, nil
}

// makeRequest performs a rate-limited GET against the FPL API and decodes
// the JSON body into result
func (c *HTTPClient) makeRequest(endpoint string, result interface{}) error {
	if err := c.limiter.Wait(context.TODO()); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	url := c.baseURL + endpoint
	c.logger.WithField("url", url).Debug("fetching from FPL API")

	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", "h2h-league-bot/1.0")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrScoresUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", shared.ErrScoresUnavailable, response.StatusCode, endpoint)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
