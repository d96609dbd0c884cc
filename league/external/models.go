/* models.go
 * Response shapes for the FPL endpoints this package consumes. Only the
 * fields we read are declared.
 */

package external

// entryHistoryResponse is the shape of /entry/{id}/history/
type entryHistoryResponse struct {
	Current []entryGameweek `json:"current"`
}

// entryGameweek is one gameweek line in an entry's history
type entryGameweek struct {
	Event  int `json:"event"`
	Points int `json:"points"`
}

// picksResponse is the shape of /entry/{id}/event/{gw}/picks/
type picksResponse struct {
	Picks []pick `json:"picks"`
}

// pick is one selected player; multiplier 0 means benched, 2/3 means
// captained
type pick struct {
	Element    int `json:"element"`
	Multiplier int `json:"multiplier"`
}

// liveResponse is the shape of /event/{gw}/live/
type liveResponse struct {
	Elements []liveElement `json:"elements"`
}

// liveElement is one player's in-progress scoring
type liveElement struct {
	ID    int       `json:"id"`
	Stats liveStats `json:"stats"`
}

type liveStats struct {
	TotalPoints int `json:"total_points"`
}
