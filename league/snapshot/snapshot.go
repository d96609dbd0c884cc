/* snapshot.go
 * Assembles the publishable view of the league for one gameweek: the full
 * standings table plus the bracket node states. Everything is derived from
 * the inputs and ordered deterministically, so assembling twice from the
 * same data is byte-for-byte identical. Persistence and rendering live in
 * the store and web packages.
 */

package snapshot

import (
	"encoding/json"

	"h2h-league-bot/league/bracket"
	"h2h-league-bot/league/shared"
	"h2h-league-bot/league/standings"
)

// Snapshot is the published state of the league after one gameweek.
// No timestamps: identical input must produce identical bytes.
type Snapshot struct {
	Gameweek  int                 `json:"gw" bson:"gw"`
	Mode      shared.Mode         `json:"mode" bson:"mode"`
	Standings []standings.Row     `json:"standings" bson:"standings"`
	Bracket   []bracket.NodeState `json:"bracket,omitempty" bson:"bracket,omitempty"`
}

// Assemble builds a snapshot from engine outputs. The bracket state may be
// nil before the regular season has produced seeds.
func Assemble(gw int, mode shared.Mode, rows []standings.Row, state *bracket.State) Snapshot {
	snap := Snapshot{
		Gameweek:  gw,
		Mode:      mode,
		Standings: rows,
	}
	if state != nil {
		snap.Bracket = state.Nodes
	}
	return snap
}

// JSON renders the snapshot in the indented form the web layer serves and
// the store persists
func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
