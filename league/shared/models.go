/* models.go
 * This file contains the structs and helper functions that are shared between the league sub packages
 */

package shared

import "fmt"

// Team is one of the six league entries. EntryID is the FPL entry id and
// never changes once the season config is loaded.
type Team struct {
	EntryID int    `json:"entry_id" bson:"entry_id"`
	Name    string `json:"name" bson:"name"`
}

// FixtureStatus tracks how far along a fixture is
type FixtureStatus string

const (
	StatusScheduled FixtureStatus = "scheduled"
	StatusLive      FixtureStatus = "live"
	StatusFinal     FixtureStatus = "final"
)

// Mode selects whether computations use live (provisional) or final points
type Mode string

const (
	ModeLive  Mode = "live"
	ModeFinal Mode = "final"
)

// SlotKind discriminates the SlotRef variants
type SlotKind int

const (
	SlotTeam SlotKind = iota
	SlotSeed
	SlotNodeOutput
)

// NodeOutcome selects which side of a resolved bracket node a SlotRef takes
type NodeOutcome int

const (
	TakeWinner NodeOutcome = iota
	TakeLoser
)

// SlotRef is a tagged variant naming one side of a fixture: a concrete
// team, a regular-season seed, or the winner/loser of another bracket node
type SlotRef struct {
	Kind    SlotKind    `json:"kind" bson:"kind"`
	EntryID int         `json:"entry_id,omitempty" bson:"entry_id,omitempty"`
	Seed    int         `json:"seed,omitempty" bson:"seed,omitempty"`
	Node    string      `json:"node,omitempty" bson:"node,omitempty"`
	Take    NodeOutcome `json:"take,omitempty" bson:"take,omitempty"`
}

// TeamRef builds a SlotRef for a concrete entry id
func TeamRef(entryID int) SlotRef {
	return SlotRef{Kind: SlotTeam, EntryID: entryID}
}

// SeedRef builds a SlotRef for a regular-season seed (1..6)
func SeedRef(seed int) SlotRef {
	return SlotRef{Kind: SlotSeed, Seed: seed}
}

// WinnerOf builds a SlotRef taking the winner of another bracket node
func WinnerOf(node string) SlotRef {
	return SlotRef{Kind: SlotNodeOutput, Node: node, Take: TakeWinner}
}

// LoserOf builds a SlotRef taking the loser of another bracket node
func LoserOf(node string) SlotRef {
	return SlotRef{Kind: SlotNodeOutput, Node: node, Take: TakeLoser}
}

// String returns the token form of a SlotRef, used in rendered output
func (s SlotRef) String() string {
	switch s.Kind {
	case SlotTeam:
		return fmt.Sprintf("TEAM_%d", s.EntryID)
	case SlotSeed:
		return fmt.Sprintf("SEED%d", s.Seed)
	case SlotNodeOutput:
		if s.Take == TakeWinner {
			return fmt.Sprintf("WINNER_%s", s.Node)
		}
		return fmt.Sprintf("LOSER_%s", s.Node)
	}
	return "UNKNOWN"
}

// Fixture is a single head-to-head match. Regular-season fixtures always
// carry SlotTeam refs; playoff fixtures carry seed or node refs until the
// bracket resolves them, plus the node id and leg number they belong to.
type Fixture struct {
	Gameweek   int           `json:"gw" bson:"gw"`
	Home       SlotRef       `json:"home" bson:"home"`
	Away       SlotRef       `json:"away" bson:"away"`
	HomePoints int           `json:"home_points" bson:"home_points"`
	AwayPoints int           `json:"away_points" bson:"away_points"`
	Status     FixtureStatus `json:"status" bson:"status"`
	Node       string        `json:"node,omitempty" bson:"node,omitempty"`
	Leg        int           `json:"leg,omitempty" bson:"leg,omitempty"`
}

// Involves reports whether both given entry ids play in this fixture
func (f Fixture) Involves(a, b int) bool {
	if f.Home.Kind != SlotTeam || f.Away.Kind != SlotTeam {
		return false
	}
	return (f.Home.EntryID == a && f.Away.EntryID == b) ||
		(f.Home.EntryID == b && f.Away.EntryID == a)
}

// BracketNode is one two-legged tie in the playoff template. Home and
// Away are slot refs that the resolver walks down to concrete teams;
// LegGameweeks names the two gameweeks the legs are played in.
type BracketNode struct {
	ID           string  `json:"id" bson:"id"`
	Home         SlotRef `json:"home" bson:"home"`
	Away         SlotRef `json:"away" bson:"away"`
	LegGameweeks [2]int  `json:"leg_gameweeks" bson:"leg_gameweeks"`
}

// GameweekScore is one entry's point total for a single gameweek as
// reported by the score provider
type GameweekScore struct {
	EntryID int           `json:"entry_id" bson:"entry_id"`
	Points  int           `json:"points" bson:"points"`
	Status  FixtureStatus `json:"status" bson:"status"`
}
