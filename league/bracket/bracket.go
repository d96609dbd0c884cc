/* bracket.go
 * The playoff bracket resolver. A pure function from (template, seeds, leg
 * results) to bracket state: each call walks the template in order,
 * resolves slot refs down to concrete teams and decides winners by
 * two-leg aggregate. No state survives between calls, so feeding it
 * progressively more results can never contradict an earlier outcome.
 */

package bracket

import (
	"fmt"

	"h2h-league-bot/league/schedule"
	"h2h-league-bot/league/shared"
)

// NodeStatus is the lifecycle of one bracket node
type NodeStatus string

const (
	// StatusUnseeded means at least one input slot is still unknown
	StatusUnseeded NodeStatus = "unseeded"
	// StatusAwaitingLegs means both teams are known but the legs are not
	// both final
	StatusAwaitingLegs NodeStatus = "awaiting_legs"
	// StatusResolved means both legs are final and the winner is decided
	StatusResolved NodeStatus = "resolved"
)

// LegKey addresses one leg of one node in the results mapping. Leg is 1 or 2.
type LegKey struct {
	Node string
	Leg  int
}

// NodeState is the resolver's view of one bracket node
type NodeState struct {
	ID            string           `json:"id"`
	Status        NodeStatus       `json:"status"`
	Home          shared.Team      `json:"home,omitempty"`
	Away          shared.Team      `json:"away,omitempty"`
	Legs          []shared.Fixture `json:"legs,omitempty"`
	HomeAggregate int              `json:"home_aggregate"`
	AwayAggregate int              `json:"away_aggregate"`
	Winner        shared.Team      `json:"winner,omitempty"`
	Loser         shared.Team      `json:"loser,omitempty"`
}

// State is the resolved bracket: node states in template order
type State struct {
	Nodes []NodeState `json:"nodes"`

	byID map[string]*NodeState
}

// Resolve walks the bracket template and derives every node's current
// state from the seeds and the leg results supplied.
// Preconditions: receives the template (node refs pointing backwards, as
// schedule validation guarantees), exactly six seeded teams ordered seed 1
// first, and a mapping from (node, leg) to fixture results
// Postconditions: returns the bracket state, or shared.ErrInvalidSeedCount
func Resolve(template []shared.BracketNode, seeds []shared.Team, legs map[LegKey]shared.Fixture) (*State, error) {
	if len(seeds) != schedule.LeagueSize {
		return nil, fmt.Errorf("%w: got %d seeds, need %d", shared.ErrInvalidSeedCount, len(seeds), schedule.LeagueSize)
	}

	seedOf := make(map[int]int, len(seeds))
	for i, t := range seeds {
		seedOf[t.EntryID] = i + 1
	}

	state := &State{
		Nodes: make([]NodeState, 0, len(template)),
		byID:  make(map[string]*NodeState, len(template)),
	}
	for _, node := range template {
		ns := NodeState{ID: node.ID, Status: StatusUnseeded}

		home, homeOK := resolveSlot(node.Home, seeds, state)
		away, awayOK := resolveSlot(node.Away, seeds, state)
		if homeOK && awayOK {
			ns.Home = home
			ns.Away = away
			ns.Status = StatusAwaitingLegs
			if err := settleLegs(&ns, node, legs, seedOf); err != nil {
				return nil, err
			}
		}

		state.Nodes = append(state.Nodes, ns)
		state.byID[node.ID] = &state.Nodes[len(state.Nodes)-1]
	}
	return state, nil
}

// resolveSlot turns a slot ref into a concrete team if its inputs are
// available yet
func resolveSlot(ref shared.SlotRef, seeds []shared.Team, state *State) (shared.Team, bool) {
	switch ref.Kind {
	case shared.SlotTeam:
		for _, t := range seeds {
			if t.EntryID == ref.EntryID {
				return t, true
			}
		}
		return shared.Team{EntryID: ref.EntryID}, true
	case shared.SlotSeed:
		return seeds[ref.Seed-1], true
	case shared.SlotNodeOutput:
		prereq, ok := state.byID[ref.Node]
		if !ok || prereq.Status != StatusResolved {
			return shared.Team{}, false
		}
		if ref.Take == shared.TakeWinner {
			return prereq.Winner, true
		}
		return prereq.Loser, true
	}
	return shared.Team{}, false
}

// settleLegs accumulates the aggregate score from the node's legs and
// resolves the node once both legs are final. Live legs contribute to the
// provisional aggregate shown in snapshots but never decide the tie.
func settleLegs(ns *NodeState, node shared.BracketNode, legs map[LegKey]shared.Fixture, seedOf map[int]int) error {
	finals := 0
	for leg := 1; leg <= 2; leg++ {
		f, ok := legs[LegKey{Node: node.ID, Leg: leg}]
		if !ok || f.Status == shared.StatusScheduled {
			continue
		}

		homePts, awayPts, err := orientLeg(ns, f)
		if err != nil {
			return err
		}
		ns.HomeAggregate += homePts
		ns.AwayAggregate += awayPts
		ns.Legs = append(ns.Legs, f)

		if f.Status == shared.StatusFinal {
			finals++
		}
	}

	if finals < 2 {
		return nil
	}

	// Both legs final: higher aggregate advances; an exact tie goes to the
	// better regular-season seed, applied the same way at every node.
	switch {
	case ns.HomeAggregate > ns.AwayAggregate:
		ns.Winner, ns.Loser = ns.Home, ns.Away
	case ns.AwayAggregate > ns.HomeAggregate:
		ns.Winner, ns.Loser = ns.Away, ns.Home
	case seedOf[ns.Home.EntryID] < seedOf[ns.Away.EntryID]:
		ns.Winner, ns.Loser = ns.Home, ns.Away
	default:
		ns.Winner, ns.Loser = ns.Away, ns.Home
	}
	ns.Status = StatusResolved
	return nil
}

// orientLeg maps a leg fixture's points onto the node's home/away teams,
// whichever way round the leg was played
func orientLeg(ns *NodeState, f shared.Fixture) (int, int, error) {
	if f.Home.Kind != shared.SlotTeam || f.Away.Kind != shared.SlotTeam {
		return 0, 0, fmt.Errorf("leg %d of %s has an unresolved slot", f.Leg, ns.ID)
	}
	switch {
	case f.Home.EntryID == ns.Home.EntryID && f.Away.EntryID == ns.Away.EntryID:
		return f.HomePoints, f.AwayPoints, nil
	case f.Home.EntryID == ns.Away.EntryID && f.Away.EntryID == ns.Home.EntryID:
		return f.AwayPoints, f.HomePoints, nil
	}
	return 0, 0, fmt.Errorf("leg %d of %s involves entries %d and %d, expected %d and %d",
		f.Leg, ns.ID, f.Home.EntryID, f.Away.EntryID, ns.Home.EntryID, ns.Away.EntryID)
}

// Node returns the state of one node by id
func (s *State) Node(id string) (NodeState, bool) {
	ns, ok := s.byID[id]
	if !ok {
		return NodeState{}, false
	}
	return *ns, true
}

// Outcome returns the winner and loser of a node.
// Postconditions: returns shared.ErrUnresolvedPrerequisite if the node's
// inputs depend on a node that has not resolved, or
// shared.ErrDataIncomplete if the teams are known but the legs are not
// both final yet
func (s *State) Outcome(id string) (winner shared.Team, loser shared.Team, err error) {
	ns, ok := s.byID[id]
	if !ok {
		return shared.Team{}, shared.Team{}, fmt.Errorf("unknown bracket node %q", id)
	}
	switch ns.Status {
	case StatusUnseeded:
		return shared.Team{}, shared.Team{}, fmt.Errorf("%w: node %s is not seeded", shared.ErrUnresolvedPrerequisite, id)
	case StatusAwaitingLegs:
		return shared.Team{}, shared.Team{}, fmt.Errorf("%w: node %s legs are not final", shared.ErrDataIncomplete, id)
	}
	return ns.Winner, ns.Loser, nil
}
