/* bracket_test.go
 * Contains unit tests for the bracket resolver
 */

package bracket

import (
	"testing"

	"h2h-league-bot/league/schedule"
	"h2h-league-bot/league/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededTeams returns six teams ordered seed 1 first
func seededTeams() []shared.Team {
	return []shared.Team{
		{EntryID: 101, Name: "Alpha FC"},      // seed 1
		{EntryID: 102, Name: "Bravo United"},  // seed 2
		{EntryID: 103, Name: "Charlie Town"},  // seed 3
		{EntryID: 104, Name: "Delta Rovers"},  // seed 4
		{EntryID: 105, Name: "Echo Athletic"}, // seed 5
		{EntryID: 106, Name: "Foxtrot City"},  // seed 6
	}
}

// template returns the stock bracket starting at gameweek 31
func template() []shared.BracketNode {
	return schedule.DefaultBracket(31)
}

// leg builds a leg result for a node
func leg(node string, legNo, gw, home, away, homePts, awayPts int, status shared.FixtureStatus) (LegKey, shared.Fixture) {
	return LegKey{Node: node, Leg: legNo}, shared.Fixture{
		Gameweek:   gw,
		Home:       shared.TeamRef(home),
		Away:       shared.TeamRef(away),
		HomePoints: homePts,
		AwayPoints: awayPts,
		Status:     status,
		Node:       node,
		Leg:        legNo,
	}
}

// legMap builds a leg results mapping from pairs produced by leg()
func legMap(entries ...func() (LegKey, shared.Fixture)) map[LegKey]shared.Fixture {
	legs := make(map[LegKey]shared.Fixture)
	for _, entry := range entries {
		k, f := entry()
		legs[k] = f
	}
	return legs
}

// semiLegs returns final results for SF1, SF2 and SHIELD_SF1.
// SF1: 104 beats 101 120-118 on aggregate. SF2: 100-100 exact tie, so
// seed 2 (102) advances. SHIELD_SF1: 105 beats 106.
func semiLegs() map[LegKey]shared.Fixture {
	return legMap(
		func() (LegKey, shared.Fixture) { return leg("SF1", 1, 31, 101, 104, 60, 58, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SF1", 2, 32, 104, 101, 62, 58, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SF2", 1, 31, 102, 103, 55, 45, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SF2", 2, 32, 103, 102, 55, 45, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SHIELD_SF1", 1, 31, 105, 106, 70, 40, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SHIELD_SF1", 2, 32, 106, 105, 50, 60, shared.StatusFinal) },
	)
}

// TestResolve_InvalidSeedCount tests the seed count guard
func TestResolve_InvalidSeedCount(t *testing.T) {
	_, err := Resolve(template(), seededTeams()[:5], nil)

	assert.ErrorIs(t, err, shared.ErrInvalidSeedCount)
}

// TestResolve_InitialState tests the node states before any legs are played
func TestResolve_InitialState(t *testing.T) {
	state, err := Resolve(template(), seededTeams(), nil)
	require.NoError(t, err)

	sf1, ok := state.Node("SF1")
	require.True(t, ok)
	assert.Equal(t, StatusAwaitingLegs, sf1.Status)
	assert.Equal(t, 101, sf1.Home.EntryID) // seed 1
	assert.Equal(t, 104, sf1.Away.EntryID) // seed 4

	sf2, _ := state.Node("SF2")
	assert.Equal(t, 102, sf2.Home.EntryID) // seed 2
	assert.Equal(t, 103, sf2.Away.EntryID) // seed 3

	shieldSF1, _ := state.Node("SHIELD_SF1")
	assert.Equal(t, StatusAwaitingLegs, shieldSF1.Status)
	assert.Equal(t, 105, shieldSF1.Home.EntryID)
	assert.Equal(t, 106, shieldSF1.Away.EntryID)

	// These depend on semi-final outcomes
	for _, id := range []string{"SHIELD_SF2", "FINAL", "SHIELD_FINAL"} {
		ns, _ := state.Node(id)
		assert.Equal(t, StatusUnseeded, ns.Status, "node %s", id)
	}
}

// TestResolve_AggregateWinnerAdvances tests that the higher two-leg
// aggregate advances regardless of seed: SF1 ends 120-118 to seed 4
func TestResolve_AggregateWinnerAdvances(t *testing.T) {
	state, err := Resolve(template(), seededTeams(), semiLegs())
	require.NoError(t, err)

	winner, loser, err := state.Outcome("SF1")
	require.NoError(t, err)
	assert.Equal(t, 104, winner.EntryID)
	assert.Equal(t, 101, loser.EntryID)

	sf1, _ := state.Node("SF1")
	assert.Equal(t, 118, sf1.HomeAggregate)
	assert.Equal(t, 120, sf1.AwayAggregate)

	// The final is now seeded with the SF winners
	final, _ := state.Node("FINAL")
	assert.Equal(t, StatusAwaitingLegs, final.Status)
	assert.Equal(t, 104, final.Home.EntryID)
}

// TestResolve_ExactTieGoesToBetterSeed tests the aggregate tie policy:
// SF2 ends 100-100 so seed 2 advances over seed 3
func TestResolve_ExactTieGoesToBetterSeed(t *testing.T) {
	state, err := Resolve(template(), seededTeams(), semiLegs())
	require.NoError(t, err)

	winner, loser, err := state.Outcome("SF2")
	require.NoError(t, err)
	assert.Equal(t, 102, winner.EntryID, "better seed should advance on an exact tie")
	assert.Equal(t, 103, loser.EntryID)
}

// TestResolve_ShieldConsolationSeededFromLosers tests that SHIELD_SF2
// picks up the semi-final losers once both semis resolve
func TestResolve_ShieldConsolationSeededFromLosers(t *testing.T) {
	state, err := Resolve(template(), seededTeams(), semiLegs())
	require.NoError(t, err)

	shieldSF2, ok := state.Node("SHIELD_SF2")
	require.True(t, ok)
	assert.Equal(t, StatusAwaitingLegs, shieldSF2.Status)
	assert.Equal(t, 101, shieldSF2.Home.EntryID) // loser of SF1
	assert.Equal(t, 103, shieldSF2.Away.EntryID) // loser of SF2
}

// TestResolve_FinalBeforeSemisFails tests that asking for the FINAL
// outcome before both semis resolve fails with UnresolvedPrerequisite
func TestResolve_FinalBeforeSemisFails(t *testing.T) {
	state, err := Resolve(template(), seededTeams(), nil)
	require.NoError(t, err)

	_, _, err = state.Outcome("FINAL")

	assert.ErrorIs(t, err, shared.ErrUnresolvedPrerequisite)
}

// TestResolve_OutcomeBeforeBothLegsFinal tests that a seeded node with
// only one final leg reports DataIncomplete, not a winner
func TestResolve_OutcomeBeforeBothLegsFinal(t *testing.T) {
	legs := legMap(
		func() (LegKey, shared.Fixture) { return leg("SF1", 1, 31, 101, 104, 60, 58, shared.StatusFinal) },
	)
	state, err := Resolve(template(), seededTeams(), legs)
	require.NoError(t, err)

	_, _, err = state.Outcome("SF1")

	assert.ErrorIs(t, err, shared.ErrDataIncomplete)
}

// TestResolve_LiveLegsAreProvisional tests that live legs feed the
// aggregate shown in snapshots but never resolve the node
func TestResolve_LiveLegsAreProvisional(t *testing.T) {
	legs := legMap(
		func() (LegKey, shared.Fixture) { return leg("SF1", 1, 31, 101, 104, 60, 58, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SF1", 2, 32, 104, 101, 30, 20, shared.StatusLive) },
	)
	state, err := Resolve(template(), seededTeams(), legs)
	require.NoError(t, err)

	sf1, _ := state.Node("SF1")
	assert.Equal(t, StatusAwaitingLegs, sf1.Status)
	assert.Equal(t, 80, sf1.HomeAggregate) // 60 + 20
	assert.Equal(t, 88, sf1.AwayAggregate) // 58 + 30
}

// TestResolve_IdempotentAcrossProgressiveInput tests that feeding the
// resolver progressively more results never changes an already resolved
// node's outcome
func TestResolve_IdempotentAcrossProgressiveInput(t *testing.T) {
	legs := semiLegs()
	first, err := Resolve(template(), seededTeams(), legs)
	require.NoError(t, err)
	firstWinner, _, err := first.Outcome("SF1")
	require.NoError(t, err)

	// Add the final legs and resolve again from scratch
	for entry, f := range legMap(
		func() (LegKey, shared.Fixture) { return leg("FINAL", 1, 33, 104, 102, 61, 59, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("FINAL", 2, 34, 102, 104, 50, 55, shared.StatusFinal) },
	) {
		legs[entry] = f
	}

	second, err := Resolve(template(), seededTeams(), legs)
	require.NoError(t, err)
	secondWinner, _, err := second.Outcome("SF1")
	require.NoError(t, err)

	assert.Equal(t, firstWinner, secondWinner)

	champion, runnerUp, err := second.Outcome("FINAL")
	require.NoError(t, err)
	assert.Equal(t, 104, champion.EntryID) // 116-109 on aggregate
	assert.Equal(t, 102, runnerUp.EntryID)
}

// TestResolve_SameInputSameState tests referential transparency: two
// resolves over identical input produce identical states
func TestResolve_SameInputSameState(t *testing.T) {
	legs := semiLegs()

	first, err := Resolve(template(), seededTeams(), legs)
	require.NoError(t, err)
	second, err := Resolve(template(), seededTeams(), legs)
	require.NoError(t, err)

	assert.Equal(t, first.Nodes, second.Nodes)
}

// TestResolve_FullBracket tests a complete playoff run through both tracks
func TestResolve_FullBracket(t *testing.T) {
	legs := semiLegs()
	for entry, f := range legMap(
		// SHIELD_SF2: loser SF1 (101) vs loser SF2 (103); 101 advances
		func() (LegKey, shared.Fixture) { return leg("SHIELD_SF2", 1, 31, 101, 103, 66, 50, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SHIELD_SF2", 2, 32, 103, 101, 52, 48, shared.StatusFinal) },
		// FINAL: 104 vs 102; 102 wins 115-110
		func() (LegKey, shared.Fixture) { return leg("FINAL", 1, 33, 104, 102, 55, 60, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("FINAL", 2, 34, 102, 104, 55, 55, shared.StatusFinal) },
		// SHIELD_FINAL: winner SHIELD_SF1 (105) vs winner SHIELD_SF2 (101)
		func() (LegKey, shared.Fixture) { return leg("SHIELD_FINAL", 1, 33, 105, 101, 40, 70, shared.StatusFinal) },
		func() (LegKey, shared.Fixture) { return leg("SHIELD_FINAL", 2, 34, 101, 105, 45, 44, shared.StatusFinal) },
	) {
		legs[entry] = f
	}

	state, err := Resolve(template(), seededTeams(), legs)
	require.NoError(t, err)

	champion, _, err := state.Outcome("FINAL")
	require.NoError(t, err)
	assert.Equal(t, 102, champion.EntryID)

	shieldWinner, _, err := state.Outcome("SHIELD_FINAL")
	require.NoError(t, err)
	assert.Equal(t, 101, shieldWinner.EntryID)

	for _, ns := range state.Nodes {
		assert.Equal(t, StatusResolved, ns.Status, "node %s", ns.ID)
	}
}

// TestResolve_UnknownNodeOutcome tests the error for a node id that is
// not in the template
func TestResolve_UnknownNodeOutcome(t *testing.T) {
	state, err := Resolve(template(), seededTeams(), nil)
	require.NoError(t, err)

	_, _, err = state.Outcome("QF1")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrUnresolvedPrerequisite)
}
