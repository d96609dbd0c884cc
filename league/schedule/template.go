/* template.go
 * The fixed playoff bracket template. Two parallel two-legged knockout
 * tracks: the Championship for seeds 1-4 and the Shield for seeds 5-6 plus
 * the semi-final losers.
 */

package schedule

import "h2h-league-bot/league/shared"

// Bracket node ids. The shield consolation semi takes the championship
// semi-final losers, so it cannot seed until both semis have resolved even
// though its legs share the semi-final gameweeks.
const (
	NodeSF1         = "SF1"
	NodeSF2         = "SF2"
	NodeFinal       = "FINAL"
	NodeShieldSF1   = "SHIELD_SF1"
	NodeShieldSF2   = "SHIELD_SF2"
	NodeShieldFinal = "SHIELD_FINAL"
)

// DefaultPlayoffStart is the first playoff gameweek in the stock calendar,
// directly after the 30-fixture regular season.
const DefaultPlayoffStart = 31

// DefaultBracket builds the playoff template with semi legs in gameweeks
// startGW and startGW+1 and final legs in startGW+2 and startGW+3.
// Template order matters: node output refs must point backwards.
func DefaultBracket(startGW int) []shared.BracketNode {
	semis := [2]int{startGW, startGW + 1}
	finals := [2]int{startGW + 2, startGW + 3}

	return []shared.BracketNode{
		{ID: NodeSF1, Home: shared.SeedRef(1), Away: shared.SeedRef(4), LegGameweeks: semis},
		{ID: NodeSF2, Home: shared.SeedRef(2), Away: shared.SeedRef(3), LegGameweeks: semis},
		{ID: NodeShieldSF1, Home: shared.SeedRef(5), Away: shared.SeedRef(6), LegGameweeks: semis},
		{ID: NodeShieldSF2, Home: shared.LoserOf(NodeSF1), Away: shared.LoserOf(NodeSF2), LegGameweeks: semis},
		{ID: NodeFinal, Home: shared.WinnerOf(NodeSF1), Away: shared.WinnerOf(NodeSF2), LegGameweeks: finals},
		{ID: NodeShieldFinal, Home: shared.WinnerOf(NodeShieldSF1), Away: shared.WinnerOf(NodeShieldSF2), LegGameweeks: finals},
	}
}
