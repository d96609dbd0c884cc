/* format.go
 * Contains the text rendering helpers the Discord bot uses. Plain
 * strings.Builder output, one line per row or node.
 */

package league

import (
	"fmt"
	"strings"

	"h2h-league-bot/league/bracket"
	"h2h-league-bot/league/shared"
	"h2h-league-bot/league/standings"
)

// FormatStandings renders the standings table one row per line
func FormatStandings(rows []standings.Row) string {
	var res strings.Builder
	res.WriteString("Current standings:\n")
	for _, row := range rows {
		res.WriteString(fmt.Sprintf("%d. %s — %d pts (W%d D%d L%d, PF %d, PA %d)\n",
			row.Seed, row.Name, row.LeaguePoints, row.Wins, row.Draws, row.Losses,
			row.PointsFor, row.PointsAgainst))
	}
	return res.String()
}

// FormatBracket renders the bracket node states one per line
func FormatBracket(state *bracket.State) string {
	var res strings.Builder
	res.WriteString("Playoff bracket:\n")
	for _, ns := range state.Nodes {
		switch ns.Status {
		case bracket.StatusUnseeded:
			res.WriteString(fmt.Sprintf("- %s: not seeded yet\n", ns.ID))
		case bracket.StatusAwaitingLegs:
			res.WriteString(fmt.Sprintf("- %s: %s vs %s (aggregate %d-%d, legs in progress)\n",
				ns.ID, ns.Home.Name, ns.Away.Name, ns.HomeAggregate, ns.AwayAggregate))
		case bracket.StatusResolved:
			res.WriteString(fmt.Sprintf("- %s: %s beat %s %d-%d on aggregate\n",
				ns.ID, ns.Winner.Name, ns.Loser.Name, aggregateFor(ns, ns.Winner), aggregateFor(ns, ns.Loser)))
		}
	}
	return res.String()
}

// aggregateFor picks the right side's aggregate for a team in a node
func aggregateFor(ns bracket.NodeState, team shared.Team) int {
	if ns.Home.EntryID == team.EntryID {
		return ns.HomeAggregate
	}
	return ns.AwayAggregate
}

// FormatFixtures renders the fixtures scheduled for one gameweek. Playoff
// slots that have not resolved yet are shown by their token form.
func (l *League) FormatFixtures(gw int) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("Gameweek %d fixtures:\n", gw))

	count := 0
	for _, f := range l.Season.RegularFixtures(gw) {
		res.WriteString(fmt.Sprintf("- %s vs %s\n", l.slotLabel(f.Home), l.slotLabel(f.Away)))
		count++
	}
	for _, slot := range l.Season.BracketLegs(gw) {
		res.WriteString(fmt.Sprintf("- %s leg %d: %s vs %s\n",
			slot.Node.ID, slot.Leg, l.slotLabel(slot.Node.Home), l.slotLabel(slot.Node.Away)))
		count++
	}
	if count == 0 {
		res.WriteString("No fixtures\n")
	}
	return res.String()
}

// slotLabel renders a slot ref as a team name where possible
func (l *League) slotLabel(ref shared.SlotRef) string {
	if ref.Kind == shared.SlotTeam {
		if team, ok := l.Season.TeamByID(ref.EntryID); ok {
			return team.Name
		}
	}
	return ref.String()
}
