/* standings.go
 * The regular-season standings engine. A pure fold over fixture results
 * into a ranked table with deterministic tiebreaks; recomputed from
 * scratch every run so there is no incremental state to drift.
 */

package standings

import (
	"fmt"
	"sort"

	"h2h-league-bot/league/shared"
)

// League points per result
const (
	winPoints  = 3
	drawPoints = 1
)

// Row is one team's line in the standings table. Seed is the team's rank
// after the tiebreak chain is applied (1 = best).
type Row struct {
	EntryID       int    `json:"entry_id" bson:"entry_id"`
	Name          string `json:"name" bson:"name"`
	Played        int    `json:"played" bson:"played"`
	Wins          int    `json:"wins" bson:"wins"`
	Draws         int    `json:"draws" bson:"draws"`
	Losses        int    `json:"losses" bson:"losses"`
	PointsFor     int    `json:"points_for" bson:"points_for"`
	PointsAgainst int    `json:"points_against" bson:"points_against"`
	LeaguePoints  int    `json:"points" bson:"points"`
	Seed          int    `json:"seed" bson:"seed"`
}

// Compute folds fixture results into a ranked standings table.
// Preconditions: receives the team list, the fixture results to fold and
// the mode. Fixtures must carry concrete teams on both sides. Scheduled
// fixtures are ignored; in final mode any consulted fixture that is not
// final fails the whole computation.
// Postconditions: returns rows ordered by the tiebreak chain (league
// points desc, points-for desc, pairwise head-to-head aggregate desc,
// entry id asc) with seeds 1..n assigned in order, or a typed error
func Compute(teams []shared.Team, fixtures []shared.Fixture, mode shared.Mode) ([]Row, error) {
	table := make(map[int]*Row, len(teams))
	for _, t := range teams {
		table[t.EntryID] = &Row{EntryID: t.EntryID, Name: t.Name}
	}

	var consulted []shared.Fixture
	for _, f := range fixtures {
		if f.Status == shared.StatusScheduled {
			continue
		}
		if mode == shared.ModeFinal && f.Status != shared.StatusFinal {
			return nil, fmt.Errorf("%w: fixture %s vs %s in gw %d is %s",
				shared.ErrDataIncomplete, f.Home, f.Away, f.Gameweek, f.Status)
		}
		if f.Home.Kind != shared.SlotTeam || f.Away.Kind != shared.SlotTeam {
			return nil, fmt.Errorf("standings fixture in gw %d has an unresolved slot", f.Gameweek)
		}

		home, ok := table[f.Home.EntryID]
		if !ok {
			return nil, fmt.Errorf("fixture in gw %d references unknown entry %d", f.Gameweek, f.Home.EntryID)
		}
		away, ok := table[f.Away.EntryID]
		if !ok {
			return nil, fmt.Errorf("fixture in gw %d references unknown entry %d", f.Gameweek, f.Away.EntryID)
		}

		home.Played++
		away.Played++
		home.PointsFor += f.HomePoints
		home.PointsAgainst += f.AwayPoints
		away.PointsFor += f.AwayPoints
		away.PointsAgainst += f.HomePoints

		switch {
		case f.HomePoints > f.AwayPoints:
			home.Wins++
			away.Losses++
			home.LeaguePoints += winPoints
		case f.AwayPoints > f.HomePoints:
			away.Wins++
			home.Losses++
			away.LeaguePoints += winPoints
		default:
			home.Draws++
			away.Draws++
			home.LeaguePoints += drawPoints
			away.LeaguePoints += drawPoints
		}

		consulted = append(consulted, f)
	}

	rows := make([]Row, 0, len(table))
	for _, r := range table {
		rows = append(rows, *r)
	}

	// Base ordering: league points desc, points-for desc, entry id asc.
	// Entry id is the stable final fallback so the output is deterministic
	// regardless of input order.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LeaguePoints != rows[j].LeaguePoints {
			return rows[i].LeaguePoints > rows[j].LeaguePoints
		}
		if rows[i].PointsFor != rows[j].PointsFor {
			return rows[i].PointsFor > rows[j].PointsFor
		}
		return rows[i].EntryID < rows[j].EntryID
	})

	applyHeadToHead(rows, consulted)

	for i := range rows {
		rows[i].Seed = i + 1
	}
	return rows, nil
}

// applyHeadToHead reorders tie groups of exactly two teams (equal league
// points and points-for) by their mutual aggregate score. Groups of three
// or more stay on the entry-id fallback: head-to-head here is pairwise
// only.
func applyHeadToHead(rows []Row, fixtures []shared.Fixture) {
	i := 0
	for i < len(rows) {
		j := i + 1
		for j < len(rows) && rows[j].LeaguePoints == rows[i].LeaguePoints && rows[j].PointsFor == rows[i].PointsFor {
			j++
		}
		if j-i == 2 {
			a, b := rows[i], rows[i+1]
			aggA, aggB := headToHeadAggregate(a.EntryID, b.EntryID, fixtures)
			if aggB > aggA {
				rows[i], rows[i+1] = b, a
			}
		}
		i = j
	}
}

// headToHeadAggregate sums each team's points across the fixtures the two
// teams played against each other
func headToHeadAggregate(a, b int, fixtures []shared.Fixture) (int, int) {
	var aggA, aggB int
	for _, f := range fixtures {
		if !f.Involves(a, b) {
			continue
		}
		if f.Home.EntryID == a {
			aggA += f.HomePoints
			aggB += f.AwayPoints
		} else {
			aggA += f.AwayPoints
			aggB += f.HomePoints
		}
	}
	return aggA, aggB
}

// Seeds ranks the teams for bracket entry. Unlike Compute it refuses to
// run on a partial season: every one of the required regular-season
// fixtures must be final.
// Preconditions: receives the team list, the fixture results and the
// number of fixtures the season declares
// Postconditions: returns the teams ordered seed 1 first, or
// shared.ErrIncompleteSeason / shared.ErrDataIncomplete
func Seeds(teams []shared.Team, fixtures []shared.Fixture, required int) ([]shared.Team, error) {
	finals := 0
	for _, f := range fixtures {
		if f.Status == shared.StatusFinal {
			finals++
		}
	}
	if finals != required {
		return nil, fmt.Errorf("%w: %d of %d fixtures final", shared.ErrIncompleteSeason, finals, required)
	}

	rows, err := Compute(teams, fixtures, shared.ModeFinal)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]shared.Team, len(teams))
	for _, t := range teams {
		byID[t.EntryID] = t
	}

	seeded := make([]shared.Team, len(rows))
	for i, row := range rows {
		seeded[i] = byID[row.EntryID]
	}
	return seeded, nil
}
