/* league.go
 * This file contains the public methods for interacting with the league
 * core. The bot, web and CLI surfaces should only call through here, not
 * the engine sub packages directly. Each method derives its answer from
 * the season definition plus whatever results the store holds; nothing is
 * cached between calls.
 */

package league

import (
	"errors"
	"fmt"
	"strings"

	"h2h-league-bot/league/bracket"
	"h2h-league-bot/league/external"
	"h2h-league-bot/league/schedule"
	"h2h-league-bot/league/shared"
	"h2h-league-bot/league/snapshot"
	"h2h-league-bot/league/standings"
	"h2h-league-bot/league/store"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"
)

// League wires the season definition, the score provider and the store
// together behind the operations the surfaces need
type League struct {
	Season   *schedule.Season
	Store    store.Interface
	Provider external.Client

	log *logrus.Logger
}

// NewLeague creates a League instance over the provided collaborators
func NewLeague(season *schedule.Season, st store.Interface, provider external.Client, logger *logrus.Logger) (*League, error) {
	if season == nil || st == nil || provider == nil {
		return nil, fmt.Errorf("season, store and provider are required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &League{Season: season, Store: st, Provider: provider, log: logger}, nil
}

// UpdateGameweek fetches scores for one gameweek and stores the resolved
// fixture results. Playoff legs whose bracket node is not seeded yet are
// skipped and picked up on a later run. On any failure nothing is written,
// so previously published results stay in place.
// Preconditions: receives the gameweek and the mode (live or final)
// Postconditions: upserts the gameweek's results, or returns a typed error
func (l *League) UpdateGameweek(gw int, mode shared.Mode) error {
	fixtures := l.Season.RegularFixtures(gw)

	legSlots := l.Season.BracketLegs(gw)
	if len(legSlots) > 0 {
		state, err := l.Bracket()
		if err != nil {
			if len(fixtures) == 0 {
				return err
			}
			l.log.WithError(err).Warn("bracket not resolvable yet, updating regular fixtures only")
		} else {
			for _, slot := range legSlots {
				ns, ok := state.Node(slot.Node.ID)
				if !ok || ns.Status == bracket.StatusUnseeded {
					l.log.WithField("node", slot.Node.ID).Info("playoff tie not seeded yet, skipping leg")
					continue
				}
				fixtures = append(fixtures, shared.Fixture{
					Gameweek: gw,
					Home:     shared.TeamRef(ns.Home.EntryID),
					Away:     shared.TeamRef(ns.Away.EntryID),
					Status:   shared.StatusScheduled,
					Node:     slot.Node.ID,
					Leg:      slot.Leg,
				})
			}
		}
	}

	if len(fixtures) == 0 {
		l.log.WithField("gw", gw).Info("no resolvable fixtures this gameweek")
		return nil
	}

	entrySet := make(map[int]bool)
	for _, f := range fixtures {
		entrySet[f.Home.EntryID] = true
		entrySet[f.Away.EntryID] = true
	}
	var entryIDs []int
	for id := range entrySet {
		entryIDs = append(entryIDs, id)
	}

	scores, err := l.Provider.GameweekScores(gw, entryIDs, mode)
	if err != nil {
		return fmt.Errorf("failed to fetch gw %d scores: %w", gw, err)
	}

	status := shared.StatusFinal
	if mode == shared.ModeLive {
		status = shared.StatusLive
	}
	for i := range fixtures {
		fixtures[i].HomePoints = scores[fixtures[i].Home.EntryID].Points
		fixtures[i].AwayPoints = scores[fixtures[i].Away.EntryID].Points
		fixtures[i].Status = status
	}

	return l.Store.StoreGameweekResults(store.GameweekResults{
		Gameweek: gw,
		Mode:     mode,
		Fixtures: fixtures,
	})
}

// Standings computes the regular-season table from everything the store
// holds. Playoff legs never contribute to the table.
func (l *League) Standings(mode shared.Mode) ([]standings.Row, error) {
	fixtures, err := l.regularResults()
	if err != nil {
		return nil, err
	}
	return standings.Compute(l.Season.Teams, fixtures, mode)
}

// Bracket resolves the playoff bracket from the final regular-season
// seeding and the stored playoff leg results.
// Postconditions: returns the bracket state, or
// shared.ErrIncompleteSeason while the regular season is still running
func (l *League) Bracket() (*bracket.State, error) {
	regular, err := l.regularResults()
	if err != nil {
		return nil, err
	}
	seeds, err := standings.Seeds(l.Season.Teams, regular, len(l.Season.Fixtures))
	if err != nil {
		return nil, err
	}

	stored, err := l.Store.FetchResultsUpTo(l.Season.LastPlayoffGameweek())
	if err != nil {
		return nil, err
	}
	legs := make(map[bracket.LegKey]shared.Fixture)
	for _, f := range stored {
		if f.Node == "" {
			continue
		}
		legs[bracket.LegKey{Node: f.Node, Leg: f.Leg}] = f
	}

	return bracket.Resolve(l.Season.Bracket, seeds, legs)
}

// PublishSnapshot assembles the published view for one gameweek and
// persists it. Before the regular season completes the snapshot carries
// the standings only; any other failure aborts the publish so the
// previously stored snapshot survives.
func (l *League) PublishSnapshot(gw int, mode shared.Mode) (snapshot.Snapshot, error) {
	rows, err := l.Standings(mode)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	state, err := l.Bracket()
	if err != nil {
		if !errors.Is(err, shared.ErrIncompleteSeason) {
			return snapshot.Snapshot{}, err
		}
		state = nil
	}

	snap := snapshot.Assemble(gw, mode, rows, state)
	if err := l.Store.StoreSnapshot(snap); err != nil {
		return snapshot.Snapshot{}, err
	}
	return snap, nil
}

// FindTeam resolves a possibly misspelled team name to a league entry
// using fuzzy matching
func (l *League) FindTeam(name string) (shared.Team, error) {
	lookup := make(map[string]shared.Team, len(l.Season.Teams))
	var lowered []string
	for _, t := range l.Season.Teams {
		lower := strings.ToLower(t.Name)
		lookup[lower] = t
		lowered = append(lowered, lower)
	}

	matches := fuzzy.RankFindNormalizedFold(strings.ToLower(name), lowered)
	if len(matches) == 0 {
		return shared.Team{}, fmt.Errorf("no team matching %q", name)
	}

	best := matches[0]
	for _, m := range matches[1:] {
		if m.Distance < best.Distance {
			best = m
		}
	}
	return lookup[best.Target], nil
}

// regularResults returns the stored regular-season fixtures only
func (l *League) regularResults() ([]shared.Fixture, error) {
	stored, err := l.Store.FetchResultsUpTo(l.Season.LastRegularGameweek())
	if err != nil {
		return nil, err
	}
	var fixtures []shared.Fixture
	for _, f := range stored {
		if f.Node != "" {
			continue
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}
