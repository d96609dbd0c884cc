/* test_mocks.go
 * Contains mock collaborators for testing the league package and the bot
 * and web surfaces built on top of it.
 */

package league

import (
	"context"
	"fmt"
	"sort"

	"h2h-league-bot/league/schedule"
	"h2h-league-bot/league/shared"
	"h2h-league-bot/league/snapshot"
	"h2h-league-bot/league/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements store.Interface in memory
type MockStore struct {
	Results   map[int]store.GameweekResults
	Snapshots map[int]snapshot.Snapshot

	// Error injection for testing error paths
	StoreResultsError  error
	FetchResultsError  error
	StoreSnapshotError error
}

// NewMockStore creates an empty in-memory store
func NewMockStore() *MockStore {
	return &MockStore{
		Results:   make(map[int]store.GameweekResults),
		Snapshots: make(map[int]snapshot.Snapshot),
	}
}

// StoreGameweekResults mock implementation. Applies the same
// final-over-live rule as the real store.
func (m *MockStore) StoreGameweekResults(results store.GameweekResults) error {
	if m.StoreResultsError != nil {
		return m.StoreResultsError
	}
	if existing, ok := m.Results[results.Gameweek]; ok {
		if existing.Mode == shared.ModeFinal && results.Mode == shared.ModeLive {
			return nil
		}
	}
	m.Results[results.Gameweek] = results
	return nil
}

// FetchGameweekResults mock implementation
func (m *MockStore) FetchGameweekResults(gw int) (store.GameweekResults, error) {
	if m.FetchResultsError != nil {
		return store.GameweekResults{}, m.FetchResultsError
	}
	results, ok := m.Results[gw]
	if !ok {
		return store.GameweekResults{}, mongo.ErrNoDocuments
	}
	return results, nil
}

// FetchResultsUpTo mock implementation
func (m *MockStore) FetchResultsUpTo(gw int) ([]shared.Fixture, error) {
	if m.FetchResultsError != nil {
		return nil, m.FetchResultsError
	}
	var gws []int
	for g := range m.Results {
		if g <= gw {
			gws = append(gws, g)
		}
	}
	sort.Ints(gws)

	var fixtures []shared.Fixture
	for _, g := range gws {
		fixtures = append(fixtures, m.Results[g].Fixtures...)
	}
	return fixtures, nil
}

// StoreSnapshot mock implementation
func (m *MockStore) StoreSnapshot(snap snapshot.Snapshot) error {
	if m.StoreSnapshotError != nil {
		return m.StoreSnapshotError
	}
	m.Snapshots[snap.Gameweek] = snap
	return nil
}

// FetchSnapshot mock implementation
func (m *MockStore) FetchSnapshot(gw int) (snapshot.Snapshot, error) {
	snap, ok := m.Snapshots[gw]
	if !ok {
		return snapshot.Snapshot{}, mongo.ErrNoDocuments
	}
	return snap, nil
}

// FetchLatestSnapshot mock implementation
func (m *MockStore) FetchLatestSnapshot() (snapshot.Snapshot, error) {
	latest := -1
	for gw := range m.Snapshots {
		if gw > latest {
			latest = gw
		}
	}
	if latest < 0 {
		return snapshot.Snapshot{}, mongo.ErrNoDocuments
	}
	return m.Snapshots[latest], nil
}

// GetSeason mock implementation
func (m *MockStore) GetSeason() string {
	return "test_season"
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return mockClient{}
}

type mockClient struct{}

func (mockClient) Disconnect(context.Context) error { return nil }

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)

// MockProvider implements external.Client over canned scores
type MockProvider struct {
	// Scores maps gameweek -> entry id -> score
	Scores map[int]map[int]shared.GameweekScore
	Err    error
}

// NewMockProvider creates a provider with no scores loaded
func NewMockProvider() *MockProvider {
	return &MockProvider{Scores: make(map[int]map[int]shared.GameweekScore)}
}

// SetScore records a canned score for one entry in one gameweek
func (m *MockProvider) SetScore(gw int, entryID int, points int) {
	if m.Scores[gw] == nil {
		m.Scores[gw] = make(map[int]shared.GameweekScore)
	}
	m.Scores[gw][entryID] = shared.GameweekScore{EntryID: entryID, Points: points, Status: shared.StatusFinal}
}

// GameweekScores mock implementation
func (m *MockProvider) GameweekScores(gw int, entryIDs []int, mode shared.Mode) (map[int]shared.GameweekScore, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	byEntry, ok := m.Scores[gw]
	if !ok {
		return nil, fmt.Errorf("%w: no data for gw %d", shared.ErrScoresUnavailable, gw)
	}

	scores := make(map[int]shared.GameweekScore, len(entryIDs))
	for _, id := range entryIDs {
		score, ok := byEntry[id]
		if !ok {
			return nil, fmt.Errorf("%w: no data for entry %d in gw %d", shared.ErrScoresUnavailable, id, gw)
		}
		scores[id] = score
	}
	return scores, nil
}

// NewTestSeason builds a valid six-team season: 30 regular-season
// fixtures (every ordered pair once, one per gameweek) and the stock
// bracket template starting at gameweek 31.
func NewTestSeason() *schedule.Season {
	teams := []shared.Team{
		{EntryID: 101, Name: "Alpha FC"},
		{EntryID: 102, Name: "Bravo United"},
		{EntryID: 103, Name: "Charlie Town"},
		{EntryID: 104, Name: "Delta Rovers"},
		{EntryID: 105, Name: "Echo Athletic"},
		{EntryID: 106, Name: "Foxtrot City"},
	}

	var fixtures []shared.Fixture
	gw := 1
	for _, home := range teams {
		for _, away := range teams {
			if home.EntryID == away.EntryID {
				continue
			}
			fixtures = append(fixtures, shared.Fixture{
				Gameweek: gw,
				Home:     shared.TeamRef(home.EntryID),
				Away:     shared.TeamRef(away.EntryID),
				Status:   shared.StatusScheduled,
			})
			gw++
		}
	}

	return &schedule.Season{
		Teams:    teams,
		Fixtures: fixtures,
		Bracket:  schedule.DefaultBracket(schedule.DefaultPlayoffStart),
	}
}
