/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"h2h-league-bot/league/shared"
	"h2h-league-bot/league/snapshot"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	StoreGameweekResults(results GameweekResults) error
	FetchGameweekResults(gw int) (GameweekResults, error)
	FetchResultsUpTo(gw int) ([]shared.Fixture, error)
	StoreSnapshot(snap snapshot.Snapshot) error
	FetchSnapshot(gw int) (snapshot.Snapshot, error)
	FetchLatestSnapshot() (snapshot.Snapshot, error)

	// Getter methods for accessing fields
	GetSeason() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetSeason returns the season label documents are keyed by
func (s *Store) GetSeason() string {
	return s.Season
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
