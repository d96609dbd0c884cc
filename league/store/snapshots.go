/* snapshots.go
 * Contains the methods for interacting with the snapshots collection: the
 * published per-gameweek standings + bracket documents served by the web
 * layer.
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"h2h-league-bot/league/snapshot"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// snapshotDoc wraps a snapshot with the season key
type snapshotDoc struct {
	Season   string            `bson:"season"`
	Snapshot snapshot.Snapshot `bson:"snapshot"`
}

// StoreSnapshot upserts the published snapshot for one gameweek
// Preconditions: receives the assembled snapshot
// Postconditions: updates the snapshots collection, or returns an error
func (s *Store) StoreSnapshot(snap snapshot.Snapshot) error {
	if len(snap.Standings) == 0 {
		return fmt.Errorf("snapshot for gw %d has no standings", snap.Gameweek)
	}

	filter := bson.M{"season": s.Season, "snapshot.gw": snap.Gameweek}
	update := bson.D{{Key: "$set", Value: snapshotDoc{Season: s.Season, Snapshot: snap}}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.Collections.Snapshots.UpdateOne(context.TODO(), filter, update, opts); err != nil {
		return fmt.Errorf("snapshot upsert failed: %w", err)
	}
	return nil
}

// FetchSnapshot returns the published snapshot for one gameweek
// Postconditions: returns the snapshot, or mongo.ErrNoDocuments if none
// has been published for that gameweek
func (s *Store) FetchSnapshot(gw int) (snapshot.Snapshot, error) {
	var doc snapshotDoc
	err := s.Collections.Snapshots.FindOne(context.TODO(), bson.M{"season": s.Season, "snapshot.gw": gw}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return snapshot.Snapshot{}, err
		}
		return snapshot.Snapshot{}, fmt.Errorf("failed to fetch snapshot for gw %d: %w", gw, err)
	}
	return doc.Snapshot, nil
}

// FetchLatestSnapshot returns the most recently published snapshot
// Postconditions: returns the snapshot, or mongo.ErrNoDocuments if the
// season has no published snapshots
func (s *Store) FetchLatestSnapshot() (snapshot.Snapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "snapshot.gw", Value: -1}})

	var doc snapshotDoc
	err := s.Collections.Snapshots.FindOne(context.TODO(), bson.M{"season": s.Season}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return snapshot.Snapshot{}, err
		}
		return snapshot.Snapshot{}, fmt.Errorf("failed to fetch latest snapshot: %w", err)
	}
	return doc.Snapshot, nil
}
