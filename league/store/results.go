/* results.go
 * Contains the methods for interacting with the gw_results collection.
 * One document per (season, gameweek) holding the resolved fixtures and
 * their points.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"h2h-league-bot/league/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GameweekResults is the stored outcome of one gameweek
type GameweekResults struct {
	Season   string           `bson:"season"`
	Gameweek int              `bson:"gw"`
	Mode     shared.Mode      `bson:"mode"`
	Fixtures []shared.Fixture `bson:"fixtures"`
}

// StoreGameweekResults upserts the results document for one gameweek.
// Final results overwrite live ones for the same gameweek; a final
// document is never replaced by a live one, so published finals stay put.
// Preconditions: receives the results to store
// Postconditions: updates the gw_results collection, or returns an error
func (s *Store) StoreGameweekResults(results GameweekResults) error {
	if len(results.Fixtures) == 0 {
		return fmt.Errorf("no fixtures to store for gw %d", results.Gameweek)
	}
	results.Season = s.Season

	filter := bson.M{"season": s.Season, "gw": results.Gameweek}

	var existing GameweekResults
	err := s.Collections.Results.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing results failed: %w", err)
	}
	if !notFound && existing.Mode == shared.ModeFinal && results.Mode == shared.ModeLive {
		log.Printf("gw %d already has final results, keeping them", results.Gameweek)
		return nil
	}

	opts := options.Update().SetUpsert(true)
	update := bson.D{{Key: "$set", Value: results}}
	if _, err := s.Collections.Results.UpdateOne(context.TODO(), filter, update, opts); err != nil {
		return fmt.Errorf("results upsert failed: %w", err)
	}
	return nil
}

// FetchGameweekResults returns the stored results for one gameweek
// Postconditions: returns the document, or mongo.ErrNoDocuments if the
// gameweek has not been stored yet
func (s *Store) FetchGameweekResults(gw int) (GameweekResults, error) {
	var results GameweekResults
	err := s.Collections.Results.FindOne(context.TODO(), bson.M{"season": s.Season, "gw": gw}).Decode(&results)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return GameweekResults{}, err
		}
		return GameweekResults{}, fmt.Errorf("failed to fetch gw %d results: %w", gw, err)
	}
	return results, nil
}

// FetchResultsUpTo returns every stored fixture up to and including the
// given gameweek, ordered by gameweek
func (s *Store) FetchResultsUpTo(gw int) ([]shared.Fixture, error) {
	filter := bson.M{"season": s.Season, "gw": bson.M{"$lte": gw}}
	opts := options.Find().SetSort(bson.D{{Key: "gw", Value: 1}})

	cursor, err := s.Collections.Results.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer cursor.Close(context.TODO())

	var fixtures []shared.Fixture
	for cursor.Next(context.TODO()) {
		var doc GameweekResults
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode results document: %w", err)
		}
		fixtures = append(fixtures, doc.Fixtures...)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("results cursor failed: %w", err)
	}
	return fixtures, nil
}
