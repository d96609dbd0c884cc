/* store.go
 * Contains the Store struct and NewStore function. The methods for this
 * package are split across results.go and snapshots.go, one file per
 * collection. The store only persists what the engines derive; it never
 * computes anything itself.
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Season      string
	Collections struct {
		Results   *mongo.Collection
		Snapshots *mongo.Collection
	}
}

// NewStore initialises the db connection and collection handles.
// Preconditions: receives the database name, the mongo URI and a season
// label used to key documents
// Postconditions: returns a pointer to the Store, or an error if it occurs
func NewStore(dbName string, mongoURI string, season string) (*Store, error) {
	if dbName == "" || season == "" {
		return nil, fmt.Errorf("dbName and season are required")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
		Season:   season,
	}
	s.Collections.Results = db.Collection("gw_results")
	s.Collections.Snapshots = db.Collection("snapshots")
	return s, nil
}
