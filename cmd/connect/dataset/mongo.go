package dataset

import (
	"context"
	"fmt"

	"github.com/ardanlabs/connect4ml/foundation/mongodb"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Names of the database and collection holding samples.
const (
	DBName         = "connect4"
	CollectionName = "samples"
)

// Document represents a sample as it is stored in MongoDB.
type Document struct {
	RunID    string    `bson:"run_id"`
	Game     int       `bson:"game"`
	Move     int       `bson:"move"`
	Features []float64 `bson:"features"`
	Label    int       `bson:"label"`
}

type inserter interface {
	InsertMany(ctx context.Context, documents []any, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoSink stores samples in a MongoDB collection. Every sink gets its own
// run id so the samples of separate runs can be told apart.
type MongoSink struct {
	col   inserter
	runID string
}

// NewMongoSink constructs a sink over the samples collection of the
// specified client.
func NewMongoSink(ctx context.Context, client *mongo.Client) (*MongoSink, error) {
	db := client.Database(DBName)

	col, err := mongodb.CreateCollection(ctx, db, CollectionName)
	if err != nil {
		return nil, fmt.Errorf("createCollection: %w", err)
	}

	if err := mongodb.CreateIndex(ctx, col, true, "run_id", "game", "move"); err != nil {
		return nil, fmt.Errorf("createIndex: %w", err)
	}

	return newMongoSink(col, uuid.NewString()), nil
}

func newMongoSink(col inserter, runID string) *MongoSink {
	return &MongoSink{
		col:   col,
		runID: runID,
	}
}

// RunID returns the id stamped on every document written by the sink.
func (ms *MongoSink) RunID() string {
	return ms.runID
}

// Write implements the Sink interface.
func (ms *MongoSink) Write(ctx context.Context, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	opts := options.InsertMany().SetOrdered(true)
	if _, err := ms.col.InsertMany(ctx, ms.documents(samples), opts); err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

// Close implements the Sink interface. The client is owned by the caller.
func (*MongoSink) Close() error {
	return nil
}

func (ms *MongoSink) documents(samples []Sample) []any {
	docs := make([]any, len(samples))
	for i, s := range samples {
		docs[i] = Document{
			RunID:    ms.runID,
			Game:     s.Game,
			Move:     s.Move,
			Features: s.Features,
			Label:    s.Label,
		}
	}

	return docs
}
