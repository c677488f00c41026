// Package mongodb provides support for accessing MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect attempts to connect to a mongo db instance. If the user name is
// empty, no credentials are provided.
func Connect(ctx context.Context, host string, userName string, password string) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(host)
	if userName != "" {
		opts.SetAuth(options.Credential{
			Username: userName,
			Password: password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	return client, nil
}

// CreateCollection will create the specified collection in the specified
// database if it doesn't already exist.
func CreateCollection(ctx context.Context, db *mongo.Database, collectionName string) (*mongo.Collection, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listCollectionNames: %w", err)
	}

	if slices.Contains(names, collectionName) {
		return db.Collection(collectionName), nil
	}

	if err := db.CreateCollection(ctx, collectionName); err != nil {
		return nil, fmt.Errorf("createCollection: %w", err)
	}

	return db.Collection(collectionName), nil
}

// CreateIndex creates an index over the specified keys, applied in order.
func CreateIndex(ctx context.Context, col *mongo.Collection, unique bool, keys ...string) error {
	var d bson.D
	for _, k := range keys {
		d = append(d, bson.E{Key: k, Value: 1})
	}

	indexModel := mongo.IndexModel{
		Keys:    d,
		Options: options.Index().SetUnique(unique),
	}

	if _, err := col.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("createIndex: %w", err)
	}

	return nil
}
