// server/internal/database/mongo.go
package database

import (
	"context"
	"time"

	"ecofreight-api-server/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens the Mongo client, pings it, and returns the configured database.
func Connect(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client.Database(cfg.DBName), nil
}

// EnsureIndexes creates the indexes the query paths rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("shipments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "trackingID", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("sensor_data").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shipmentID", Value: 1}, {Key: "recordedAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("shipment_events").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shipmentID", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
