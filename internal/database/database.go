package database

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the API.
const (
	UsersCollection = "users"
	TasksCollection = "tasks"
	GoalsCollection = "goals"
)

// Connect opens a MongoDB client and verifies connectivity with a ping.
// Use a longer timeout so Atlas connections have time to establish.
func Connect(ctx context.Context, mongoURI, dbName string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	slog.Info("connected to MongoDB", "database", dbName)
	return client, client.Database(dbName), nil
}

// Disconnect closes the MongoDB client with a bounded timeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the query indexes the handlers rely on: unique email
// lookup for login, and owner-filter scans on tasks and goals.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	owned := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("idx_user_id").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "tempUserId", Value: 1}},
			Options: options.Index().SetName("idx_temp_user_id").SetSparse(true),
		},
	}
	for _, col := range []string{TasksCollection, GoalsCollection} {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, owned); err != nil {
			return err
		}
	}
	return nil
}
