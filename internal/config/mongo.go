package config

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrConnection marks a failure to reach the document store at boot.
var ErrConnection = errors.New("store connection failed")

var (
	MongoClient *mongo.Client
	DB          *mongo.Database
)

// InitMongo connects to MongoDB and verifies the connection with a ping.
func InitMongo(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("%w: ping: %w", ErrConnection, err)
	}

	MongoClient = client
	DB = client.Database(cfg.MongoDB)
	logger().Info("✅ Connected to MongoDB successfully",
		zap.String("url", cfg.RedactedMongoURL()),
		zap.String("database", cfg.MongoDB))
	return nil
}
