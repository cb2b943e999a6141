package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds the MongoDB connection and the selected database
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
	log      *slog.Logger
}

// InitDB connects to MongoDB and pings the primary
func InitDB(ctx context.Context, cfg *Config, log *slog.Logger) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("connected to MongoDB", slog.String("database", cfg.MongoDatabase))
	return &DB{
		Client:   client,
		Database: client.Database(cfg.MongoDatabase),
		log:      log,
	}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db == nil || db.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Client.Disconnect(ctx); err != nil {
		db.log.Error("error closing MongoDB connection", slog.Any("error", err))
		return
	}
	db.log.Info("MongoDB connection closed")
}
