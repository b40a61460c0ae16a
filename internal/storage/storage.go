// Package storage manages the shared MongoDB connection for the service.
// A single connection is opened at startup and shared by every feature
// that needs database access.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config holds MongoDB connection configuration.
type Config struct {
	// URL is the connection string (e.g., mongodb://localhost:27017)
	URL string
	// Database is the database name (default: blogapi)
	Database string
}

// Storage wraps the MongoDB client and database handle.
// Safe for concurrent use.
type Storage struct {
	client   *mongo.Client
	database *mongo.Database
}

// New establishes the MongoDB connection and verifies it with a ping.
// The caller must call Close to release the connection.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("MongoDB URL is required")
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = "blogapi"
	}

	clientOpts := options.Client().ApplyURI(cfg.URL)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Storage{
		client:   client,
		database: client.Database(dbName),
	}, nil
}

// Database returns the underlying *mongo.Database for direct access.
func (s *Storage) Database() *mongo.Database {
	return s.database
}

// Client returns the underlying *mongo.Client for direct access.
func (s *Storage) Client() *mongo.Client {
	return s.client
}

// Close disconnects the client, releasing the connection deterministically.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB client: %w", err)
	}
	return nil
}
