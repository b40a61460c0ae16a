//go:build integration

// Package dbassert provides database assertion helpers for integration
// tests. Persisted state is queried directly from MongoDB, so scenarios
// never have to trust an HTTP response as evidence of persistence.
package dbassert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const postsCollection = "posts"

// PostRecord mirrors the persisted post shape for test assertions.
// We use a separate type to avoid coupling tests to internal
// implementation details.
type PostRecord struct {
	ID              string
	Title           string
	Content         string
	AuthorFirstName string
	AuthorLastName  string
	Created         time.Time
}

// FindPostByID looks a post up directly in MongoDB. Returns nil if no
// record matches — callers assert presence or absence explicitly.
func FindPostByID(t *testing.T, db *mongo.Database, id string) *PostRecord {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	err := db.Collection(postsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	require.NoError(t, err, "failed to query post by id")

	record := bsonToPostRecord(doc)
	return &record
}

// CountPosts returns the store's own record count.
func CountPosts(t *testing.T, db *mongo.Database) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := db.Collection(postsCollection).CountDocuments(ctx, bson.M{})
	require.NoError(t, err, "failed to count posts")
	return count
}

// ClearPosts deletes all post records. Used as the per-scenario
// teardown; a rejected drop fails the run rather than being swallowed,
// since a silent failure would corrupt every following scenario's
// preconditions.
func ClearPosts(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection(postsCollection).DeleteMany(ctx, bson.M{})
	require.NoError(t, err, "teardown failed: could not clear posts")
}

// bsonToPostRecord converts a BSON document to a PostRecord.
func bsonToPostRecord(doc bson.M) PostRecord {
	record := PostRecord{}

	if v, ok := doc["_id"].(string); ok {
		record.ID = v
	}
	if v, ok := doc["title"].(string); ok {
		record.Title = v
	}
	if v, ok := doc["content"].(string); ok {
		record.Content = v
	}
	if v, ok := doc["created"].(time.Time); ok {
		record.Created = v
	} else if v, ok := doc["created"].(bson.DateTime); ok {
		record.Created = v.Time()
	}

	if author, ok := doc["author"].(bson.M); ok {
		if v, ok := author["first_name"].(string); ok {
			record.AuthorFirstName = v
		}
		if v, ok := author["last_name"].(string); ok {
			record.AuthorLastName = v
		}
	}

	return record
}
