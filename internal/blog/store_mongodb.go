package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const postsCollection = "posts"

// MongoStore implements Store for MongoDB.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a new MongoDB post store.
// It creates the collection indexes if they don't exist.
func NewMongoStore(database *mongo.Database) (*MongoStore, error) {
	if database == nil {
		return nil, fmt.Errorf("database is required")
	}

	collection := database.Collection(postsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Indexes may already exist; queries still work without them
		slog.Warn("failed to create posts indexes", "error", err)
	}

	return &MongoStore{collection: collection}, nil
}

// Insert stores a single post, assigning ID and Created when unset.
func (s *MongoStore) Insert(ctx context.Context, post *Post) error {
	if post == nil {
		return fmt.Errorf("post is required")
	}
	prepareForInsert(post)

	if _, err := s.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// InsertMany stores posts as a single ordered bulk write. A rejected
// document aborts the operation and the rejection is surfaced.
func (s *MongoStore) InsertMany(ctx context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}

	docs := make([]interface{}, len(posts))
	for i, p := range posts {
		if p == nil {
			return fmt.Errorf("post is required")
		}
		prepareForInsert(p)
		docs[i] = p
	}

	opts := options.InsertMany().SetOrdered(true)
	if _, err := s.collection.InsertMany(ctx, docs, opts); err != nil {
		return fmt.Errorf("failed to insert posts: %w", err)
	}
	return nil
}

// FindByID retrieves one post by id.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*Post, error) {
	var post Post
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post %s: %w", id, err)
	}
	return &post, nil
}

// Replace overwrites the stored record with the same id.
func (s *MongoStore) Replace(ctx context.Context, post *Post) error {
	if post == nil || post.ID == "" {
		return fmt.Errorf("post id is required")
	}

	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return fmt.Errorf("failed to replace post %s: %w", post.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the post with the given id.
func (s *MongoStore) DeleteByID(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all posts ordered by created desc.
func (s *MongoStore) List(ctx context.Context) ([]*Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	posts := []*Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Count returns the number of stored posts.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// DropAll removes every stored post. Errors are returned to the caller
// rather than logged and swallowed: a failed drop corrupts the
// preconditions of whatever runs next.
func (s *MongoStore) DropAll(ctx context.Context) error {
	if _, err := s.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to drop posts: %w", err)
	}
	return nil
}
