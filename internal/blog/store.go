package blog

import (
	"context"
)

// Store is the repository abstraction over post persistence. It exists so
// the HTTP layer and the test harness can be retargeted at any backend.
// Implementations must be safe for concurrent use.
type Store interface {
	// Insert stores a single post. An empty ID and zero Created are
	// assigned by the store before the write.
	Insert(ctx context.Context, post *Post) error

	// InsertMany stores posts as a single bulk operation. Either all
	// posts are inserted or an error is returned; partial failures are
	// not swallowed.
	InsertMany(ctx context.Context, posts []*Post) error

	// FindByID returns the post with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Post, error)

	// Replace overwrites the stored record with the same id.
	// Returns ErrNotFound if no such record exists.
	Replace(ctx context.Context, post *Post) error

	// DeleteByID removes the post with the given id.
	// Returns ErrNotFound if no such record exists.
	DeleteByID(ctx context.Context, id string) error

	// List returns all posts ordered by creation time descending.
	List(ctx context.Context) ([]*Post, error)

	// Count returns the number of stored posts.
	Count(ctx context.Context) (int64, error)

	// DropAll unconditionally removes every stored post.
	DropAll(ctx context.Context) error
}
