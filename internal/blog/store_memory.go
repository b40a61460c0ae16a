package blog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps posts in process memory.
// Data survives across requests but not process restarts.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*Post
}

// NewMemoryStore creates an empty in-memory post store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*Post),
	}
}

// Insert stores a single post, assigning ID and Created when unset.
func (s *MemoryStore) Insert(_ context.Context, post *Post) error {
	if post == nil {
		return fmt.Errorf("post is required")
	}
	prepareForInsert(post)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[post.ID]; exists {
		return fmt.Errorf("post already exists: %s", post.ID)
	}
	s.items[post.ID] = clonePost(post)
	return nil
}

// InsertMany stores posts as one operation. All-or-nothing: duplicate
// ids are rejected before any post is written.
func (s *MemoryStore) InsertMany(_ context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}

	for _, p := range posts {
		if p == nil {
			return fmt.Errorf("post is required")
		}
		prepareForInsert(p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range posts {
		if _, exists := s.items[p.ID]; exists {
			return fmt.Errorf("post already exists: %s", p.ID)
		}
	}
	for _, p := range posts {
		s.items[p.ID] = clonePost(p)
	}
	return nil
}

// FindByID retrieves one post by id.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*Post, error) {
	s.mu.RLock()
	p, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return clonePost(p), nil
}

// Replace overwrites the stored record with the same id.
func (s *MemoryStore) Replace(_ context.Context, post *Post) error {
	if post == nil || post.ID == "" {
		return fmt.Errorf("post id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[post.ID]; !exists {
		return ErrNotFound
	}
	s.items[post.ID] = clonePost(post)
	return nil
}

// DeleteByID removes the post with the given id.
func (s *MemoryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// List returns posts ordered by created desc, id desc.
func (s *MemoryStore) List(_ context.Context) ([]*Post, error) {
	s.mu.RLock()
	all := make([]*Post, 0, len(s.items))
	for _, p := range s.items {
		all = append(all, clonePost(p))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Created.Equal(all[j].Created) {
			return all[i].ID > all[j].ID
		}
		return all[i].Created.After(all[j].Created)
	})

	return all, nil
}

// Count returns the number of stored posts.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}

// DropAll removes every stored post.
func (s *MemoryStore) DropAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*Post)
	return nil
}

// prepareForInsert assigns the store-owned fields when unset.
func prepareForInsert(p *Post) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
}

func clonePost(p *Post) *Post {
	c := *p
	return &c
}
