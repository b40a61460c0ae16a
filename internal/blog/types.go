// Package blog provides core types and storage interfaces for blog posts.
package blog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Author is the structured name pair persisted with every post.
// The API never surfaces it directly; read representations flatten
// it to a single display string.
type Author struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
}

// DisplayName returns the flattened "First Last" form used in API responses.
func (a Author) DisplayName() string {
	return a.FirstName + " " + a.LastName
}

// Post is the persisted blog post record.
// ID is assigned by the store on insert and is immutable afterwards.
type Post struct {
	ID      string    `bson:"_id,omitempty" json:"id"`
	Title   string    `bson:"title" json:"title"`
	Content string    `bson:"content" json:"content"`
	Author  Author    `bson:"author" json:"author"`
	Created time.Time `bson:"created" json:"created"`
}

// PostResponse is the API read representation of a post.
// Author is the concatenation "{firstName} {lastName}".
type PostResponse struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
}

// Response converts a persisted post to its API representation.
func (p *Post) Response() PostResponse {
	return PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  p.Author.DisplayName(),
		Created: p.Created,
	}
}

// CreatePostRequest is the payload for POST /posts.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  Author `json:"author"`
}

// Validate checks that all required fields are present and non-empty.
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Author, validation.By(validateAuthor)),
	)
}

// Post builds a new post from the request. ID and Created are left
// unset for the store to assign.
func (r CreatePostRequest) Post() *Post {
	return &Post{
		Title:   r.Title,
		Content: r.Content,
		Author:  r.Author,
	}
}

// UpdatePostRequest is the payload for PUT /posts/:id. Fields left empty
// keep their current values; the record id comes from the path, and any
// id in the body is ignored.
type UpdatePostRequest struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Author  *Author `json:"author"`
}

// Validate rejects payloads that would update nothing and partial
// author pairs (author must always stay a full first/last pair).
func (r UpdatePostRequest) Validate() error {
	if r.Title == "" && r.Content == "" && r.Author == nil {
		return validation.NewError("validation_empty_update", "at least one field must be provided")
	}
	if r.Author != nil {
		return validateAuthor(*r.Author)
	}
	return nil
}

// ApplyTo overlays the non-empty request fields onto an existing post.
// ID and Created are never touched.
func (r UpdatePostRequest) ApplyTo(p *Post) {
	if r.Title != "" {
		p.Title = r.Title
	}
	if r.Content != "" {
		p.Content = r.Content
	}
	if r.Author != nil {
		p.Author = *r.Author
	}
}

func validateAuthor(value interface{}) error {
	author, _ := value.(Author)
	return validation.ValidateStruct(&author,
		validation.Field(&author.FirstName, validation.Required),
		validation.Field(&author.LastName, validation.Required),
	)
}
