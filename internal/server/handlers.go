// Package server provides HTTP handlers and server setup for the blog API.
package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/blog"
)

// Handler holds the HTTP handlers
type Handler struct {
	store blog.Store
}

// NewHandler creates a new handler backed by the given store
func NewHandler(store blog.Store) *Handler {
	return &Handler{
		store: store,
	}
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ListPosts handles GET /posts
func (h *Handler) ListPosts(c echo.Context) error {
	posts, err := h.store.List(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]blog.PostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, p.Response())
	}

	return c.JSON(http.StatusOK, resp)
}

// CreatePost handles POST /posts
func (h *Handler) CreatePost(c echo.Context) error {
	var req blog.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, blog.NewInvalidRequestError("invalid request body: "+err.Error(), err))
	}

	if err := req.Validate(); err != nil {
		return handleError(c, blog.NewInvalidRequestError(err.Error(), err))
	}

	post := req.Post()
	if err := h.store.Insert(c.Request().Context(), post); err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusCreated, post.Response())
}

// UpdatePost handles PUT /posts/:id. The record id is taken from the
// path; an id in the body is ignored. Empty fields keep their stored
// values.
func (h *Handler) UpdatePost(c echo.Context) error {
	id := c.Param("id")

	var req blog.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, blog.NewInvalidRequestError("invalid request body: "+err.Error(), err))
	}

	if err := req.Validate(); err != nil {
		return handleError(c, blog.NewInvalidRequestError(err.Error(), err))
	}

	post, err := h.store.FindByID(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	req.ApplyTo(post)

	if err := h.store.Replace(c.Request().Context(), post); err != nil {
		return handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeletePost handles DELETE /posts/:id
func (h *Handler) DeletePost(c echo.Context) error {
	id := c.Param("id")

	if err := h.store.DeleteByID(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// handleError converts domain errors to appropriate HTTP responses
func handleError(c echo.Context, err error) error {
	if errors.Is(err, blog.ErrNotFound) {
		notFound := blog.NewNotFoundError("post not found")
		return c.JSON(notFound.HTTPStatusCode(), notFound.ToJSON())
	}

	var apiErr *blog.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.HTTPStatusCode(), apiErr.ToJSON())
	}

	// Fallback for unexpected errors
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]interface{}{
			"type":    blog.ErrorTypeInternal,
			"message": "an unexpected error occurred",
		},
	})
}
