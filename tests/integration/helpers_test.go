//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"blogapi/internal/blog"
	"blogapi/tests/integration/dbassert"
)

// API endpoints
const (
	postsPath  = "/posts"
	healthPath = "/health"
)

// newScenario creates a test server fixture and registers the
// per-scenario teardown: all posts are dropped after the scenario,
// success or failure, so no state leaks into the next one. A failing
// drop fails the run via the cleanup's require.
func newScenario(t *testing.T) *TestServerFixture {
	t.Helper()

	fixture := SetupTestServer(t)
	t.Cleanup(func() {
		dbassert.ClearPosts(t, fixture.MongoDb)
		fixture.Shutdown(t)
	})
	return fixture
}

// seedPosts generates n randomized-but-well-formed posts and inserts
// them as a single bulk operation. Returns the inserted posts with
// their store-assigned ids.
func seedPosts(t *testing.T, fixture *TestServerFixture, n int) []*blog.Post {
	t.Helper()

	posts := make([]*blog.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, &blog.Post{
			Title:   gofakeit.Sentence(4),
			Content: gofakeit.Paragraph(1, 3, 8, " "),
			Author: blog.Author{
				FirstName: gofakeit.FirstName(),
				LastName:  gofakeit.LastName(),
			},
		})
	}

	err := fixture.App.Store().InsertMany(GetTestContext(), posts)
	require.NoError(t, err, "bulk seed insert rejected")

	return posts
}

// sendRequest sends a request with an optional JSON payload and returns
// the response. Assertions only run once the full response is available.
func sendRequest(t *testing.T, method, url string, payload interface{}) *http.Response {
	t.Helper()

	var req *http.Request
	var err error

	if payload != nil {
		body, marshalErr := json.Marshal(payload)
		require.NoError(t, marshalErr, "failed to marshal request payload")
		req, err = http.NewRequest(method, url, bytes.NewReader(body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	require.NoError(t, err, "failed to create request")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to send request")

	return resp
}

// decodeRecord decodes a single-record response body into a raw map so
// the exact field set can be asserted.
func decodeRecord(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var record map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record), "failed to decode record body")
	return record
}

// decodeRecordList decodes an array-of-records response body.
func decodeRecordList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()

	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records), "failed to decode record list body")
	return records
}

// closeBody is a helper to close response body in defer statements.
func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}

// newCreatePayload builds a well-formed POST /posts payload.
func newCreatePayload(title, content, firstName, lastName string) map[string]any {
	return map[string]any{
		"title":   title,
		"content": content,
		"author": map[string]any{
			"firstName": firstName,
			"lastName":  lastName,
		},
	}
}
