//go:build integration

package dbassert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequiredResponseFields is the exact key set every record returned by
// the API must carry — no fewer, no extras.
var RequiredResponseFields = []string{"id", "title", "content", "author", "created"}

// ExpectedPost contains expected values for persisted-record assertions.
// Zero values are not checked, allowing partial matching.
type ExpectedPost struct {
	Title           string
	Content         string
	AuthorFirstName string
	AuthorLastName  string
}

// AssertResponseFieldsExact verifies that a record body contains exactly
// the documented field set.
func AssertResponseFieldsExact(t *testing.T, record map[string]any) {
	t.Helper()

	for _, field := range RequiredResponseFields {
		assert.Contains(t, record, field, "record is missing field %q", field)
	}
	assert.Len(t, record, len(RequiredResponseFields),
		"record must contain exactly %v, got %v", RequiredResponseFields, record)
}

// AssertPostMatches verifies that the persisted record matches expected
// values. Only non-zero expected values are checked.
func AssertPostMatches(t *testing.T, expected ExpectedPost, actual *PostRecord) {
	t.Helper()
	require.NotNil(t, actual, "expected a persisted post, found none")

	if expected.Title != "" {
		assert.Equal(t, expected.Title, actual.Title, "title mismatch")
	}
	if expected.Content != "" {
		assert.Equal(t, expected.Content, actual.Content, "content mismatch")
	}
	if expected.AuthorFirstName != "" {
		assert.Equal(t, expected.AuthorFirstName, actual.AuthorFirstName, "author first name mismatch")
	}
	if expected.AuthorLastName != "" {
		assert.Equal(t, expected.AuthorLastName, actual.AuthorLastName, "author last name mismatch")
	}
}

// AssertPostFieldCompleteness verifies that all store-owned fields are
// populated on a persisted record.
func AssertPostFieldCompleteness(t *testing.T, record *PostRecord) {
	t.Helper()
	require.NotNil(t, record, "expected a persisted post, found none")

	assert.NotEmpty(t, record.ID, "post id should not be empty")
	assert.NotEmpty(t, record.Title, "post title should not be empty")
	assert.NotEmpty(t, record.Content, "post content should not be empty")
	assert.NotEmpty(t, record.AuthorFirstName, "author first name should not be empty")
	assert.NotEmpty(t, record.AuthorLastName, "author last name should not be empty")
	assert.False(t, record.Created.IsZero(), "post created timestamp should not be zero")
}

// AssertPostAbsent verifies that no record with the given id survived.
func AssertPostAbsent(t *testing.T, record *PostRecord) {
	t.Helper()
	assert.Nil(t, record, "expected post to be gone, but it is still persisted")
}
