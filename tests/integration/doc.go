// Package integration provides integration tests that verify database state
// after HTTP requests. Tests run against a real MongoDB instance via
// testcontainers.
//
// Run with: go test -tags=integration ./tests/integration/...
package integration
