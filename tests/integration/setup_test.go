//go:build integration

package integration

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blogapi/config"
	"blogapi/internal/app"
)

// TestServerFixture holds test server resources for one scenario.
type TestServerFixture struct {
	// ServerURL is the base URL of the test server
	ServerURL string

	// App is the running application
	App *app.App

	// MongoDb is the MongoDB database (for DB assertions)
	MongoDb *mongo.Database

	cancelFunc context.CancelFunc
}

// SetupTestServer starts the service against the container's test database
// and returns a request-capable fixture. It blocks until the service
// reports healthy, so no scenario runs before bring-up completes.
func SetupTestServer(t *testing.T) *TestServerFixture {
	t.Helper()

	ctx, cancel := context.WithCancel(GetTestContext())

	port, err := findAvailablePort()
	require.NoError(t, err, "failed to find available port")

	appCfg := buildAppConfig(port)

	application, err := app.New(ctx, appCfg)
	require.NoError(t, err, "failed to create app")

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	go func() {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		_ = application.Start(addr)
	}()

	err = waitForServer(serverURL + "/health")
	require.NoError(t, err, "server failed to become healthy")

	return &TestServerFixture{
		ServerURL:  serverURL,
		App:        application,
		MongoDb:    GetMongoDatabase(),
		cancelFunc: cancel,
	}
}

// Shutdown gracefully shuts down the test server, releasing the
// listening socket and database connection.
func (f *TestServerFixture) Shutdown(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if f.App != nil {
		_ = f.App.Shutdown(ctx)
	}

	if f.cancelFunc != nil {
		f.cancelFunc()
	}
}

// buildAppConfig creates an application config pointing at the test
// database. The config is built in code: the test-database URL must
// never fall back to the production default.
func buildAppConfig(port int) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: fmt.Sprintf("%d", port),
		},
		Storage: config.StorageConfig{
			URL:      GetMongoURL(),
			Database: testDatabase,
		},
		Metrics: config.MetricsConfig{
			Enabled: false,
		},
	}
}

// waitForServer waits for the server to become healthy.
func waitForServer(healthURL string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < 50; i++ {
		resp, err := client.Get(healthURL)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become healthy within timeout")
}

// findAvailablePort finds an available TCP port on loopback.
func findAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = listener.Close() }()
	return listener.Addr().(*net.TCPAddr).Port, nil
}
