package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	for _, key := range []string{"PORT", "MONGODB_URL", "MONGODB_DATABASE", "METRICS_ENABLED"} {
		_ = os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Storage.URL != "mongodb://localhost:27017" {
		t.Errorf("expected default MongoDB URL, got %s", cfg.Storage.URL)
	}
	if cfg.Storage.Database != "blogapi" {
		t.Errorf("expected default database blogapi, got %s", cfg.Storage.Database)
	}
	if cfg.Metrics.Enabled {
		t.Error("expected metrics disabled by default")
	}
	if cfg.Metrics.Endpoint != "/metrics" {
		t.Errorf("expected default metrics endpoint /metrics, got %s", cfg.Metrics.Endpoint)
	}
	if cfg.Server.BodySizeLimit != DefaultBodySizeLimit {
		t.Errorf("expected default body size limit %d, got %d", DefaultBodySizeLimit, cfg.Server.BodySizeLimit)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	viper.Reset()

	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_URL", "mongodb://db.example:27017")
	t.Setenv("MONGODB_DATABASE", "blogapi_test")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Storage.URL != "mongodb://db.example:27017" {
		t.Errorf("expected env MongoDB URL, got %s", cfg.Storage.URL)
	}
	if cfg.Storage.Database != "blogapi_test" {
		t.Errorf("expected database blogapi_test, got %s", cfg.Storage.Database)
	}
	if !cfg.Metrics.Enabled {
		t.Error("expected metrics enabled from env")
	}
}
