package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"daraz_reviews/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DARAZ_ATTEMPTS", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	c := shared.Load()
	if c.DarazAttempts != 1 {
		t.Fatalf("expected single attempt by default, got %d", c.DarazAttempts)
	}
	if c.DarazTimeoutDuration() != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", c.DarazTimeoutDuration())
	}
	if c.CacheTTLDuration() != 0 {
		t.Fatalf("expected cache disabled by default")
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "http_addr: \":9999\"\ncache_ttl_seconds: 120\nsentiment_backend: lexicon\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("CACHE_TTL_SECONDS", "")

	c := shared.Load()
	if c.HTTPAddr != ":7000" {
		t.Fatalf("env should override file, got %q", c.HTTPAddr)
	}
	if c.CacheTTL != 120 || c.SentimentBackend != "lexicon" {
		t.Fatalf("file values not applied: %+v", c)
	}
}
