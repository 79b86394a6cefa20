package webfonts_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/guarzo/webfonts/modules/webfonts"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("WEBFONTS_API_KEY", "")
	t.Setenv("WEBFONTS_CACHE_DIR", "")

	cfg, err := webfonts.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sort != "popularity" {
		t.Errorf("expected popularity, got %q", cfg.Sort)
	}
	if cfg.BaseURL != webfonts.DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.CacheDir != webfonts.DefaultCacheDir() {
		t.Errorf("expected default cache dir, got %q", cfg.CacheDir)
	}
	if !strings.HasSuffix(cfg.CacheDir, "fonts") {
		t.Errorf("expected cache dir to end in fonts, got %q", cfg.CacheDir)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("WEBFONTS_API_KEY", "  my-key  ")
	t.Setenv("WEBFONTS_SORT", "trending")
	t.Setenv("WEBFONTS_CACHE_DIR", "/tmp/fonts-cache")
	t.Setenv("WEBFONTS_HTTP_TIMEOUT", "2s")

	cfg, err := webfonts.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "my-key" {
		t.Errorf("expected trimmed key, got %q", cfg.APIKey)
	}
	if cfg.Sort != "trending" {
		t.Errorf("expected trending, got %q", cfg.Sort)
	}
	if cfg.CacheDir != "/tmp/fonts-cache" {
		t.Errorf("unexpected cache dir %q", cfg.CacheDir)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %v", cfg.HTTPTimeout)
	}
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	t.Setenv("WEBFONTS_HTTP_TIMEOUT", "soon")
	if _, err := webfonts.LoadConfig(); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseSortOrder(t *testing.T) {
	for _, o := range webfonts.SortOrders {
		got, err := webfonts.ParseSortOrder(string(o))
		if err != nil || got != o {
			t.Errorf("ParseSortOrder(%q) = %q, %v", o, got, err)
		}
	}

	got, err := webfonts.ParseSortOrder("")
	if err != nil || got != webfonts.SortPopularity {
		t.Errorf("expected default popularity, got %q, %v", got, err)
	}

	if _, err := webfonts.ParseSortOrder("newest"); !errors.Is(err, webfonts.ErrInvalidSortOrder) {
		t.Errorf("expected ErrInvalidSortOrder, got %v", err)
	}
}
