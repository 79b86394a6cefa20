package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const catalogBody = `{"items": [
	{"family": "Roboto", "category": "sans-serif", "variants": ["regular", "italic", "700"],
	 "subsets": ["latin", "cyrillic"], "files": {"regular": "u1", "italic": "u2", "700": "u3"}},
	{"family": "Lora", "category": "serif", "variants": ["regular"],
	 "subsets": ["latin"], "files": {"regular": "l1"}}
]}`

func setupEnv(t *testing.T) *int {
	t.Helper()
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, catalogBody)
	}))
	t.Cleanup(ts.Close)

	t.Setenv("WEBFONTS_API_KEY", "test-key")
	t.Setenv("WEBFONTS_BASE_URL", ts.URL)
	t.Setenv("WEBFONTS_CACHE_DIR", t.TempDir())
	t.Setenv("WEBFONTS_SORT", "alpha")
	return &hits
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_Commands(t *testing.T) {
	hits := setupEnv(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"categories"}, "sans-serif\nserif\n"},
		{[]string{"weights"}, "700\nitalic\nregular\n"},
		{[]string{"subsets"}, "cyrillic\nlatin\n"},
		{[]string{"weight", "400"}, "Roboto\nLora\n"},
		{[]string{"subset", "latin"}, "Roboto\nLora\n"},
		{[]string{"subset", "Cyrillic"}, "Roboto\n"},
		{[]string{"category", "serif"}, "Lora\n"},
		{[]string{"subset", "not-a-real-subset"}, "Error: No fonts exist with the given parameters\n"},
	}
	for _, tt := range tests {
		got, err := runCLI(t, tt.args...)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.args, err)
		}
		if got != tt.want {
			t.Errorf("%v: got %q, want %q", tt.args, got, tt.want)
		}
	}

	// every command after the first is served from fonts.json
	if *hits != 1 {
		t.Errorf("expected 1 catalog request, got %d", *hits)
	}
}

func TestRun_URL(t *testing.T) {
	setupEnv(t)
	got, err := runCLI(t, "-sort", "trending", "url")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "key=test-key") || !strings.Contains(got, "sort=trending") {
		t.Errorf("unexpected url %q", got)
	}
}

func TestRun_CacheDir(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	got, err := runCLI(t, "-cache-dir", dir, "cache-dir")
	if err != nil {
		t.Fatal(err)
	}
	if got != dir+"\n" {
		t.Errorf("got %q, want %q", got, dir+"\n")
	}
}

func TestRun_RefreshKeepsFreshCache(t *testing.T) {
	hits := setupEnv(t)
	for i := 0; i < 2; i++ {
		if _, err := runCLI(t, "refresh"); err != nil {
			t.Fatalf("refresh %d: %v", i, err)
		}
	}
	if *hits != 1 {
		t.Errorf("expected the second refresh to reuse fonts.json, got %d requests", *hits)
	}
}

func TestRun_RemoteFailure(t *testing.T) {
	setupEnv(t)

	got, err := runCLI(t, "-key", "wrong", "weights")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Error: No fonts exist with the given parameters\n" {
		t.Errorf("expected error message, got %q", got)
	}

	if _, err := runCLI(t, "-key", "wrong", "refresh"); err == nil {
		t.Error("expected refresh to report the remote failure")
	}
}

func TestRun_Usage(t *testing.T) {
	setupEnv(t)

	if _, err := runCLI(t); err == nil {
		t.Error("expected error without a command")
	}
	if _, err := runCLI(t, "fonts"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected unknown command error, got %v", err)
	}
	if _, err := runCLI(t, "weight"); err == nil {
		t.Error("expected error for missing argument")
	}
	if _, err := runCLI(t, "-sort", "newest", "weights"); err == nil {
		t.Error("expected error for invalid sort order")
	}
}
