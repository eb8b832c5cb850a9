package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mush1e/drunken-diver/internal/converter"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"DIVER_ADDR", "DIVER_WIDTH", "DIVER_DIGEST", "DIVER_COLOR", "DIVER_MAX_UPLOAD_MB", "DIVER_STREAM_INTERVAL_MS"} {
		unsetenv(t, k)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Addr:           ":8080",
		Width:          16,
		Digest:         converter.DigestSHA256,
		Color:          converter.ColorAuto,
		MaxUploadBytes: 64 << 20,
		StreamInterval: 100 * time.Millisecond,
	}
	if cfg != want {
		t.Fatalf("got %#v, want %#v", cfg, want)
	}
	if opts := cfg.Options(); opts.Width != 16 || opts.Digest != converter.DigestSHA256 || opts.MaxUpload != 64<<20 {
		t.Fatalf("unexpected options %#v", opts)
	}
}

func TestLoadReadsDotEnvFromParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("DIVER_WIDTH=32\nDIVER_DIGEST=raw\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, sub)
	unsetenv(t, "DIVER_WIDTH")
	unsetenv(t, "DIVER_DIGEST")
	t.Setenv("DIVER_COLOR", "never")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 32 || cfg.Digest != converter.DigestRaw || cfg.Color != converter.ColorNever {
		t.Fatalf("expected .env values, got %#v", cfg)
	}
}

func TestLoadEnvironmentWinsOverDotEnv(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("DIVER_WIDTH=32\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, root)
	t.Setenv("DIVER_WIDTH", "8")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 8 {
		t.Fatalf("width = %d, want 8", cfg.Width)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	tests := []struct{ key, value string }{
		{"DIVER_WIDTH", "abc"},
		{"DIVER_WIDTH", "0"},
		{"DIVER_DIGEST", "crc32"},
		{"DIVER_COLOR", "rainbow"},
		{"DIVER_MAX_UPLOAD_MB", "-1"},
		{"DIVER_STREAM_INTERVAL_MS", "0"},
	}
	chdir(t, t.TempDir())
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
