package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"xwordcodec/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "xwordcodec")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.KeyStore.Path != filepath.Join(wantData, "keys.db") {
		t.Fatalf("unexpected key store path: %q", cfg.KeyStore.Path)
	}
	if !cfg.Decode.BruteForce {
		t.Fatal("expected brute force enabled by default")
	}
	if strings.Join(cfg.Decode.SeedMarkers, ",") != "ye,we" {
		t.Fatalf("unexpected seed markers: %v", cfg.Decode.SeedMarkers)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestDefaultConfigPathHonoursXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	path, err := config.DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if want := filepath.Join(base, "xwordcodec", "config.toml"); path != want {
		t.Fatalf("DefaultConfigPath = %q, want %q", path, want)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg := config.Default()
	cfg.Paths.DataDir = "~/puzzles"
	cfg.Decode.SeedMarkers = []string{}
	cfg.Decode.MaxExpansions = 5000
	cfg.Logging.Format = "JSON"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if loaded.Paths.DataDir != filepath.Join(tempHome, "puzzles") {
		t.Fatalf("unexpected data dir: %q", loaded.Paths.DataDir)
	}
	if len(loaded.Decode.SeedMarkers) != 0 {
		t.Fatalf("expected seeding disabled, got %v", loaded.Decode.SeedMarkers)
	}
	if loaded.Decode.MaxExpansions != 5000 {
		t.Fatalf("unexpected max expansions: %d", loaded.Decode.MaxExpansions)
	}
	if loaded.Logging.Format != "json" {
		t.Fatalf("expected lower-cased log format, got %q", loaded.Logging.Format)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "xwordcodec.yaml")
	content := "decode:\n  brute_force: false\n  known_keys: 3\noutput:\n  preserve_html: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected YAML config to be found")
	}
	if cfg.Decode.BruteForce {
		t.Fatal("expected brute force disabled from YAML")
	}
	if cfg.Decode.KnownKeys != 3 {
		t.Fatalf("unexpected known keys: %d", cfg.Decode.KnownKeys)
	}
	if !cfg.Output.PreserveHTML {
		t.Fatal("expected preserve_html from YAML")
	}
	if !cfg.Output.CleanText {
		t.Fatal("expected unspecified clean_text to keep its default")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative timeout", func(c *config.Config) { c.Decode.SearchTimeoutSeconds = -1 }, "decode.search_timeout_seconds"},
		{"long marker", func(c *config.Config) { c.Decode.SeedMarkers = []string{"yes"} }, "decode.seed_markers"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "chatty" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLogLevelEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XWORDCODEC_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env override, got %q", cfg.Logging.Level)
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, false); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
	if err := config.CreateSample(path, false); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist for an existing file, got %v", err)
	}
	if err := config.CreateSample(path, true); err != nil {
		t.Fatalf("CreateSample overwrite: %v", err)
	}
}

func TestLoadPicksProjectYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("xwordcodec.yaml", []byte("decode:\n  known_keys: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || filepath.Base(path) != "xwordcodec.yaml" {
		t.Fatalf("expected project yaml to be picked, got %s (exists=%v)", path, exists)
	}
	if cfg.Decode.KnownKeys != 4 {
		t.Fatalf("known_keys = %d, want 4", cfg.Decode.KnownKeys)
	}
}
