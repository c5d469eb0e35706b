package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"xwordcodec/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains data and log directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir" yaml:"data_dir"`
	LogDir  string `toml:"log_dir" yaml:"log_dir"`
}

// Decode controls which payload decoding strategies run and how far the key
// search may go.
type Decode struct {
	BruteForce           bool     `toml:"brute_force" yaml:"brute_force"`
	SeedMarkers          []string `toml:"seed_markers" yaml:"seed_markers"`
	SearchTimeoutSeconds int      `toml:"search_timeout_seconds" yaml:"search_timeout_seconds"`
	MaxExpansions        int      `toml:"max_expansions" yaml:"max_expansions"`
	KnownKeys            int      `toml:"known_keys" yaml:"known_keys"`
}

// KeyStore contains configuration for the known-key and history database.
type KeyStore struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"` // Default: <data_dir>/keys.db
}

// Output contains configuration for the canonical document handed to writers.
type Output struct {
	CleanText    bool   `toml:"clean_text" yaml:"clean_text"`
	PreserveHTML bool   `toml:"preserve_html" yaml:"preserve_html"`
	Dir          string `toml:"dir" yaml:"dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format" yaml:"format"`
	Level      string `toml:"level" yaml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
}

// Config encapsulates all configuration values for xwordcodec.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - Decode: strategy toggles and key search limits
//   - KeyStore: known keys and decode history database
//   - Output: text cleanup and output directory
//   - Logging: log format, level, and rotation
type Config struct {
	Paths    Paths    `toml:"paths" yaml:"paths"`
	Decode   Decode   `toml:"decode" yaml:"decode"`
	KeyStore KeyStore `toml:"key_store" yaml:"key_store"`
	Output   Output   `toml:"output" yaml:"output"`
	Logging  Logging  `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return expandPath(filepath.Join(base, "xwordcodec", "config.toml"))
	}
	return expandPath("~/.config/xwordcodec/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := decodeInto(&cfg, file, resolvedPath); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decodeInto(cfg *Config, r io.Reader, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err := yaml.NewDecoder(r).Decode(cfg)
		if errors.Is(err, io.EOF) {
			return nil // empty file keeps defaults
		}
		return err
	default:
		return toml.NewDecoder(r).Decode(cfg)
	}
}

// resolveConfigPath returns the file to load and whether it exists. An
// explicit path is used as given; otherwise the first existing candidate wins
// and the XDG default is reported when none exist.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		return expanded, exists, err
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	candidates := []string{
		defaultPath,
		strings.TrimSuffix(defaultPath, ".toml") + ".yaml",
		"xwordcodec.toml",
		"xwordcodec.yaml",
	}
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(abs)
		if err != nil {
			return "", false, err
		}
		if exists {
			return abs, true, nil
		}
	}
	return defaultPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SearchTimeout returns the key search deadline, or zero when unbounded.
func (c *Config) SearchTimeout() time.Duration {
	if c.Decode.SearchTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Decode.SearchTimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the annotated sample configuration to path. Without
// overwrite an existing file is left alone and fs.ErrExist is returned.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		return fileutil.WriteNew(path, []byte(sampleConfig), 0o644)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
