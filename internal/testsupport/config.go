package testsupport

import (
	"path/filepath"
	"testing"

	"xwordcodec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.KeyStore.Path = filepath.Join(base, "data", "keys.db")
	cfgVal.Output.Dir = filepath.Join(base, "out")
	cfgVal.Logging.MaxSizeMB = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithBruteForce toggles the key search strategy.
func WithBruteForce(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Decode.BruteForce = enabled
	}
}

// WithSeedMarkers replaces the search seed markers. No markers disables seeding.
func WithSeedMarkers(markers ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Decode.SeedMarkers = append([]string{}, markers...)
	}
}

// WithKeyStoreDisabled turns the known-key store off.
func WithKeyStoreDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.KeyStore.Enabled = false
	}
}

// WithRawText disables Latin-1 folding and HTML flattening of output text.
func WithRawText() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.CleanText = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
