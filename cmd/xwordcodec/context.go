package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"xwordcodec/internal/config"
	"xwordcodec/internal/keysearch"
	"xwordcodec/internal/keystore"
	"xwordcodec/internal/logging"
)

var errKeyStoreDisabled = errors.New("key store is disabled in the configuration")

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// logger builds the invocation logger. Console output goes to the command's
// stderr so stdout stays clean for results. Library packages tag lines with
// the run id themselves; command code should wrap the result with
// logging.WithContext.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, closer, nil
}

// openStore opens the key store. It returns a nil store when the store is
// disabled.
func (c *commandContext) openStore() (*keystore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.KeyStore.Enabled {
		return nil, nil
	}
	store, err := keystore.Open(cfg.KeyStore.Path)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	return store, nil
}

func (c *commandContext) withStore(fn func(*keystore.Store) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return errKeyStoreDisabled
	}
	defer store.Close()
	return fn(store)
}

func newSearchEngine(cfg *config.Config, logger *slog.Logger) *keysearch.Engine {
	var seeder keysearch.Seeder = keysearch.NoSeed{}
	if len(cfg.Decode.SeedMarkers) > 0 {
		seeder = keysearch.MarkerSeeder{Markers: cfg.Decode.SeedMarkers}
	}
	return keysearch.New(keysearch.Options{
		Seeder:        seeder,
		MaxExpansions: cfg.Decode.MaxExpansions,
		Logger:        logger,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
