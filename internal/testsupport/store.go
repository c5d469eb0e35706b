package testsupport

import (
	"testing"

	"xwordcodec/internal/config"
	"xwordcodec/internal/keystore"
)

// MustOpenKeyStore opens the configured key store for tests and registers cleanup.
func MustOpenKeyStore(t testing.TB, cfg *config.Config) *keystore.Store {
	t.Helper()

	store, err := keystore.Open(cfg.KeyStore.Path)
	if err != nil {
		t.Fatalf("keystore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
