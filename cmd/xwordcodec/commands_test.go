package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xwordcodec/internal/keysearch"
	"xwordcodec/internal/obfuscation"
	"xwordcodec/internal/testsupport"
)

func TestRecoverKeyCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	key := obfuscation.Key{3, 7, 2, 11, 4, 18, 6}
	payload := testsupport.Obfuscate(t, testsupport.EncodeDocument(t, testsupport.SampleDocument()), key)
	input := env.writeInput(t, "obfuscated.txt", payload)

	out, _, err := env.runCLI(t, "", "--json", "recover-key", "--remember", input)
	if err != nil {
		t.Fatalf("recover-key: %v", err)
	}
	var got recoverOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if !got.Key.Equal(key) || !got.Stored || got.Stats.Expanded == 0 {
		t.Fatalf("unexpected recovery: %+v", got)
	}

	out, _, err = env.runCLI(t, "", "keys", "list")
	if err != nil {
		t.Fatalf("keys list: %v", err)
	}
	requireContains(t, out, key.String())
	requireContains(t, out, "search")
}

func TestRecoverKeyRejectsPlainText(t *testing.T) {
	env := setupCLITestEnv(t)
	input := env.writeInput(t, "junk.txt", "this is not base64 at all!")

	_, _, err := env.runCLI(t, "", "recover-key", input)
	if !errors.Is(err, keysearch.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestKeysListAndClear(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.runCLI(t, "", "keys", "list")
	if err != nil {
		t.Fatalf("keys list: %v", err)
	}
	requireContains(t, out, "No known keys")

	payload := testsupport.Obfuscate(t, testsupport.EncodeDocument(t, testsupport.SampleDocument()), testsupport.SampleKey)
	input := env.writeInput(t, "obfuscated.txt", payload)
	if _, _, err := env.runCLI(t, "", "decode", input); err != nil {
		t.Fatalf("decode: %v", err)
	}

	out, _, err = env.runCLI(t, "", "keys", "list")
	if err != nil {
		t.Fatalf("keys list: %v", err)
	}
	requireContains(t, out, testsupport.SampleKey.String())

	out, _, err = env.runCLI(t, "", "keys", "clear")
	if err != nil {
		t.Fatalf("keys clear: %v", err)
	}
	requireContains(t, out, "Removed 1 known key(s)")

	out, _, err = env.runCLI(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Morning Mini")
	requireContains(t, out, "search")
}

func TestKeyStoreDisabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithKeyStoreDisabled())

	for _, args := range [][]string{{"keys", "list"}, {"keys", "clear"}, {"history"}} {
		if _, _, err := env.runCLI(t, "", args...); !errors.Is(err, errKeyStoreDisabled) {
			t.Fatalf("%v: expected errKeyStoreDisabled, got %v", args, err)
		}
	}
	if _, err := os.Stat(env.cfg.KeyStore.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no key store file, stat err=%v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.runCLI(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = env.runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := env.runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected config init to refuse an existing file")
	}
	if _, _, err := env.runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.configPath, "[logging]\nformat = \"xml\"\n")

	if _, _, err := env.runCLI(t, "", "config", "validate"); err == nil {
		t.Fatal("expected invalid logging format to fail validation")
	}
}

func TestLogsCommandFiltersByRun(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.LogDir, "xwordcodec.log"),
		`{"ts":"2024-05-01T10:00:00Z","level":"info","msg":"payload decoded","run_id":"aaa","strategy":"direct"}
{"ts":"2024-05-01T10:00:01Z","level":"info","msg":"wrote puzzle document","run_id":"bbb","path":"/tmp/x.json"}
`)

	out, _, err := env.runCLI(t, "", "logs", "--run", "bbb")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "wrote puzzle document")
	requireContains(t, out, "path=/tmp/x.json")
	if strings.Contains(out, "payload decoded") {
		t.Fatalf("expected other runs to be filtered out:\n%s", out)
	}
}
