package logs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xwordcodec/internal/logs"
)

const sampleLog = `{"ts":"2024-05-01T10:00:00Z","level":"info","msg":"payload decoded","run_id":"r1","strategy":"search"}
{"ts":"2024-05-01T10:00:01Z","level":"debug","msg":"decode strategy failed","run_id":"r2","strategy":"direct"}
not json at all
{"ts":"2024-05-01T10:00:02Z","level":"error","msg":"decode failed","run_id":"r2"}
{"ts":"2024-05-01T10:00:03Z","level":"info","msg":"payload decoded","run_id":"r2","strategy":"known"}
`

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xwordcodec.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func messages(entries []logs.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		if e.Message == "" {
			out[i] = e.Raw
			continue
		}
		out[i] = e.Message
	}
	return out
}

func TestTail(t *testing.T) {
	path := writeLog(t)

	tests := []struct {
		name string
		opts logs.TailOptions
		want []string
	}{
		{
			name: "last two",
			opts: logs.TailOptions{Limit: 2},
			want: []string{"decode failed", "payload decoded"},
		},
		{
			name: "everything",
			opts: logs.TailOptions{},
			want: []string{"payload decoded", "decode strategy failed", "not json at all", "decode failed", "payload decoded"},
		},
		{
			name: "one run",
			opts: logs.TailOptions{RunID: "r2"},
			want: []string{"decode strategy failed", "decode failed", "payload decoded"},
		},
		{
			name: "warnings and up",
			opts: logs.TailOptions{Level: "warn"},
			want: []string{"decode failed"},
		},
		{
			name: "run and limit",
			opts: logs.TailOptions{RunID: "r2", Limit: 1},
			want: []string{"payload decoded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := logs.Tail(path, tt.opts)
			if err != nil {
				t.Fatalf("Tail: %v", err)
			}
			if diff := cmp.Diff(tt.want, messages(entries)); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTailParsesFields(t *testing.T) {
	entries, err := logs.Tail(writeLog(t), logs.TailOptions{Limit: 1})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	got := entries[0]
	if got.RunID != "r2" || got.Level != "info" || got.Time.IsZero() {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if diff := cmp.Diff(map[string]any{"strategy": "known"}, got.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestTailMissingFile(t *testing.T) {
	entries, err := logs.Tail(filepath.Join(t.TempDir(), "absent.log"), logs.TailOptions{Limit: 5})
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected no entries and no error, got %v, %v", entries, err)
	}
}
