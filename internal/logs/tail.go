package logs

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"xwordcodec/internal/logging"
)

// Entry is one log line. Lines that are not JSON keep only Raw.
type Entry struct {
	Time    time.Time      `json:"ts"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	RunID   string         `json:"run_id,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Raw     string         `json:"-"`
}

// TailOptions filters the lines returned by Tail.
type TailOptions struct {
	// Limit caps the number of entries. Zero or less returns every match.
	Limit int
	// RunID keeps only lines logged by one invocation.
	RunID string
	// Level drops entries below this level (debug, info, warn, error).
	Level string
}

// Tail returns the last matching entries of the log at path, oldest first.
// A missing file yields no entries.
func Tail(path string, opts TailOptions) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("log path %q is a directory", path)
	}

	minLevel := levelRank(opts.Level)
	runID := strings.TrimSpace(opts.RunID)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var ring ringBuffer
	ring.limit = opts.Limit
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := parseLine(line)
		if runID != "" && entry.RunID != runID {
			continue
		}
		if minLevel > 0 && levelRank(entry.Level) < minLevel {
			continue
		}
		ring.push(entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return ring.entries(), nil
}

func parseLine(line string) Entry {
	entry := Entry{Raw: line}
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return entry
	}
	for _, key := range []string{"ts", "time"} {
		if v, ok := fields[key].(string); ok {
			if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
				entry.Time = ts
				break
			}
		}
	}
	entry.Level, _ = fields["level"].(string)
	entry.Message, _ = fields["msg"].(string)
	entry.RunID, _ = fields[logging.FieldRunID].(string)
	for _, key := range []string{"ts", "time", "level", "msg", logging.FieldRunID} {
		delete(fields, key)
	}
	if len(fields) > 0 {
		entry.Fields = fields
	}
	return entry
}

func levelRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return 1
	case "info":
		return 2
	case "warn", "warning":
		return 3
	case "error":
		return 4
	default:
		return 0
	}
}

// ringBuffer keeps the newest limit entries. A limit of zero keeps all.
type ringBuffer struct {
	limit int
	buf   []Entry
	next  int
	full  bool
}

func (r *ringBuffer) push(e Entry) {
	if r.limit <= 0 {
		r.buf = append(r.buf, e)
		return
	}
	if len(r.buf) < r.limit {
		r.buf = append(r.buf, e)
		return
	}
	r.buf[r.next] = e
	r.next = (r.next + 1) % r.limit
	r.full = true
}

func (r *ringBuffer) entries() []Entry {
	if !r.full {
		return r.buf
	}
	out := make([]Entry, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}
