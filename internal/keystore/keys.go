package keystore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"xwordcodec/internal/obfuscation"
)

// Entry is a remembered key.
type Entry struct {
	Key       obfuscation.Key `json:"key"`
	Source    string          `json:"source"`
	Hits      int             `json:"hits"`
	FirstSeen time.Time       `json:"first_seen"`
	LastUsed  time.Time       `json:"last_used"`
}

// Remember records that key decoded a payload. A known key gets its hit
// count bumped and its last-used time refreshed; its source is replaced
// unless source is empty.
func (s *Store) Remember(ctx context.Context, key obfuscation.Key, source string) error {
	if err := key.Validate(); err != nil {
		return err
	}
	now := s.now().UnixMilli()
	_, err := s.exec(ctx, `
INSERT INTO known_keys (key, source, hits, first_seen, last_used)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    hits = hits + 1,
    source = CASE WHEN excluded.source = '' THEN known_keys.source ELSE excluded.source END,
    last_used = excluded.last_used`,
		key.String(), source, now, now)
	if err != nil {
		return fmt.Errorf("remember key %s: %w", key, err)
	}
	return nil
}

// Recent returns up to limit keys, most recently used first. A limit of zero
// or less returns every key.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT key, source, hits, first_seen, last_used
FROM known_keys
ORDER BY last_used DESC, hits DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query known keys: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// List returns every remembered key.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	return s.Recent(ctx, 0)
}

// RecentKeys adapts Recent to the decoder's key lister.
func (s *Store) RecentKeys(ctx context.Context, limit int) ([]obfuscation.Key, error) {
	entries, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	keys := make([]obfuscation.Key, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys, nil
}

// Clear forgets every key and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.exec(ctx, "DELETE FROM known_keys")
	if err != nil {
		return 0, fmt.Errorf("clear known keys: %w", err)
	}
	return res.RowsAffected()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var (
			raw             string
			e               Entry
			first, lastUsed int64
		)
		if err := rows.Scan(&raw, &e.Source, &e.Hits, &first, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan known key: %w", err)
		}
		key, err := obfuscation.ParseKey(raw)
		if err != nil {
			return nil, fmt.Errorf("stored key %q: %w", raw, err)
		}
		e.Key = key
		e.FirstSeen = time.UnixMilli(first).UTC()
		e.LastUsed = time.UnixMilli(lastUsed).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate known keys: %w", err)
	}
	return out, nil
}
