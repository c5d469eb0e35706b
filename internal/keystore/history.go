package keystore

import (
	"context"
	"fmt"
	"time"
)

// Record is one successful decode.
type Record struct {
	ID            int64         `json:"id"`
	RunID         string        `json:"run_id"`
	PayloadSHA256 string        `json:"payload_sha256"`
	Title         string        `json:"title"`
	Strategy      string        `json:"strategy"`
	Key           string        `json:"key,omitempty"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Unsolved      bool          `json:"unsolved"`
	Duration      time.Duration `json:"duration"`
	DecodedAt     time.Time     `json:"decoded_at"`
}

// RecordDecode appends rec to the history. DecodedAt defaults to now.
func (s *Store) RecordDecode(ctx context.Context, rec Record) (int64, error) {
	if rec.DecodedAt.IsZero() {
		rec.DecodedAt = s.now()
	}
	res, err := s.exec(ctx, `
INSERT INTO decodes (run_id, payload_sha256, title, strategy, key, width, height, unsolved, duration_ms, decoded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.PayloadSHA256, rec.Title, rec.Strategy, rec.Key,
		rec.Width, rec.Height, rec.Unsolved, rec.Duration.Milliseconds(), rec.DecodedAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("record decode: %w", err)
	}
	return res.LastInsertId()
}

// History returns up to limit decodes, newest first. A limit of zero or less
// returns the whole history.
func (s *Store) History(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, run_id, payload_sha256, title, strategy, key, width, height, unsolved, duration_ms, decoded_at
FROM decodes
ORDER BY decoded_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec        Record
			durationMS int64
			decodedAt  int64
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.PayloadSHA256, &rec.Title, &rec.Strategy, &rec.Key,
			&rec.Width, &rec.Height, &rec.Unsolved, &durationMS, &decodedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.DecodedAt = time.UnixMilli(decodedAt).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}
