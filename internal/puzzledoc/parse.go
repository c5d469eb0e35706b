package puzzledoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed reports a payload that decoded to JSON but lacks the structure
// of a puzzle.
var ErrMalformed = errors.New("malformed puzzle document")

var requiredFields = []string{"box", "placedWords", "w", "h"}

// Parse decodes a plaintext payload into a Document and validates it.
func Parse(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	var missing []string
	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrMalformed, missing)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks that the box matrix covers the declared dimensions.
func (d *Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformed, d.Width, d.Height)
	}
	if len(d.Box) != d.Width {
		return fmt.Errorf("%w: box has %d columns, want %d", ErrMalformed, len(d.Box), d.Width)
	}
	for col, column := range d.Box {
		if len(column) < d.Height {
			return fmt.Errorf("%w: column %d has %d cells, want %d", ErrMalformed, col, len(column), d.Height)
		}
	}
	return nil
}
