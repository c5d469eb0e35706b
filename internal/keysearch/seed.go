package keysearch

import (
	"strings"

	"xwordcodec/internal/obfuscation"
)

// Seeder proposes the prefix a search starts from. An empty prefix means the
// search starts from scratch.
type Seeder interface {
	Seed(payload string) obfuscation.Key
}

// DefaultMarkers are the reversed openings of base64 JSON: "ey" starts `{"`
// and "ew" starts `{` followed by a newline.
var DefaultMarkers = []string{"ye", "we"}

// MarkerSeeder guesses the first key digit from the earliest occurrence of
// any marker. When the first chunk is reversed, a marker ending that chunk
// sits at offset digit-2.
type MarkerSeeder struct {
	Markers []string
}

func (s MarkerSeeder) Seed(payload string) obfuscation.Key {
	markers := s.Markers
	if markers == nil {
		markers = DefaultMarkers
	}
	offset := -1
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		if idx := strings.Index(payload, marker); idx >= 0 && (offset < 0 || idx < offset) {
			offset = idx
		}
	}
	if offset < 0 {
		return nil
	}
	first := offset + 2
	if first < obfuscation.MinChunk || first > obfuscation.MaxChunk {
		return nil
	}
	return obfuscation.Key{first}
}

// NoSeed always starts from an empty prefix.
type NoSeed struct{}

func (NoSeed) Seed(string) obfuscation.Key { return nil }
