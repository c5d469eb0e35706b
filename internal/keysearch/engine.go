package keysearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"xwordcodec/internal/logging"
	"xwordcodec/internal/obfuscation"
)

// ErrKeyNotFound reports that the search space was exhausted without a key
// that decodes the payload.
var ErrKeyNotFound = errors.New("key not found")

// Options configures an Engine.
type Options struct {
	// Seeder picks the starting prefix. Nil uses MarkerSeeder with DefaultMarkers.
	Seeder Seeder
	// Accept is the final test for a fully decoded candidate. Nil accepts any
	// valid JSON.
	Accept func(plaintext []byte) bool
	// MaxExpansions bounds how many prefixes are expanded. Zero is unbounded.
	MaxExpansions int
	Logger        *slog.Logger
}

// Stats describes the work done by one search.
type Stats struct {
	Expanded int           `json:"expanded"`
	Pruned   int           `json:"pruned"`
	Tried    int           `json:"tried"`
	Seed     string        `json:"seed,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Result is a recovered key with the plaintext it produced.
type Result struct {
	Key       obfuscation.Key
	Plaintext []byte
	Stats     Stats
}

// Engine recovers keys. It holds no per-search state and is safe for
// concurrent use.
type Engine struct {
	seeder        Seeder
	accept        func([]byte) bool
	maxExpansions int
	logger        *slog.Logger
}

// New creates an Engine from opts.
func New(opts Options) *Engine {
	e := &Engine{
		seeder:        opts.Seeder,
		accept:        opts.Accept,
		maxExpansions: opts.MaxExpansions,
		logger:        logging.NewComponentLogger(opts.Logger, "keysearch"),
	}
	if e.seeder == nil {
		e.seeder = MarkerSeeder{Markers: DefaultMarkers}
	}
	if e.accept == nil {
		e.accept = json.Valid
	}
	return e
}

// Recover searches for the key that obfuscated payload. The context is
// checked before every expansion; on cancellation the context error is
// returned. Stats are filled in on every return path.
func (e *Engine) Recover(ctx context.Context, payload string) (Result, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, e.logger)

	var stats Stats
	if err := checkAlphabet(payload); err != nil {
		return Result{}, err
	}
	seed := e.seeder.Seed(payload)
	if len(seed) > 0 {
		stats.Seed = seed.String()
	}

	result, err := e.search(ctx, []byte(payload), seed, &stats)
	stats.Elapsed = time.Since(started)
	result.Stats = stats

	attrs := []logging.Attr{
		logging.String("seed", stats.Seed),
		logging.Int("expanded", stats.Expanded),
		logging.Int("pruned", stats.Pruned),
		logging.Int("tried", stats.Tried),
		logging.Duration("elapsed", stats.Elapsed),
	}
	if err != nil {
		logger.Debug("key search failed", logging.Args(append(attrs, logging.Error(err))...)...)
		return result, err
	}
	logger.Debug("key recovered", logging.Args(append(attrs, logging.Key(result.Key))...)...)
	return result, nil
}

func (e *Engine) search(ctx context.Context, payload []byte, seed obfuscation.Key, stats *Stats) (Result, error) {
	checker := newPrefixChecker(payload)
	queue := []obfuscation.Key{seed.Clone()}
	scratch := make([]byte, len(payload))

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("key search interrupted: %w", err)
		}

		prefix := queue[0]
		queue[0] = nil
		queue = queue[1:]

		if len(prefix) == obfuscation.KeyLength {
			stats.Tried++
			if plaintext, ok := e.tryKey(payload, prefix, scratch); ok {
				return Result{Key: prefix, Plaintext: plaintext}, nil
			}
			continue
		}

		if e.maxExpansions > 0 && stats.Expanded >= e.maxExpansions {
			return Result{}, fmt.Errorf("%w: expansion limit %d reached", ErrKeyNotFound, e.maxExpansions)
		}
		stats.Expanded++

		for digit := obfuscation.MinChunk; digit <= obfuscation.MaxChunk; digit++ {
			next := append(prefix.Clone(), digit)
			if checker.viable(next) {
				queue = append(queue, next)
			} else {
				stats.Pruned++
			}
		}
	}
	return Result{}, fmt.Errorf("%w: %d prefixes expanded, %d keys tried", ErrKeyNotFound, stats.Expanded, stats.Tried)
}

func (e *Engine) tryKey(payload []byte, key obfuscation.Key, scratch []byte) ([]byte, bool) {
	copy(scratch, payload)
	obfuscation.ReverseChunksInPlace(scratch, key)
	plaintext, err := obfuscation.DecodeToText(string(scratch))
	if err != nil {
		return nil, false
	}
	if !e.accept(plaintext) {
		return nil, false
	}
	return plaintext, true
}

// checkAlphabet rejects payloads no key can turn into base64. Reversal only
// permutes bytes, so the alphabet and the length are preserved.
func checkAlphabet(payload string) error {
	if payload == "" {
		return fmt.Errorf("%w: empty payload", ErrKeyNotFound)
	}
	if len(payload)%4 != 0 {
		return fmt.Errorf("%w: payload length %d is not a multiple of 4", ErrKeyNotFound, len(payload))
	}
	for i := 0; i < len(payload); i++ {
		if !isBase64Byte(payload[i]) {
			return fmt.Errorf("%w: byte %q at offset %d is not base64", ErrKeyNotFound, payload[i], i)
		}
	}
	return nil
}

func isBase64Byte(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	return c == '+' || c == '/' || c == '='
}
