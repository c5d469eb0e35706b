package rawc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"xwordcodec/internal/keysearch"
	"xwordcodec/internal/logging"
	"xwordcodec/internal/obfuscation"
	"xwordcodec/internal/puzzledoc"
)

// ErrPayloadDecode reports that no strategy could decode a payload. The
// individual strategy failures are joined underneath it.
var ErrPayloadDecode = errors.New("payload decode failed")

// KeyLister supplies previously successful keys, most useful first.
type KeyLister interface {
	RecentKeys(ctx context.Context, limit int) ([]obfuscation.Key, error)
}

// Options configures a Decoder.
type Options struct {
	// KnownKeys, when set, is consulted before key recovery.
	KnownKeys  KeyLister
	KnownLimit int
	// Search runs key recovery. Nil disables the search strategy.
	Search *keysearch.Engine
	Logger *slog.Logger
}

// Input is one payload to decode, with the companion script text if the
// caller has it.
type Input struct {
	Payload string
	Script  string
}

// Failure records why one strategy did not produce a document.
type Failure struct {
	Strategy Strategy `json:"strategy"`
	Reason   string   `json:"reason"`
}

// Report describes how a payload was decoded.
type Report struct {
	Strategy  Strategy         `json:"strategy,omitempty"`
	Key       obfuscation.Key  `json:"key,omitempty"`
	KeySource string           `json:"key_source,omitempty"`
	Failures  []Failure        `json:"failures,omitempty"`
	Search    *keysearch.Stats `json:"search,omitempty"`
	Duration  time.Duration    `json:"duration"`
}

// Decoder runs the decoding strategies in order.
type Decoder struct {
	known      KeyLister
	knownLimit int
	search     *keysearch.Engine
	logger     *slog.Logger
}

// New creates a Decoder.
func New(opts Options) *Decoder {
	limit := opts.KnownLimit
	if limit <= 0 {
		limit = 16
	}
	return &Decoder{
		known:      opts.KnownKeys,
		knownLimit: limit,
		search:     opts.Search,
		logger:     logging.NewComponentLogger(opts.Logger, "rawc"),
	}
}

type step struct {
	name Strategy
	run  strategyFunc
}

func (d *Decoder) steps() []step {
	steps := []step{
		{StrategyDirect, decodeDirect},
		{StrategyLegacy, decodeLegacy},
		{StrategyScript, decodeScript},
	}
	if d.known != nil {
		steps = append(steps, step{StrategyKnown, d.decodeKnown})
	}
	if d.search != nil {
		steps = append(steps, step{StrategySearch, d.decodeSearch})
	}
	return steps
}

// Decode turns in.Payload into a validated document. The report is returned
// on failure too, listing what each strategy tried.
func (d *Decoder) Decode(ctx context.Context, in Input) (*puzzledoc.Document, *Report, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, d.logger)
	report := &Report{}
	in.Payload = strings.TrimSpace(in.Payload)

	var failures []error
	for _, s := range d.steps() {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(started)
			return nil, report, fmt.Errorf("%w: %w", ErrPayloadDecode, err)
		}

		found, err := s.run(ctx, in)
		if found.search != nil {
			report.Search = found.search
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				report.Duration = time.Since(started)
				return nil, report, fmt.Errorf("%w: %s: %w", ErrPayloadDecode, s.name, err)
			}
			failures = append(failures, fmt.Errorf("%s: %w", s.name, err))
			report.Failures = append(report.Failures, Failure{Strategy: s.name, Reason: err.Error()})
			logger.Debug("decode strategy failed",
				logging.Strategy(string(s.name)),
				logging.Error(err),
			)
			continue
		}

		doc, err := puzzledoc.Parse(found.plaintext)
		report.Duration = time.Since(started)
		if err != nil {
			return nil, report, fmt.Errorf("%s strategy: %w", s.name, err)
		}
		report.Strategy = s.name
		report.Key = found.key
		report.KeySource = found.source
		logger.Info("payload decoded",
			logging.Strategy(string(s.name)),
			logging.Key(found.key),
			logging.Int("width", doc.Width),
			logging.Int("height", doc.Height),
			logging.Duration("elapsed", report.Duration),
		)
		return doc, report, nil
	}

	report.Duration = time.Since(started)
	return nil, report, fmt.Errorf("%w: %w", ErrPayloadDecode, errors.Join(failures...))
}

// decodeSearch returns the search statistics even when no key was found.
func (d *Decoder) decodeSearch(ctx context.Context, in Input) (candidate, error) {
	result, err := d.search.Recover(ctx, in.Payload)
	stats := result.Stats
	if err != nil {
		return candidate{search: &stats}, err
	}
	if !json.Valid(result.Plaintext) {
		return candidate{search: &stats}, errNotJSON
	}
	return candidate{plaintext: result.Plaintext, key: result.Key, source: "search", search: &stats}, nil
}

func (d *Decoder) decodeKnown(ctx context.Context, in Input) (candidate, error) {
	keys, err := d.known.RecentKeys(ctx, d.knownLimit)
	if err != nil {
		return candidate{}, fmt.Errorf("list known keys: %w", err)
	}
	if len(keys) == 0 {
		return candidate{}, fmt.Errorf("%w: no known keys", errNotApplicable)
	}
	keyed := make([]keyedCandidate, 0, len(keys))
	for _, key := range keys {
		if key.Validate() == nil {
			keyed = append(keyed, keyedCandidate{key: key, source: "store"})
		}
	}
	return tryKeys(ctx, in.Payload, keyed)
}
