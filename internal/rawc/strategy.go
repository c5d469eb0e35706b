package rawc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"xwordcodec/internal/keysearch"
	"xwordcodec/internal/obfuscation"
	"xwordcodec/internal/scriptkey"
)

// Strategy names one way of turning a payload into plaintext.
type Strategy string

const (
	StrategyDirect Strategy = "direct"
	StrategyLegacy Strategy = "legacy"
	StrategyScript Strategy = "script"
	StrategyKnown  Strategy = "known"
	StrategySearch Strategy = "search"
)

var (
	errNotApplicable = errors.New("not applicable")
	errNotJSON       = errors.New("plaintext is not JSON")
)

// candidate is the plaintext a strategy produced and the key behind it.
type candidate struct {
	plaintext []byte
	key       obfuscation.Key
	source    string
	search    *keysearch.Stats
}

type strategyFunc func(ctx context.Context, in Input) (candidate, error)

func decodeDirect(_ context.Context, in Input) (candidate, error) {
	plaintext, err := decodeJSON(in.Payload)
	if err != nil {
		return candidate{}, err
	}
	return candidate{plaintext: plaintext}, nil
}

// decodeLegacy handles "<body>.<hex>" payloads. The hex digits, read from
// the end, are the key chunk lengths minus two.
func decodeLegacy(_ context.Context, in Input) (candidate, error) {
	parts := strings.Split(in.Payload, ".")
	if len(parts) != 2 {
		return candidate{}, fmt.Errorf("%w: payload has %d dot-separated parts", errNotApplicable, len(parts))
	}
	key, err := obfuscation.ParseHexKey(reverseString(parts[1]), 2)
	if err != nil {
		return candidate{}, err
	}
	plaintext, err := deobfuscateJSON(parts[0], key)
	if err != nil {
		return candidate{}, err
	}
	return candidate{plaintext: plaintext, key: key, source: "dotted"}, nil
}

func decodeScript(ctx context.Context, in Input) (candidate, error) {
	if strings.TrimSpace(in.Script) == "" {
		return candidate{}, fmt.Errorf("%w: no companion script", errNotApplicable)
	}
	found := scriptkey.Extract(in.Script)
	if len(found) == 0 {
		return candidate{}, fmt.Errorf("%w: no key in companion script", errNotApplicable)
	}
	keyed := make([]keyedCandidate, len(found))
	for i, c := range found {
		keyed[i] = keyedCandidate{key: c.Key, source: c.Source}
	}
	return tryKeys(ctx, in.Payload, keyed)
}

type keyedCandidate struct {
	key    obfuscation.Key
	source string
}

func tryKeys(ctx context.Context, payload string, keys []keyedCandidate) (candidate, error) {
	var errs []error
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return candidate{}, err
		}
		plaintext, err := deobfuscateJSON(payload, k.key)
		if err != nil {
			errs = append(errs, fmt.Errorf("key %s: %w", k.key, err))
			continue
		}
		return candidate{plaintext: plaintext, key: k.key, source: k.source}, nil
	}
	return candidate{}, errors.Join(errs...)
}

func deobfuscateJSON(payload string, key obfuscation.Key) ([]byte, error) {
	reversed, err := obfuscation.ReverseChunks(payload, key)
	if err != nil {
		return nil, err
	}
	return decodeJSON(reversed)
}

func decodeJSON(payload string) ([]byte, error) {
	plaintext, err := obfuscation.DecodeToText(payload)
	if err != nil {
		return nil, err
	}
	if !json.Valid(plaintext) {
		return nil, errNotJSON
	}
	return plaintext, nil
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
