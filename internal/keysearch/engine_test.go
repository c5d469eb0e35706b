package keysearch

import (
	"context"
	"encoding/base64"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xwordcodec/internal/obfuscation"
	"xwordcodec/internal/testsupport"
)

func TestRecoverUniformKey(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	obfuscated := testsupport.Obfuscate(t, payload, testsupport.SampleKey)

	result, err := New(Options{}).Recover(context.Background(), obfuscated)
	if err != nil {
		t.Fatalf("Recover returned error: %v", err)
	}
	if diff := cmp.Diff(testsupport.SampleKey, result.Key); diff != "" {
		t.Fatalf("key mismatch (-want +got):\n%s", diff)
	}
	want, _ := base64.StdEncoding.DecodeString(payload)
	if string(result.Plaintext) != string(want) {
		t.Fatalf("plaintext mismatch")
	}
	if result.Stats.Seed != "5" || result.Stats.Tried == 0 || result.Stats.Expanded == 0 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
}

func TestRecoverMinimalDocument(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.MiniDocument())
	obfuscated := testsupport.Obfuscate(t, payload, testsupport.SampleKey)

	result, err := New(Options{}).Recover(context.Background(), obfuscated)
	if err != nil {
		t.Fatalf("Recover returned error: %v", err)
	}
	if !result.Key.Equal(testsupport.SampleKey) {
		t.Fatalf("Recover key = %v, want %v", result.Key, testsupport.SampleKey)
	}
}

func TestRecoverMixedKeys(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	keys := []obfuscation.Key{
		{3, 7, 2, 11, 4, 18, 6},
		{18, 17, 16, 2, 3, 9, 4},
		{9, 9, 2, 14, 5, 6, 12},
	}
	engine := New(Options{})
	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			result, err := engine.Recover(context.Background(), testsupport.Obfuscate(t, payload, key))
			if err != nil {
				t.Fatalf("Recover returned error: %v", err)
			}
			if !result.Key.Equal(key) {
				t.Fatalf("Recover key = %v, want %v", result.Key, key)
			}
		})
	}
}

func TestRecoverWithoutSeed(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	key := obfuscation.Key{6, 4, 8, 5, 7, 3, 9}
	obfuscated := testsupport.Obfuscate(t, payload, key)

	result, err := New(Options{Seeder: NoSeed{}}).Recover(context.Background(), obfuscated)
	if err != nil {
		t.Fatalf("Recover returned error: %v", err)
	}
	if !result.Key.Equal(key) {
		t.Fatalf("Recover key = %v, want %v", result.Key, key)
	}
	if result.Stats.Seed != "" {
		t.Fatalf("expected no seed, got %q", result.Stats.Seed)
	}
}

func TestRecoverIsDeterministic(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	obfuscated := testsupport.Obfuscate(t, payload, obfuscation.Key{4, 12, 3, 8, 2, 15, 7})

	engine := New(Options{})
	first, err := engine.Recover(context.Background(), obfuscated)
	if err != nil {
		t.Fatalf("first Recover returned error: %v", err)
	}
	second, err := engine.Recover(context.Background(), obfuscated)
	if err != nil {
		t.Fatalf("second Recover returned error: %v", err)
	}
	if !first.Key.Equal(second.Key) || first.Stats.Expanded != second.Stats.Expanded {
		t.Fatalf("searches differ: %v/%d vs %v/%d", first.Key, first.Stats.Expanded, second.Key, second.Stats.Expanded)
	}
}

func TestRecoverRejectsNonBase64(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"bad length":   "abcde",
		"bad alphabet": "!!!not-base64!!!",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(Options{}).Recover(context.Background(), payload)
			if !errors.Is(err, ErrKeyNotFound) {
				t.Fatalf("expected ErrKeyNotFound, got %v", err)
			}
		})
	}
}

func TestRecoverRandomBytesNotFound(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	noise := make([]byte, 1200)
	for i := range noise {
		noise[i] = byte(rng.UintN(256))
	}
	payload := base64.StdEncoding.EncodeToString(noise)

	result, err := New(Options{}).Recover(context.Background(), payload)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v (key %v)", err, result.Key)
	}
	if result.Key != nil {
		t.Fatalf("expected no key, got %v", result.Key)
	}
}

func TestRecoverHonoursCancellation(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	obfuscated := testsupport.Obfuscate(t, payload, testsupport.SampleKey)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).Recover(ctx, obfuscated)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRecoverExpansionLimit(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	obfuscated := testsupport.Obfuscate(t, payload, testsupport.SampleKey)

	result, err := New(Options{MaxExpansions: 1}).Recover(context.Background(), obfuscated)
	if !errors.Is(err, ErrKeyNotFound) || !strings.Contains(err.Error(), "expansion limit") {
		t.Fatalf("expected expansion limit error, got %v", err)
	}
	if result.Stats.Expanded != 1 {
		t.Fatalf("expected one expansion, got %d", result.Stats.Expanded)
	}
}

func TestRecoverCustomAccept(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	obfuscated := testsupport.Obfuscate(t, payload, testsupport.SampleKey)

	rejectAll := func([]byte) bool { return false }
	result, err := New(Options{Accept: rejectAll}).Recover(context.Background(), obfuscated)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if result.Stats.Tried == 0 {
		t.Fatal("expected at least one full key attempt")
	}
}

func TestMarkerSeeder(t *testing.T) {
	tests := []struct {
		name    string
		markers []string
		payload string
		want    obfuscation.Key
	}{
		{"ye at 3", nil, "a0Jye0aXRs", obfuscation.Key{5}},
		{"earliest marker wins", nil, "xwe..ye", obfuscation.Key{3}},
		{"offset zero", nil, "yeJ0", obfuscation.Key{2}},
		{"too far", nil, strings.Repeat("a", 17) + "ye", nil},
		{"absent", nil, "abcdefgh", nil},
		{"custom markers", []string{"zz"}, "abzz", obfuscation.Key{4}},
		{"no markers", []string{}, "ye", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MarkerSeeder{Markers: tc.markers}.Seed(tc.payload)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Seed mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if got := (NoSeed{}).Seed("a0Jye"); got != nil {
		t.Fatalf("NoSeed returned %v", got)
	}
}

func TestPrefixCheckerAcceptsTruePrefixes(t *testing.T) {
	payload := testsupport.EncodeDocument(t, testsupport.SampleDocument())
	key := obfuscation.Key{3, 7, 2, 11, 4, 18, 6}
	checker := newPrefixChecker([]byte(testsupport.Obfuscate(t, payload, key)))

	for n := 1; n <= len(key); n++ {
		prefix := key[:n]
		spacing := key.Sum() - prefix.Sum()
		if !checker.valid(prefix, spacing) {
			t.Fatalf("true prefix %v rejected at spacing %d", prefix, spacing)
		}
	}
}
