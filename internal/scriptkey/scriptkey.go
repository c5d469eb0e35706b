// Package scriptkey pulls payload keys out of the solver's minified
// JavaScript. The vendor has shipped several layouts over time; Extract
// returns every candidate it recognises, in the order they should be tried.
package scriptkey

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"

	"xwordcodec/internal/obfuscation"
)

const maxChunk = 64

var (
	hexKeyPattern     = regexp.MustCompile(`="([0-9a-f]{7})"`)
	pushKeyPattern    = regexp.MustCompile(`=\[\]\)\.push\(([0-9]{1,2})\)`)
	orderedDigitRegex = regexp.MustCompile(`<t\.length\?(\d+)`)
	orderedOrderRegex = regexp.MustCompile(`n=(\d+);n<t\.length;n\+=`)
)

// Candidate is a key found in a script together with the layout it came from.
type Candidate struct {
	Source string
	Key    obfuscation.Key
}

// Extract returns the keys embedded in script. The first candidate is the
// hex literal (digits + 2) or, failing that, the pushed integers; the second
// is the ordered key whose digits are sorted by their loop offsets.
func Extract(script string) []Candidate {
	var out []Candidate
	if key, ok := hexKey(script); ok {
		out = append(out, Candidate{Source: "hex", Key: key})
	} else if key, ok := pushKey(script); ok {
		out = append(out, Candidate{Source: "push", Key: key})
	}
	if key, ok := orderedKey(script); ok {
		out = append(out, Candidate{Source: "ordered", Key: key})
	}
	return out
}

func hexKey(script string) (obfuscation.Key, bool) {
	m := hexKeyPattern.FindStringSubmatch(script)
	if m == nil {
		return nil, false
	}
	key, err := obfuscation.ParseHexKey(m[1], 2)
	if err != nil {
		return nil, false
	}
	return key, true
}

func pushKey(script string) (obfuscation.Key, bool) {
	return checked(atois(pushKeyPattern.FindAllStringSubmatch(script, -1)))
}

func orderedKey(script string) (obfuscation.Key, bool) {
	digits := atois(orderedDigitRegex.FindAllStringSubmatch(script, -1))
	orders := atois(orderedOrderRegex.FindAllStringSubmatch(script, -1))

	type pair struct{ digit, order int }
	pairs := make([]pair, min(len(digits), len(orders)))
	for i := range pairs {
		pairs[i] = pair{digits[i], orders[i]}
	}
	slices.SortStableFunc(pairs, func(a, b pair) int { return cmp.Compare(a.order, b.order) })

	key := make([]int, len(pairs))
	for i, p := range pairs {
		key[i] = p.digit
	}
	return checked(key)
}

func atois(matches [][]string) []int {
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func checked(values []int) (obfuscation.Key, bool) {
	key := obfuscation.Key(values)
	if key.Validate() != nil {
		return nil, false
	}
	for _, n := range key {
		if n > maxChunk {
			return nil, false
		}
	}
	return key, true
}
