package keysearch

import (
	"encoding/base64"

	"xwordcodec/internal/obfuscation"
)

// prefixChecker evaluates key prefixes against one payload, reusing its
// scratch buffers between calls.
type prefixChecker struct {
	payload []byte
	window  []byte
	decoded []byte
}

func newPrefixChecker(payload []byte) *prefixChecker {
	return &prefixChecker{payload: payload}
}

// viable reports whether some total length of the remaining unknown digits
// lets every cycle of prefix decode plausibly.
func (c *prefixChecker) viable(prefix obfuscation.Key) bool {
	remaining := obfuscation.KeyLength - len(prefix)
	for spacing := obfuscation.MinChunk * remaining; spacing <= obfuscation.MaxChunk*remaining; spacing++ {
		if c.valid(prefix, spacing) {
			return true
		}
	}
	return false
}

// valid walks the payload one key cycle at a time, assuming a cycle is
// sum(prefix)+spacing bytes long. Only the leading sum(prefix) bytes of each
// cycle are reversed; the base64 groups fully inside that span must decode to
// plausible text.
func (c *prefixChecker) valid(prefix obfuscation.Key, spacing int) bool {
	known := prefix.Sum()
	period := known + spacing
	n := len(c.payload)

	for start := 0; start < n; start += period {
		end := min(start+known, n)
		lo := roundUp(start, 4)
		hi := roundDown(end, 4)
		if lo >= hi {
			continue
		}

		c.window = append(c.window[:0], c.payload[start:end]...)
		obfuscation.ReverseChunksInPlace(c.window, prefix)

		group := c.window[lo-start : hi-start]
		if need := base64.StdEncoding.DecodedLen(len(group)); cap(c.decoded) < need {
			c.decoded = make([]byte, need)
		}
		written, err := base64.StdEncoding.Decode(c.decoded[:cap(c.decoded)], group)
		if err != nil {
			return false
		}
		if !obfuscation.IsPlausibleText(c.decoded[:written]) {
			return false
		}
	}
	return true
}

func roundUp(n, m int) int {
	return (n + m - 1) / m * m
}

func roundDown(n, m int) int {
	return n / m * m
}
