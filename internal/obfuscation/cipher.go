package obfuscation

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrDecode reports that a candidate payload is not base64-encoded UTF-8.
var ErrDecode = errors.New("decode error")

// ReverseChunks applies the chunk-reversal transform to text with key.
func ReverseChunks(text string, key Key) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	buf := []byte(text)
	ReverseChunksInPlace(buf, key)
	return string(buf), nil
}

// ReverseChunksInPlace transforms buf in place. Starting at position 0 it
// reverses chunks of length key[i mod len(key)], truncated at the end of the
// buffer, until fewer than two bytes remain. key must be valid.
func ReverseChunksInPlace(buf []byte, key Key) {
	last := len(buf) - 1
	for pos, i := 0, 0; pos < last; i++ {
		size := min(key[i%len(key)], len(buf)-pos)
		reverse(buf[pos : pos+size])
		pos += size
	}
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// DecodeToText base64-decodes s and checks that the result is valid UTF-8.
func DecodeToText(s string) ([]byte, error) {
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %w", ErrDecode, err)
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%w: decoded bytes are not valid UTF-8", ErrDecode)
	}
	return out, nil
}

// Deobfuscate reverses text with key and decodes the result to UTF-8 bytes.
func Deobfuscate(text string, key Key) ([]byte, error) {
	reversed, err := ReverseChunks(text, key)
	if err != nil {
		return nil, err
	}
	return DecodeToText(reversed)
}
