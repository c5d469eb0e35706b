package obfuscation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// KeyLength is the number of chunk lengths in a recoverable key.
	KeyLength = 7
	// MinChunk and MaxChunk bound each chunk length of a recoverable key.
	MinChunk = 2
	MaxChunk = 18
)

// ErrInvalidKey reports a key that cannot drive the cipher.
var ErrInvalidKey = errors.New("invalid key")

// Key is a cyclic sequence of chunk lengths.
type Key []int

// Validate checks that the key can drive ReverseChunks: it must be non-empty
// and every chunk length must be positive.
func (k Key) Validate() error {
	if len(k) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for i, n := range k {
		if n <= 0 {
			return fmt.Errorf("%w: chunk %d has length %d", ErrInvalidKey, i, n)
		}
	}
	return nil
}

// Recoverable reports whether the key lies inside the search space of the
// key recovery engine: exactly KeyLength elements, each in [MinChunk, MaxChunk].
func (k Key) Recoverable() bool {
	if len(k) != KeyLength {
		return false
	}
	for _, n := range k {
		if n < MinChunk || n > MaxChunk {
			return false
		}
	}
	return true
}

// Sum returns the total of all chunk lengths, i.e. the length of one cycle.
func (k Key) Sum() int {
	total := 0
	for _, n := range k {
		total += n
	}
	return total
}

// Clone returns a copy with one spare slot of capacity for appending.
func (k Key) Clone() Key {
	out := make(Key, len(k), len(k)+1)
	copy(out, k)
	return out
}

// Equal reports whether both keys hold the same chunk lengths.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the key as comma-separated integers, e.g. "5,5,5,5,5,5,5".
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, n := range k {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// ParseKey parses the String form of a key.
func ParseKey(value string) (Key, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	fields := strings.Split(value, ",")
	key := make(Key, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidKey, field)
		}
		key = append(key, n)
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

// ParseHexKey builds a key from hex digits, adding offset to each digit.
func ParseHexKey(digits string, offset int) (Key, error) {
	if digits == "" {
		return nil, fmt.Errorf("%w: no hex digits", ErrInvalidKey)
	}
	key := make(Key, 0, len(digits))
	for _, r := range digits {
		n, err := strconv.ParseUint(string(r), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a hex digit", ErrInvalidKey, r)
		}
		key = append(key, int(n)+offset)
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}
