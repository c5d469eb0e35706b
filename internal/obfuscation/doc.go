// Package obfuscation implements the chunk-reversal transform shared by every
// known payload obfuscation scheme, plus the byte-level checks used to judge
// whether a transformed payload decodes to text.
//
// A Key is a cyclic list of chunk lengths. ReverseChunks walks the input,
// reversing consecutive chunks whose lengths are taken from the key in turn.
// The transform is its own inverse for a given key, so the same call both
// obfuscates and deobfuscates.
//
// IsPlausibleText is a cheap heuristic rather than a UTF-8 validator. It is
// used to prune key candidates long before a full decode is attempted.
package obfuscation
