// Package keysearch recovers the chunk-length key of an obfuscated payload
// without any side-channel.
//
// The Engine runs a breadth-first search over key prefixes. A prefix survives
// only if, for some total length of the digits still unknown, every cycle of
// the payload reversed with the known digits decodes to bytes that could be
// text. Complete keys are confirmed by a full decode, so the pruning step may
// keep false candidates but never drops the true one.
//
// Where the search starts is decided by a Seeder. MarkerSeeder guesses the
// first digit from where the reversed opening of base64 JSON lands; NoSeed
// searches from an empty prefix.
package keysearch
