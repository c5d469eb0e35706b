// Package rawc turns a raw puzzle payload into a parsed document.
//
// A payload may be plain base64 JSON or obfuscated by one of the vendor's
// chunk-reversal schemes. Decoder tries an ordered list of strategies:
// direct decode, the legacy dotted key, keys published in the companion
// script, keys that worked before, and finally key recovery. The first
// strategy that yields JSON wins; its output is then parsed once. A payload
// that decodes but is not a puzzle is reported as puzzledoc.ErrMalformed
// straight away rather than handed to the next strategy.
package rawc
