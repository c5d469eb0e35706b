// Package crossword assembles the canonical puzzle handed to a puzzle-file
// writer: cleaned metadata, the normalized grid, the ordered clue list and
// the named extension sections the writer has to emit.
package crossword
