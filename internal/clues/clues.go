// Package clues orders placed words into crossword numbering order.
package clues

import (
	"cmp"
	"slices"

	"xwordcodec/internal/puzzledoc"
)

// Sequence returns the clue text of every placed word, ordered by row, then
// column, with across before down at a shared start square. Ties keep their
// input order.
func Sequence(words []puzzledoc.PlacedWord) []string {
	ordered := slices.Clone(words)
	slices.SortStableFunc(ordered, compare)

	out := make([]string, len(ordered))
	for i, word := range ordered {
		out[i] = word.Clue.Clue
	}
	return out
}

func compare(a, b puzzledoc.PlacedWord) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(downRank(a), downRank(b))
}

func downRank(w puzzledoc.PlacedWord) int {
	if w.AcrossNotDown {
		return 0
	}
	return 1
}
