// Package textutil cleans puzzle text for puzzle-file writers and builds safe
// file names.
//
// Puzzle files store text as Latin-1, so ToLatin1 keeps what Latin-1 can
// hold, maps common typographic punctuation to ASCII, strips accents from
// everything else and drops what is left. HTMLToText flattens clue markup.
package textutil
