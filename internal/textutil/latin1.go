package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var punctuation = map[rune]string{
	'\u2018': "'", '\u2019': "'", '\u201A': "'", '\u2032': "'",
	'\u201C': `"`, '\u201D': `"`, '\u201E': `"`, '\u2033': `"`,
	'\u2010': "-", '\u2011': "-", '\u2012': "-", '\u2013': "-", '\u2014': "-", '\u2212': "-",
	'\u2026': "...",
	'\u2022': "*",
	'\u2002': " ", '\u2003': " ", '\u2009': " ", '\u200A': " ", '\u202F': " ",
	'\u200B': "", '\u200D': "", '\uFEFF': "",
}

// ToLatin1 folds s into characters Latin-1 can represent.
func ToLatin1(s string) string {
	if isLatin1(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= unicode.MaxLatin1 {
			b.WriteRune(r)
			continue
		}
		if repl, ok := punctuation[r]; ok {
			b.WriteString(repl)
			continue
		}
		for _, folded := range stripMarks(string(r)) {
			if folded <= unicode.MaxLatin1 {
				b.WriteRune(folded)
			}
		}
	}
	return b.String()
}

// EncodeLatin1 folds s and encodes it as ISO 8859-1 bytes.
func EncodeLatin1(s string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(ToLatin1(s)))
}

// DecodeLatin1 turns ISO 8859-1 bytes back into a UTF-8 string.
func DecodeLatin1(b []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}

func isLatin1(s string) bool {
	for _, r := range s {
		if r > unicode.MaxLatin1 {
			return false
		}
	}
	return true
}
