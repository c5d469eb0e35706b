package testsupport

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"testing"

	"xwordcodec/internal/obfuscation"
	"xwordcodec/internal/puzzledoc"
)

// SampleKey is the chunk-length key used by obfuscated fixtures.
var SampleKey = obfuscation.Key{5, 5, 5, 5, 5, 5, 5}

// MiniDocument returns the one-square puzzle used in small decode tests.
func MiniDocument() *puzzledoc.Document {
	return &puzzledoc.Document{
		Title:       "X",
		Width:       1,
		Height:      1,
		Box:         [][]puzzledoc.Cell{{puzzledoc.Letter("A")}},
		PlacedWords: []puzzledoc.PlacedWord{{X: 0, Y: 0, AcrossNotDown: true, Clue: puzzledoc.Clue{Clue: "c"}}},
		CellInfos:   []puzzledoc.CellInfo{},
	}
}

// SampleDocument returns a 5x5 puzzle with two blocks, one rebus square, two
// circled squares and ten clues. Its encoded payload is long enough for key
// recovery to prune wrong prefixes reliably.
func SampleDocument() *puzzledoc.Document {
	rows := []string{
		"HEAR.",
		"EMBER",
		"AB*SE",
		"RESET",
		".REND",
	}
	doc := &puzzledoc.Document{
		Title:       "Morning Mini",
		Author:      "A. Setter",
		Copyright:   "© 2024 Example Syndicate",
		Width:       5,
		Height:      5,
		Box:         make([][]puzzledoc.Cell, 5),
		PublishTime: json.Number(strconv.FormatInt(1700000000000, 10)),
		CellInfos: []puzzledoc.CellInfo{
			{X: 0, Y: 0, IsCircled: true},
			{X: 4, Y: 3, IsCircled: true},
			{X: 1, Y: 1, IsCircled: false},
		},
	}
	for col := range 5 {
		for row := range 5 {
			var cell puzzledoc.Cell
			switch ch := rows[row][col]; ch {
			case '.':
				cell = puzzledoc.Block()
			case '*':
				cell = puzzledoc.Cell{Text: "US"}
			default:
				cell = puzzledoc.Letter(string(ch))
			}
			doc.Box[col] = append(doc.Box[col], cell)
		}
	}

	across := []string{
		"Listen to, as a case in court",
		"Glowing remnant of a campfire",
		"Misuse, as power or privilege",
		"Start over from the beginning",
		"Fashion that is currently popular",
	}
	down := []string{
		"Organ that keeps a steady beat",
		"Hot coal left in the <i>fireplace</i>",
		"Public transport with many stops",
		"Remove the old settings again",
		"Wind up &amp; send on its way",
	}
	for i, clue := range across {
		doc.PlacedWords = append(doc.PlacedWords, puzzledoc.PlacedWord{
			X: 0, Y: i, AcrossNotDown: true, Word: rows[i], Clue: puzzledoc.Clue{Clue: clue},
		})
	}
	for i, clue := range down {
		doc.PlacedWords = append(doc.PlacedWords, puzzledoc.PlacedWord{
			X: i, Y: 0, AcrossNotDown: false, Clue: puzzledoc.Clue{Clue: clue},
		})
	}
	return doc
}

// DocumentJSON marshals doc the way the vendor serves it.
func DocumentJSON(t testing.TB, doc *puzzledoc.Document) []byte {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	return data
}

// EncodeDocument returns the plain (unobfuscated) base64 payload for doc.
func EncodeDocument(t testing.TB, doc *puzzledoc.Document) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(DocumentJSON(t, doc))
}

// Obfuscate applies the chunk-reversal transform to payload with key.
func Obfuscate(t testing.TB, payload string, key obfuscation.Key) string {
	t.Helper()

	out, err := obfuscation.ReverseChunks(payload, key)
	if err != nil {
		t.Fatalf("obfuscate payload: %v", err)
	}
	return out
}

// LegacyPayload builds a dotted payload whose key is carried, reversed, as
// hex digits (each chunk length minus two) after the dot.
func LegacyPayload(t testing.TB, payload string, key obfuscation.Key) string {
	t.Helper()

	digits := make([]byte, len(key))
	for i, n := range key {
		if n < 2 || n > 17 {
			t.Fatalf("legacy key chunk %d out of range: %d", i, n)
		}
		digits[len(key)-1-i] = strconv.FormatInt(int64(n-2), 16)[0]
	}
	return Obfuscate(t, payload, key) + "." + string(digits)
}
