package grid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"xwordcodec/internal/puzzledoc"
)

const (
	// BlockSquare marks a black square in both Solution and Fill.
	BlockSquare = '.'
	// OpenSquare marks an unfilled white square in Fill.
	OpenSquare = '-'
	// UnknownSquare stands in for a white square whose answer was withheld.
	UnknownSquare = 'X'
	// Circled is the markup bit for a circled square.
	Circled byte = 0x80
)

// Grid is the canonical, row-major form of a puzzle grid. Solution and Fill
// hold one rune per square; Markup and RebusBoard one entry per square.
type Grid struct {
	Width      int
	Height     int
	Solution   string
	Fill       string
	Markup     []byte
	RebusBoard []int
	RebusTable string
	Unsolved   bool
}

// Normalize builds the canonical grid for doc, scanning rows top to bottom
// and columns left to right. doc must satisfy puzzledoc.Document.Validate.
func Normalize(doc *puzzledoc.Document) (*Grid, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	size := doc.Width * doc.Height
	circled := doc.Circled()
	g := &Grid{
		Width:      doc.Width,
		Height:     doc.Height,
		Markup:     make([]byte, 0, size),
		RebusBoard: make([]int, 0, size),
	}

	var solution, fill, table strings.Builder
	solution.Grow(size)
	fill.Grow(size)
	rebusCount := 0

	for row := range doc.Height {
		for col := range doc.Width {
			cell := doc.Box[col][row]
			mark := byte(0)
			if circled[[2]int{col, row}] {
				mark = Circled
			}

			switch {
			case cell.Block:
				solution.WriteByte(BlockSquare)
				fill.WriteByte(BlockSquare)
				g.Markup = append(g.Markup, 0)
				g.RebusBoard = append(g.RebusBoard, 0)
			case cell.Text == "":
				solution.WriteByte(UnknownSquare)
				fill.WriteByte(OpenSquare)
				g.Markup = append(g.Markup, 0)
				g.RebusBoard = append(g.RebusBoard, 0)
			case utf8.RuneCountInString(cell.Text) == 1:
				solution.WriteString(cell.Text)
				fill.WriteByte(OpenSquare)
				g.Markup = append(g.Markup, mark)
				g.RebusBoard = append(g.RebusBoard, 0)
			default:
				first, _ := utf8.DecodeRuneInString(cell.Text)
				solution.WriteRune(first)
				fill.WriteByte(OpenSquare)
				g.Markup = append(g.Markup, mark)
				g.RebusBoard = append(g.RebusBoard, rebusCount+1)
				fmt.Fprintf(&table, "%2d:%s;", rebusCount, cell.Text)
				rebusCount++
			}
		}
	}

	g.Solution = solution.String()
	g.Fill = fill.String()
	g.RebusTable = table.String()
	g.Unsolved = strings.Trim(g.Solution, string([]rune{BlockSquare, UnknownSquare})) == ""
	return g, nil
}

// Index returns the row-major position of (col, row).
func (g *Grid) Index(col, row int) int {
	return row*g.Width + col
}

// HasMarkup reports whether any square is circled.
func (g *Grid) HasMarkup() bool {
	for _, b := range g.Markup {
		if b&Circled != 0 {
			return true
		}
	}
	return false
}

// HasRebus reports whether any square holds a multi-letter answer.
func (g *Grid) HasRebus() bool {
	for _, v := range g.RebusBoard {
		if v != 0 {
			return true
		}
	}
	return false
}

// RebusEntries parses RebusTable back into board value → answer pairs.
func (g *Grid) RebusEntries() map[int]string {
	entries := make(map[int]string)
	for _, item := range strings.Split(g.RebusTable, ";") {
		idx, text, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(idx), "%d", &n); err != nil {
			continue
		}
		entries[n+1] = text
	}
	return entries
}
