package crossword

import (
	"fmt"
	"strings"
	"time"

	"xwordcodec/internal/clues"
	"xwordcodec/internal/grid"
	"xwordcodec/internal/puzzledoc"
	"xwordcodec/internal/textutil"
)

// UnsolvedNote is appended to the display title of a puzzle without a solution.
const UnsolvedNote = " - no solution provided"

// Extension section names understood by puzzle-file writers.
const (
	SectionMarkup     = "GEXT"
	SectionRebusBoard = "GRBS"
	SectionRebusTable = "RTBL"
)

// Options controls text cleanup.
type Options struct {
	// CleanText flattens HTML and folds text to Latin-1.
	CleanText bool
	// PreserveHTML keeps markup when CleanText is set.
	PreserveHTML bool
}

// Puzzle is the canonical document.
type Puzzle struct {
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Copyright   string     `json:"copyright"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Solution    string     `json:"solution"`
	Fill        string     `json:"fill"`
	Markup      []byte     `json:"markup"`
	RebusBoard  []int      `json:"rebus_board"`
	RebusTable  string     `json:"rebus_table,omitempty"`
	Clues       []string   `json:"clues"`
	Unsolved    bool       `json:"unsolved"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Section is one named extension block.
type Section struct {
	Name string
	Data []byte
}

// Build normalizes doc into a Puzzle.
func Build(doc *puzzledoc.Document, opts Options) (*Puzzle, error) {
	g, err := grid.Normalize(doc)
	if err != nil {
		return nil, err
	}

	clean := func(s string) string {
		if !opts.CleanText {
			return strings.TrimSpace(s)
		}
		return textutil.Cleanup(s, opts.PreserveHTML)
	}

	p := &Puzzle{
		Title:      clean(doc.Title),
		Author:     clean(doc.Author),
		Copyright:  clean(doc.Copyright),
		Width:      g.Width,
		Height:     g.Height,
		Solution:   g.Solution,
		Fill:       g.Fill,
		Markup:     g.Markup,
		RebusBoard: g.RebusBoard,
		RebusTable: g.RebusTable,
		Unsolved:   g.Unsolved,
	}
	for _, text := range clues.Sequence(doc.PlacedWords) {
		p.Clues = append(p.Clues, clean(text))
	}
	if p.Clues == nil {
		p.Clues = []string{}
	}
	if at := doc.PublishedAt(); !at.IsZero() {
		p.PublishedAt = &at
	}
	return p, nil
}

// DisplayTitle is the title a writer should store, flagged when the payload
// carried no solution.
func (p *Puzzle) DisplayTitle() string {
	if p.Unsolved {
		return p.Title + UnsolvedNote
	}
	return p.Title
}

// HasMarkup reports whether any square is circled.
func (p *Puzzle) HasMarkup() bool {
	for _, b := range p.Markup {
		if b&grid.Circled != 0 {
			return true
		}
	}
	return false
}

// HasRebus reports whether any square holds a multi-letter answer.
func (p *Puzzle) HasRebus() bool {
	for _, v := range p.RebusBoard {
		if v != 0 {
			return true
		}
	}
	return false
}

// Extensions returns the sections a writer must add, in write order: the
// markup block when a square is circled, then the rebus board and table when
// a square holds a rebus.
func (p *Puzzle) Extensions() ([]Section, error) {
	var out []Section
	if p.HasMarkup() {
		out = append(out, Section{Name: SectionMarkup, Data: append([]byte(nil), p.Markup...)})
	}
	if p.HasRebus() {
		board := make([]byte, len(p.RebusBoard))
		for i, v := range p.RebusBoard {
			if v < 0 || v > 0xFF {
				return nil, fmt.Errorf("rebus board value %d at square %d does not fit in a byte", v, i)
			}
			board[i] = byte(v)
		}
		table, err := textutil.EncodeLatin1(p.RebusTable)
		if err != nil {
			return nil, fmt.Errorf("encode rebus table: %w", err)
		}
		out = append(out,
			Section{Name: SectionRebusBoard, Data: board},
			Section{Name: SectionRebusTable, Data: table},
		)
	}
	return out, nil
}
