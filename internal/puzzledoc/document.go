package puzzledoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// BlockMarker is the box value the vendor uses for a black square.
const BlockMarker = "\x00"

// Document is a decoded puzzle payload.
type Document struct {
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Copyright   string       `json:"copyright"`
	Width       int          `json:"w"`
	Height      int          `json:"h"`
	Box         [][]Cell     `json:"box"`
	PlacedWords []PlacedWord `json:"placedWords"`
	CellInfos   []CellInfo   `json:"cellInfos"`
	PublishTime json.Number  `json:"publishTime,omitempty"`
}

// Cell is one entry of the column-major box matrix, addressed Box[col][row].
type Cell struct {
	Text  string
	Block bool
}

// Letter returns a single-letter cell.
func Letter(text string) Cell { return Cell{Text: text} }

// Block returns a black square.
func Block() Cell { return Cell{Block: true} }

func (c *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Cell{Block: true}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("box cell: %w", err)
	}
	if text == BlockMarker {
		*c = Cell{Block: true}
		return nil
	}
	*c = Cell{Text: text}
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Block {
		return json.Marshal(BlockMarker)
	}
	return json.Marshal(c.Text)
}

// PlacedWord is an entry in the word list: a start square, a direction and
// its clue.
type PlacedWord struct {
	X             int    `json:"x"`
	Y             int    `json:"y"`
	AcrossNotDown bool   `json:"acrossNotDown"`
	Word          string `json:"word,omitempty"`
	Clue          Clue   `json:"clue"`
}

// Clue holds the clue text of a placed word.
type Clue struct {
	Clue string `json:"clue"`
}

// CellInfo carries per-square presentation flags.
type CellInfo struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	IsCircled bool `json:"isCircled"`
}

// PublishedAt converts the millisecond publish timestamp. The zero time means
// the payload did not say.
func (d *Document) PublishedAt() time.Time {
	if d.PublishTime == "" {
		return time.Time{}
	}
	ms, err := d.PublishTime.Int64()
	if err != nil {
		f, ferr := d.PublishTime.Float64()
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}
		}
		ms = int64(f)
	}
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// Circled returns the set of circled squares keyed by [col, row].
func (d *Document) Circled() map[[2]int]bool {
	circled := make(map[[2]int]bool)
	for _, info := range d.CellInfos {
		if info.IsCircled {
			circled[[2]int{info.X, info.Y}] = true
		}
	}
	return circled
}
