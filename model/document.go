// Package model defines the document entities produced by positioned-text
// extraction (Word, Line, Block, Page) and the structured output types
// (Section, Reference, PaperOutput) built from them.
package model

import (
	"sort"
	"strings"
)

// PageNumber identifies a page within a document. Negative values are a
// sentinel meaning "no page association": sections contributed by an LLM
// with no font-based match carry NoPage and are matched by text alone.
type PageNumber = int

// NoPage is the sentinel page number for sections not tied to a page.
const NoPage PageNumber = -1

// BlockType classifies a text block within a page.
type BlockType int

const (
	// BlockBody is normal body text (the default).
	BlockBody BlockType = iota
	// BlockCaption is a figure/table/scheme/listing caption.
	BlockCaption
	// BlockHeader is a section header.
	BlockHeader
)

func (bt BlockType) String() string {
	switch bt {
	case BlockCaption:
		return "Caption"
	case BlockHeader:
		return "Header"
	default:
		return "Body"
	}
}

// Word is a single word with its bounding box. The box height doubles as
// the rendered font size. Words are not modified after construction.
type Word struct {
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FontSize returns the rendered size of the word.
func (w Word) FontSize() float64 { return w.Height }

// Line is an ordered sequence of words forming one visual line.
type Line struct {
	Words  []Word
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewLine creates an empty line with the given bounding box.
func NewLine(x, y, width, height float64) *Line {
	return &Line{X: x, Y: y, Width: width, Height: height}
}

// AddWord appends a word to the line, trimming surrounding whitespace.
func (l *Line) AddWord(text string, x, y, width, height float64) {
	l.Words = append(l.Words, Word{
		Text:   strings.TrimSpace(text),
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	})
}

// Text returns the words of the line joined by single spaces.
func (l *Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// Bounds returns the line's bounding box.
func (l *Line) Bounds() Rect {
	return NewRect(l.X, l.Y, l.Width, l.Height)
}

// Block is an ordered sequence of lines. The Section label and Type are
// assigned by later pipeline passes; a freshly parsed block has an empty
// section and BlockBody type.
type Block struct {
	Lines   []*Line
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Section string
	Type    BlockType
}

// NewBlock creates an empty block with the given bounding box.
func NewBlock(x, y, width, height float64) *Block {
	return &Block{X: x, Y: y, Width: width, Height: height}
}

// Bounds returns the block's bounding box.
func (b *Block) Bounds() Rect {
	return NewRect(b.X, b.Y, b.Width, b.Height)
}

// Text joins the block's lines into a single string. A line ending in "-"
// is merged with the next line without an inserted space (line-break
// hyphenation), and compound words broken by that merge are re-hyphenated
// for a fixed suffix list ("databased" becomes "data-based").
func (b *Block) Text() string {
	var text string
	for _, line := range b.Lines {
		text = strings.TrimSpace(text)
		if strings.HasSuffix(text, "-") {
			text = strings.TrimSuffix(text, "-")
		} else if text != "" {
			text += " "
		}
		text += line.Text()
	}
	return strings.TrimSpace(FixSuffixHyphens(text))
}

// Page is an ordered sequence of blocks plus page geometry. Block order is
// as received from extraction until column adjustment reorders it.
type Page struct {
	Blocks  []*Block
	Width   float64
	Height  float64
	Tables  []Rect
	Number  PageNumber
	Columns int
}

// NewPage creates an empty single-column page.
func NewPage(width, height float64, number PageNumber) *Page {
	return &Page{Width: width, Height: height, Number: number, Columns: 1}
}

// Text returns all block texts joined by blank lines.
func (p *Page) Text() string {
	var sb strings.Builder
	for _, block := range p.Blocks {
		sb.WriteString(block.Text())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (p *Page) lineEdges(edge func(*Line) float64, ascending bool) (float64, bool) {
	var values []float64
	for _, block := range p.Blocks {
		for _, line := range block.Lines {
			values = append(values, edge(line))
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	sort.Float64s(values)
	if ascending {
		return values[0], true
	}
	return values[len(values)-1], true
}

// Top returns the y-coordinate of the topmost line on the page.
func (p *Page) Top() (float64, bool) {
	return p.lineEdges(func(l *Line) float64 { return l.Y }, true)
}

// Bottom returns the y-coordinate of the bottommost line edge on the page.
func (p *Page) Bottom() (float64, bool) {
	return p.lineEdges(func(l *Line) float64 { return l.Y + l.Height }, false)
}

// Left returns the x-coordinate of the leftmost line on the page.
func (p *Page) Left() (float64, bool) {
	return p.lineEdges(func(l *Line) float64 { return l.X }, true)
}

// Right returns the x-coordinate of the rightmost line edge on the page.
func (p *Page) Right() (float64, bool) {
	return p.lineEdges(func(l *Line) float64 { return l.X + l.Width }, false)
}
