package sections

import (
	"strings"
	"testing"

	"github.com/tsawler/papyrus/fonts"
	"github.com/tsawler/papyrus/model"
)

func textLine(text string, y float64) *model.Line {
	line := model.NewLine(50, y, 500, 12)
	for i, word := range strings.Fields(text) {
		line.AddWord(word, 50+float64(i)*20, y, 18, 12)
	}
	return line
}

func textBlock(y float64, lines ...string) *model.Block {
	block := model.NewBlock(50, y, 500, float64(len(lines))*12)
	for i, text := range lines {
		block.Lines = append(block.Lines, textLine(text, y+float64(i)*12))
	}
	return block
}

func testPage(number model.PageNumber, blocks ...*model.Block) *model.Page {
	page := model.NewPage(612, 792, number)
	page.Blocks = blocks
	return page
}

func TestAssign(t *testing.T) {
	pages := []*model.Page{
		testPage(1,
			textBlock(50, "A Study of Parsers"),
			textBlock(100, "Abstract"),
			textBlock(120, "This paper presents a parser."),
			textBlock(200, "1. Introduction"),
			textBlock(220, "Parsing is hard."),
		),
		testPage(2,
			textBlock(50, "Still introducing."),
			textBlock(100, "2. Method"),
			textBlock(120, "We parse."),
		),
	}
	boundaries := []fonts.Boundary{
		{Page: 1, Title: "Abstract"},
		{Page: 1, Title: "Introduction"},
		{Page: 2, Title: "Method"},
	}

	Assign(pages, boundaries)

	want := [][]string{
		{"Abstract", "Abstract", "Abstract", "Introduction", "Introduction"},
		{"Introduction", "Method", "Method"},
	}
	for p, page := range pages {
		for b, block := range page.Blocks {
			if block.Section != want[p][b] {
				t.Errorf("page %d block %d: got %q, want %q", p+1, b, block.Section, want[p][b])
			}
		}
	}
}

func TestAssignPageScoping(t *testing.T) {
	pages := []*model.Page{
		testPage(1, textBlock(50, "Method"), textBlock(100, "early mention.")),
		testPage(3, textBlock(50, "Method"), textBlock(100, "the real section.")),
	}
	boundaries := []fonts.Boundary{{Page: 3, Title: "Method"}}

	Assign(pages, boundaries)

	if pages[0].Blocks[1].Section != "Abstract" {
		t.Errorf("expected page 1 untouched by page-3 boundary, got %q", pages[0].Blocks[1].Section)
	}
	if pages[1].Blocks[1].Section != "Method" {
		t.Errorf("expected page 3 switched to Method, got %q", pages[1].Blocks[1].Section)
	}
}

func TestAssignTextOnlyBoundary(t *testing.T) {
	pages := []*model.Page{
		testPage(2, textBlock(50, "Limitations"), textBlock(100, "it has some.")),
	}
	boundaries := []fonts.Boundary{{Page: model.NoPage, Title: "Limitations"}}

	Assign(pages, boundaries)

	if pages[0].Blocks[1].Section != "Limitations" {
		t.Errorf("expected text-only boundary to match, got %q", pages[0].Blocks[1].Section)
	}
}

func TestAssignFullText(t *testing.T) {
	pages := []*model.Page{
		testPage(1, textBlock(50, "everything is one section.")),
	}

	Assign(pages, nil)

	if pages[0].Blocks[0].Section != FullTextSection {
		t.Errorf("expected %q, got %q", FullTextSection, pages[0].Blocks[0].Section)
	}
}

func TestAssignMidBlockHeader(t *testing.T) {
	// The header is the second of three lines; the block takes the new
	// section wholesale, including the line before the header.
	block := textBlock(50, "trailing abstract text.", "1. Introduction", "first intro sentence.")
	pages := []*model.Page{testPage(1, block)}
	boundaries := []fonts.Boundary{{Page: 1, Title: "Introduction"}}

	Assign(pages, boundaries)

	if block.Section != "Introduction" {
		t.Errorf("expected whole block labeled Introduction, got %q", block.Section)
	}
}

func TestLastSectionPage(t *testing.T) {
	boundaries := []fonts.Boundary{
		{Page: 1, Title: "Abstract"},
		{Page: 7, Title: "References"},
		{Page: model.NoPage, Title: "Limitations"},
	}
	if got := LastSectionPage(boundaries); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := LastSectionPage(nil); got != 0 {
		t.Errorf("expected 0 for no boundaries, got %d", got)
	}
}

func TestTitles(t *testing.T) {
	boundaries := []fonts.Boundary{
		{Page: 1, Title: "Abstract"},
		{Page: 2, Title: "Method"},
	}
	got := Titles(boundaries)
	if len(got) != 2 || got[0] != "Abstract" || got[1] != "Method" {
		t.Errorf("unexpected titles %v", got)
	}
}
