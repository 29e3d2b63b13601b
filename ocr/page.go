package ocr

import (
	"strings"

	"github.com/tsawler/papyrus/model"
)

// SynthesizePage turns recognized text into a document page with a
// single full-width block. OCR yields no glyph geometry, so lines are
// stacked evenly down the page; downstream passes only need the text
// and a plausible bounding box.
func SynthesizePage(number model.PageNumber, width, height float64, text string) *model.Page {
	page := model.NewPage(width, height, number)
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return page
	}

	block := model.NewBlock(0, 0, width, height)
	lineHeight := height / float64(len(lines))
	for i, text := range lines {
		line := model.NewLine(0, float64(i)*lineHeight, width, lineHeight)
		for _, word := range strings.Fields(text) {
			line.AddWord(word, 0, float64(i)*lineHeight, 0, lineHeight)
		}
		block.Lines = append(block.Lines, line)
	}
	page.Blocks = append(page.Blocks, block)
	return page
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
