package layout

import (
	"regexp"
	"strings"

	"github.com/tsawler/papyrus/model"
)

const (
	// narrowWidthRatio is the block-width to column-width ratio below
	// which a short non-title block counts as marginal noise.
	narrowWidthRatio = 0.3
	// shortBlockLines is the line count below which a narrow non-title
	// block counts as marginal noise.
	shortBlockLines = 4

	twoColumnDivisor    = 2.2
	singleColumnDivisor = 1.1
)

var leadingSectionNumber = regexp.MustCompile(`^\d+\.`)

// Prune removes blocks that fall entirely outside the document text area,
// such as page numbers and running headers. When section titles are
// known, it additionally removes narrow short blocks whose text is not a
// section title; documents in full-text mode skip that second rule since
// no title information exists to protect headers with.
func Prune(pages []*model.Page, textArea model.Rect, sectionTitles []string, fullText bool) {
	titles := make(map[string]bool, len(sectionTitles))
	for _, t := range sectionTitles {
		titles[strings.ToLower(strings.TrimSpace(t))] = true
	}

	for _, page := range pages {
		columnWidth := page.Width / singleColumnDivisor
		if page.Columns == 2 {
			columnWidth = page.Width / twoColumnDivisor
		}

		kept := page.Blocks[:0]
		for _, block := range page.Blocks {
			if block.Bounds().IoU(textArea) == 0 {
				continue
			}
			if !fullText && isMarginalBlock(block, columnWidth, titles) {
				continue
			}
			kept = append(kept, block)
		}
		page.Blocks = kept
	}
}

func isMarginalBlock(block *model.Block, columnWidth float64, titles map[string]bool) bool {
	text := leadingSectionNumber.ReplaceAllString(block.Text(), "")
	text = strings.ToLower(strings.TrimSpace(text))
	if titles[text] {
		return false
	}
	return block.Width/columnWidth < narrowWidthRatio && len(block.Lines) < shortBlockLines
}
