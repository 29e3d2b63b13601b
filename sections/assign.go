// Package sections assigns section labels to page blocks, classifies
// caption blocks, merges font-based section boundaries with externally
// validated titles, and collects reference-list text.
package sections

import (
	"regexp"
	"strings"

	"github.com/tsawler/papyrus/fonts"
	"github.com/tsawler/papyrus/model"
)

// FullTextSection is the single section label used when no section
// structure could be detected in the document.
const FullTextSection = "Content"

var leadingNumber = regexp.MustCompile(`^\d+\.`)

// Assign walks every line of every page in order and stamps each block
// with the section in effect after that block's last line. With no
// boundaries, every block is labeled FullTextSection. Otherwise the
// label starts at "Abstract" and advances whenever a line matches a
// boundary title; boundaries carrying a page number only match on that
// page, while page-less boundaries match by text anywhere. A block whose
// header line is not its last line takes the new section for the whole
// block, including the lines before the header.
func Assign(pages []*model.Page, boundaries []fonts.Boundary) {
	if len(boundaries) == 0 {
		for _, page := range pages {
			for _, block := range page.Blocks {
				block.Section = FullTextSection
			}
		}
		return
	}

	current := "Abstract"
	for _, page := range pages {
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				text := leadingNumber.ReplaceAllString(line.Text(), "")
				text = strings.TrimSpace(text)
				for _, b := range boundaries {
					if !strings.EqualFold(text, b.Title) {
						continue
					}
					if b.Page >= 0 && b.Page != page.Number {
						continue
					}
					current = b.Title
					break
				}
			}
			block.Section = current
		}
	}
}

// LastSectionPage returns the page of the last boundary that carries a
// page number, or zero when none do.
func LastSectionPage(boundaries []fonts.Boundary) model.PageNumber {
	last := model.PageNumber(0)
	for _, b := range boundaries {
		if b.Page > last {
			last = b.Page
		}
	}
	return last
}

// Titles returns the boundary titles in order.
func Titles(boundaries []fonts.Boundary) []string {
	out := make([]string, 0, len(boundaries))
	for _, b := range boundaries {
		out = append(out, b.Title)
	}
	return out
}
