package sections

import (
	"strings"

	"github.com/tsawler/papyrus/model"
)

func isReferencesTitle(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "references" || s == "bibliography"
}

// CollectReferencesText gathers the raw text of the reference list.
// Blocks assigned to a references/bibliography section contribute their
// text, minus the section header itself. When no block carries such a
// section label, the fallback scans all lines for a bare
// "References"/"Bibliography" line and returns everything after it.
func CollectReferencesText(pages []*model.Page) string {
	var parts []string
	for _, page := range pages {
		for _, block := range page.Blocks {
			if !isReferencesTitle(block.Section) {
				continue
			}
			text := block.Text()
			if isReferencesTitle(text) {
				continue
			}
			parts = append(parts, text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n")
	}

	var after []string
	seen := false
	for _, page := range pages {
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				text := line.Text()
				if !seen {
					if isReferencesTitle(text) {
						seen = true
					}
					continue
				}
				after = append(after, text)
			}
		}
	}
	return strings.Join(after, "\n")
}
