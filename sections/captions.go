package sections

import (
	"regexp"

	"github.com/tsawler/papyrus/model"
)

// captionPatterns match the lead-in of figure, table, scheme, algorithm,
// and listing captions, including appendix-qualified numbering such as
// "Figure A1".
var captionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^fig(?:ure)?\.?\s*\d+[.:]?`),
	regexp.MustCompile(`(?i)^table\.?\s*\d+[.:]?`),
	regexp.MustCompile(`(?i)^(?:scheme|algorithm)\.?\s*\d+[.:]?`),
	regexp.MustCompile(`(?i)^listing\.?\s*\d+[.:]?`),
	regexp.MustCompile(`(?i)^(?:fig(?:ure)?|table)\.?\s*[A-Z]\d+[.:]?`),
}

// IsCaption reports whether text opens like a float caption.
func IsCaption(text string) bool {
	for _, p := range captionPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// ClassifyBlocks marks caption blocks on every page. Body is the default
// type, so only captions are stamped.
func ClassifyBlocks(pages []*model.Page) {
	for _, page := range pages {
		for _, block := range page.Blocks {
			if IsCaption(block.Text()) {
				block.Type = model.BlockCaption
			}
		}
	}
}
