package fonts

import (
	"math"
	"regexp"
	"strings"
)

// AnchorWords are section titles common enough to validate that a font
// really renders headings rather than incidental bold or large text.
var AnchorWords = []string{
	"abstract",
	"introduction",
	"background",
	"related work",
	"method",
	"methodology",
	"methods",
	"experiments",
	"results",
	"discussion",
	"conclusion",
	"conclusions",
	"references",
	"acknowledgments",
	"acknowledgements",
	"appendix",
}

// Scoring weights and thresholds, tuned against a paper corpus. Changing
// them changes observable output.
const (
	scoreLargerThanBody  = 1.0
	scoreSmallerThanBody = -1.0
	scoreBoldFamily      = 0.3
	scoreAnchorUsage     = 0.5
	candidateThreshold   = 1.0
	titleSizeTolerance   = 0.1
)

var leadingNumber = regexp.MustCompile(`^\d+\.?\s*`)

// StripNumbering removes a leading "N." style numbering prefix from a
// heading candidate ("1. Introduction" becomes "Introduction").
func StripNumbering(text string) string {
	return strings.TrimSpace(leadingNumber.ReplaceAllString(text, ""))
}

// IsAnchorWord reports whether text (lowercased, optionally numbered)
// matches one of the anchor section titles.
func IsAnchorWord(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	stripped := StripNumbering(t)
	for _, aw := range AnchorWords {
		if t == aw || stripped == aw {
			return true
		}
	}
	return false
}

// TitleFonts is the outcome of font scoring: either a set of fonts judged
// to render section titles, or full-text mode when no confident title
// font exists.
type TitleFonts struct {
	Set      map[int]bool
	FullText bool
}

// Contains reports whether the font id is in the title set.
func (tf TitleFonts) Contains(id int) bool {
	return tf.Set[id]
}

// ScoreTitleFonts identifies the fonts that render section headings.
//
// The body font is the one with the highest total character count (ties
// broken by map order; this is a heuristic, not guaranteed correct). Each
// font scores +1 for being larger than body, -1 for smaller, +0.3 for a
// bold/black family name, and +0.5 if any of its text matches an anchor
// word. Fonts scoring at least 1.0 are candidates; with no candidates the
// result is full-text mode. Among anchor-matched candidates the canonical
// title size is the smallest size still larger than body (section headers
// are typically the smallest larger-than-body font, not the paper title),
// and the title set is every candidate within 0.1pt of it.
func ScoreTitleFonts(df *DocumentFonts) TitleFonts {
	var bodyFont int
	bodyCount := -1
	for id, count := range df.CharCounts {
		if count > bodyCount {
			bodyFont, bodyCount = id, count
		}
	}
	bodySize := df.Specs[bodyFont].Size

	anchorFonts := make(map[int]bool)
	for _, span := range df.Spans {
		if IsAnchorWord(span.Text) {
			anchorFonts[span.Font] = true
		}
	}

	var candidates []int
	for id, spec := range df.Specs {
		score := 0.0
		if bodySize > 0 {
			if spec.Size > bodySize {
				score += scoreLargerThanBody
			} else if spec.Size < bodySize {
				score += scoreSmallerThanBody
			}
		}
		family := strings.ToLower(spec.Family)
		if strings.Contains(family, "bold") || strings.Contains(family, "black") {
			score += scoreBoldFamily
		}
		if anchorFonts[id] {
			score += scoreAnchorUsage
		}
		if score >= candidateThreshold {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		return TitleFonts{FullText: true}
	}

	// Canonical title size: among anchor-matched candidates, the smallest
	// size still larger than body.
	bestAnchor := -1
	bestSize := math.Inf(1)
	firstAnchor := -1
	for _, id := range candidates {
		if !anchorFonts[id] {
			continue
		}
		if firstAnchor < 0 {
			firstAnchor = id
		}
		size := df.Specs[id].Size
		if size > bodySize && size < bestSize {
			bestAnchor, bestSize = id, size
		}
	}
	if bestAnchor < 0 {
		bestAnchor = firstAnchor
	}

	set := make(map[int]bool)
	if bestAnchor >= 0 {
		titleSize := df.Specs[bestAnchor].Size
		for _, id := range candidates {
			if math.Abs(df.Specs[id].Size-titleSize) < titleSizeTolerance {
				set[id] = true
			}
		}
	} else {
		for _, id := range candidates {
			set[id] = true
		}
	}
	return TitleFonts{Set: set}
}
