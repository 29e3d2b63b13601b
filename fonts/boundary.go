package fonts

import (
	"regexp"
	"strings"

	"github.com/tsawler/papyrus/model"
)

// Boundary marks the start of a section: the page it begins on and its
// cleaned title. Page may be model.NoPage for sections matched by text
// alone (LLM-contributed, no font-based position).
type Boundary struct {
	Page  model.PageNumber
	Title string
}

var pureNumber = regexp.MustCompile(`^\d+$`)

// DetectBoundaries walks the positioned-text stream and emits the ordered
// section boundaries.
//
// Every span rendered in a title font is buffered as a pending candidate
// after numbering-prefix stripping; pure-numeral spans are skipped (page
// numbers misattributed to a title font). The literal text "abstract" in
// any font marks where the paper body starts:
//
//   - If seen, all candidates from that buffer position onward are emitted.
//   - Otherwise (journal formats with no explicit Abstract label) emission
//     starts at the first anchor-word candidate, with a synthesized
//     ("Abstract", page 1) entry when that candidate is beyond page 1.
//   - With no anchor match at all the result is empty; downstream stages
//     treat that as full-text mode.
func DetectBoundaries(spans []TextSpan, titleFonts TitleFonts) []Boundary {
	if titleFonts.FullText {
		return nil
	}

	var pending []Boundary
	abstractSeen := false
	abstractAt := 0

	for _, span := range spans {
		raw := strings.TrimSpace(span.Text)
		if pureNumber.MatchString(raw) {
			continue
		}
		text := StripNumbering(raw)

		if strings.EqualFold(text, "abstract") && !abstractSeen {
			abstractSeen = true
			// If "abstract" is itself title-font it lands at this index;
			// otherwise the next title-font span does.
			abstractAt = len(pending)
		}

		if titleFonts.Contains(span.Font) {
			pending = append(pending, Boundary{Page: span.Page, Title: text})
		}
	}

	if abstractSeen {
		return append([]Boundary(nil), pending[abstractAt:]...)
	}

	// Fallback: start from the first anchor-word candidate.
	for i, b := range pending {
		if IsAnchorWord(b.Title) {
			var out []Boundary
			if b.Page > 1 {
				out = append(out, Boundary{Page: 1, Title: "Abstract"})
			}
			return append(out, pending[i:]...)
		}
	}
	return nil
}
