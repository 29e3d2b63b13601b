package sections

import (
	"strings"

	"github.com/tsawler/papyrus/fonts"
	"github.com/tsawler/papyrus/model"
)

// Merge reconciles font-based boundaries with a validated title list
// covering pages up to examinedMax. The validated order wins for the
// examined range: each validated title keeps the page of its font-based
// match, or NoPage when the detector never saw it. Font-based boundaries
// on pages beyond the examined range are appended in their original
// order; font-based boundaries inside the range that the validated list
// does not confirm are dropped as false positives.
func Merge(fontBased []fonts.Boundary, validated []string, examinedMax model.PageNumber) []fonts.Boundary {
	merged := make([]fonts.Boundary, 0, len(validated))
	confirmed := make(map[string]bool, len(validated))

	for _, title := range validated {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		page := model.NoPage
		for _, b := range fontBased {
			if strings.EqualFold(b.Title, title) {
				page = b.Page
				break
			}
		}
		merged = append(merged, fonts.Boundary{Page: page, Title: title})
		confirmed[strings.ToLower(title)] = true
	}

	for _, b := range fontBased {
		if b.Page <= examinedMax {
			continue
		}
		if confirmed[strings.ToLower(b.Title)] {
			continue
		}
		merged = append(merged, b)
	}
	return merged
}
