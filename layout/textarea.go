// Package layout normalizes page geometry: it estimates the shared text
// area of a document, prunes marginal blocks outside it, and detects and
// reorders two-column layouts into reading order.
package layout

import (
	"sort"

	"github.com/tsawler/papyrus/model"
)

// TextArea estimates the rectangle occupied by body text across the
// document. Each page contributes its extreme line edges, and the
// per-axis medians over all non-empty pages form the result.
func TextArea(pages []*model.Page) model.Rect {
	var lefts, rights, tops, bottoms []float64
	for _, page := range pages {
		left, ok := page.Left()
		if !ok {
			continue
		}
		right, _ := page.Right()
		top, _ := page.Top()
		bottom, _ := page.Bottom()
		lefts = append(lefts, left)
		rights = append(rights, right)
		tops = append(tops, top)
		bottoms = append(bottoms, bottom)
	}
	if len(lefts) == 0 {
		return model.Rect{}
	}
	return model.RectFromCorners(median(lefts), median(tops), median(rights), median(bottoms))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
