package layout

import "github.com/tsawler/papyrus/model"

// columnThresholdDivisor: when the average line width is narrower than
// the page width divided by this, the document is treated as two-column.
const columnThresholdDivisor = 1.5

// AdjustColumns detects a two-column layout and reorders blocks into
// reading order. Line widths are averaged over pages up to
// lastSectionPage so reference lists and appendices with irregular
// layouts do not skew the estimate; when no section information is
// available every page contributes. In a two-column document each page's
// blocks are partitioned at the column split, left column first, with
// the original order preserved within each column.
func AdjustColumns(pages []*model.Page, pageWidth float64, lastSectionPage model.PageNumber) {
	var sum float64
	var count int
	for _, page := range pages {
		if lastSectionPage > 0 && page.Number > lastSectionPage {
			continue
		}
		for _, block := range page.Blocks {
			var blockSum float64
			for _, line := range block.Lines {
				blockSum += line.Width
			}
			if len(block.Lines) == 0 {
				continue
			}
			sum += blockSum / float64(len(block.Lines))
			count++
		}
	}
	if count == 0 || sum/float64(count) >= pageWidth/columnThresholdDivisor {
		return
	}

	split := pageWidth / twoColumnDivisor
	for _, page := range pages {
		page.Columns = 2
		var left, right []*model.Block
		for _, block := range page.Blocks {
			if block.X > split {
				right = append(right, block)
			} else {
				left = append(left, block)
			}
		}
		page.Blocks = append(left, right...)
	}
}
