// Package tables finds table regions on rasterized pages by detecting
// horizontal ruling lines. Text lines falling inside a detected region
// are excluded from section content, since table cells read as garbage
// when flattened into prose.
package tables

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sort"

	"golang.org/x/image/draw"

	"github.com/tsawler/papyrus/model"
)

const (
	// edgeThreshold is the minimum vertical luminance gradient for a
	// pixel to count as part of a horizontal edge.
	edgeThreshold = 96
	// minLineRatio is the minimum ruling-line length as a fraction of
	// page width.
	minLineRatio = 0.25
	// lengthTolerance groups ruling lines whose lengths differ by at
	// most this many pixels.
	lengthTolerance = 3
	// minGroupLines is the minimum number of same-length ruling lines
	// that form a table.
	minGroupLines = 3
)

type rulingLine struct {
	y      int
	xStart int
	xEnd   int
}

func (l rulingLine) length() int { return l.xEnd - l.xStart }

// DetectRegions finds table bounding boxes on a rasterized page and
// returns them in page coordinates. The raster is resampled to the page
// dimensions first so detected pixel positions line up with the
// positioned-text geometry.
func DetectRegions(imagePath string, pageWidth, pageHeight float64) ([]model.Rect, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open page image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}

	w := int(math.Round(pageWidth))
	h := int(math.Round(pageHeight))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid page dimensions %gx%g", pageWidth, pageHeight)
	}
	scaled := image.NewGray(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	return regionsFromGray(scaled), nil
}

// regionsFromGray runs the detection proper on a grayscale raster.
func regionsFromGray(img *image.Gray) []model.Rect {
	lines := mergeAdjacentRows(findRulingLines(img))
	groups := groupByLength(lines)

	var regions []model.Rect
	for _, group := range groups {
		if len(group) < minGroupLines {
			continue
		}
		xmin, ymin := group[0].xStart, group[0].y
		xmax, ymax := group[0].xEnd, group[0].y
		for _, l := range group[1:] {
			xmin = minInt(xmin, l.xStart)
			xmax = maxInt(xmax, l.xEnd)
			ymin = minInt(ymin, l.y)
			ymax = maxInt(ymax, l.y)
		}
		regions = append(regions, model.RectFromCorners(
			float64(xmin), float64(ymin), float64(xmax), float64(ymax)))
	}
	return regions
}

// findRulingLines scans rows for long horizontal runs of strong
// vertical gradient.
func findRulingLines(img *image.Gray) []rulingLine {
	bounds := img.Bounds()
	width := bounds.Dx()
	minLength := int(float64(width) * minLineRatio)

	var lines []rulingLine
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		runStart := -1
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			above := int(img.GrayAt(x, y-1).Y)
			below := int(img.GrayAt(x, y+1).Y)
			edge := absInt(above-below) >= edgeThreshold

			if edge && runStart < 0 {
				runStart = x
			}
			if (!edge || x == bounds.Max.X-1) && runStart >= 0 {
				end := x
				if edge {
					end = x + 1
				}
				if end-runStart >= minLength {
					lines = append(lines, rulingLine{y: y, xStart: runStart, xEnd: end})
				}
				runStart = -1
			}
		}
	}
	return lines
}

// mergeAdjacentRows collapses edge responses on neighboring rows into a
// single ruling line. A one-pixel rule produces a gradient response on
// both sides, which would double-count it.
func mergeAdjacentRows(lines []rulingLine) []rulingLine {
	sort.Slice(lines, func(i, j int) bool { return lines[i].y < lines[j].y })

	var out []rulingLine
	for _, l := range lines {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if l.y-prev.y <= 2 && l.xStart < prev.xEnd && prev.xStart < l.xEnd {
				prev.xStart = minInt(prev.xStart, l.xStart)
				prev.xEnd = maxInt(prev.xEnd, l.xEnd)
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

// groupByLength clusters ruling lines whose lengths agree within the
// tolerance. Lines in one cluster are assumed to belong to one table.
func groupByLength(lines []rulingLine) [][]rulingLine {
	sort.Slice(lines, func(i, j int) bool { return lines[i].length() < lines[j].length() })

	var groups [][]rulingLine
	for _, l := range lines {
		placed := false
		for i, group := range groups {
			if absInt(group[len(group)-1].length()-l.length()) <= lengthTolerance {
				groups[i] = append(group, l)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []rulingLine{l})
		}
	}
	return groups
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
