package tables

import (
	"image"
	"image/color"
	"testing"
)

// drawRule paints a horizontal black line on a white raster.
func drawRule(img *image.Gray, y, xStart, xEnd int) {
	for x := xStart; x < xEnd; x++ {
		img.SetGray(x, y, color.Gray{Y: 0})
	}
}

func whitePage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestRegionsFromGray(t *testing.T) {
	img := whitePage(600, 800)
	// Three same-length rules: a header rule, a mid rule, a bottom rule.
	drawRule(img, 200, 100, 500)
	drawRule(img, 240, 100, 500)
	drawRule(img, 300, 100, 500)

	regions := regionsFromGray(img)
	if len(regions) != 1 {
		t.Fatalf("expected 1 table region, got %d", len(regions))
	}

	r := regions[0]
	if r.X > 105 || r.Right() < 495 {
		t.Errorf("unexpected horizontal extent %f..%f", r.X, r.Right())
	}
	if r.Y > 202 || r.Bottom() < 298 {
		t.Errorf("unexpected vertical extent %f..%f", r.Y, r.Bottom())
	}
}

func TestRegionsFromGrayTooFewLines(t *testing.T) {
	img := whitePage(600, 800)
	drawRule(img, 200, 100, 500)
	drawRule(img, 300, 100, 500)

	if regions := regionsFromGray(img); len(regions) != 0 {
		t.Errorf("expected no regions for two rules, got %v", regions)
	}
}

func TestRegionsFromGrayShortLines(t *testing.T) {
	img := whitePage(600, 800)
	// Underlines far shorter than a quarter page width.
	drawRule(img, 200, 100, 160)
	drawRule(img, 240, 100, 160)
	drawRule(img, 300, 100, 160)

	if regions := regionsFromGray(img); len(regions) != 0 {
		t.Errorf("expected no regions for short rules, got %v", regions)
	}
}

func TestRegionsFromGrayBlank(t *testing.T) {
	if regions := regionsFromGray(whitePage(600, 800)); len(regions) != 0 {
		t.Errorf("expected no regions on a blank page, got %v", regions)
	}
}
