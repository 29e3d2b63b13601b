package model

import (
	"math"
	"testing"
)

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(10, 20, 110, 70)

	if r.X != 10 || r.Y != 20 {
		t.Errorf("expected origin (10, 20), got (%f, %f)", r.X, r.Y)
	}
	if r.Width != 100 || r.Height != 50 {
		t.Errorf("expected size 100x50, got %fx%f", r.Width, r.Height)
	}
}

func TestIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	if !a.Intersects(NewRect(5, 5, 10, 10)) {
		t.Error("expected overlapping rects to intersect")
	}
	if a.Intersects(NewRect(20, 20, 10, 10)) {
		t.Error("expected disjoint rects not to intersect")
	}
	if a.Intersects(NewRect(10, 0, 10, 10)) {
		t.Error("expected edge-touching rects not to intersect")
	}
}

func TestIntersection(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	inter := a.Intersection(b)
	if inter.X != 5 || inter.Y != 5 || inter.Width != 5 || inter.Height != 5 {
		t.Errorf("unexpected intersection %+v", inter)
	}

	empty := a.Intersection(NewRect(50, 50, 10, 10))
	if !empty.IsEmpty() {
		t.Errorf("expected empty intersection, got %+v", empty)
	}
}

func TestIoU(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	if got := a.IoU(a); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected IoU 1.0 for identical rects, got %f", got)
	}
	if got := a.IoU(NewRect(20, 0, 10, 10)); got != 0 {
		t.Errorf("expected IoU 0 for disjoint rects, got %f", got)
	}

	// 5x10 overlap over 150 union.
	b := NewRect(5, 0, 10, 10)
	want := 50.0 / 150.0
	if got := a.IoU(b); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected IoU %f, got %f", want, got)
	}
}

func TestContainedIn(t *testing.T) {
	small := NewRect(10, 10, 10, 10)
	big := NewRect(0, 0, 100, 100)

	if !small.ContainedIn(big) {
		t.Error("expected small rect to be contained in big rect")
	}
	if big.ContainedIn(small) {
		t.Error("containment must not be symmetric")
	}
}

func TestContainedInCoverageThreshold(t *testing.T) {
	region := NewRect(0, 0, 100, 100)

	// Half inside: coverage 0.5, above the cutoff.
	half := NewRect(50, 0, 100, 100)
	if !half.ContainedIn(region) {
		t.Error("expected half coverage to count as contained")
	}

	// A fifth inside: coverage 0.2, below the cutoff.
	sliver := NewRect(80, 0, 100, 100)
	if sliver.ContainedIn(region) {
		t.Error("expected fifth coverage not to count as contained")
	}

	// No overlap at all.
	outside := NewRect(200, 200, 10, 10)
	if outside.ContainedIn(region) {
		t.Error("expected disjoint rect not to be contained")
	}
}

func TestEmptyRect(t *testing.T) {
	var zero Rect
	if !zero.IsEmpty() {
		t.Error("expected zero rect to be empty")
	}
	if zero.ContainedIn(NewRect(0, 0, 100, 100)) {
		t.Error("expected empty rect not to be contained in anything")
	}

	big := NewRect(0, 0, 100, 100)
	line := NewRect(50, 10, 0, 30)
	if line.Intersects(big) {
		t.Error("expected zero-width rect not to intersect")
	}
	if big.Intersects(line) {
		t.Error("expected nothing to intersect a zero-width rect")
	}
	flat := NewRect(10, 50, 30, 0)
	if flat.Intersects(big) {
		t.Error("expected zero-height rect not to intersect")
	}
}
