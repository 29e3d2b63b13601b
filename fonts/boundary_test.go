package fonts

import "testing"

func titleSet(ids ...int) TitleFonts {
	set := make(map[int]bool)
	for _, id := range ids {
		set[id] = true
	}
	return TitleFonts{Set: set}
}

func TestDetectBoundaries(t *testing.T) {
	spans := []TextSpan{
		span(1, 0, "A Study of Parsers"),
		span(1, 1, "Abstract"),
		span(1, 2, "This paper presents a parser."),
		span(1, 1, "1. Introduction"),
		span(1, 2, "Parsing is hard."),
		span(2, 1, "2. Method"),
		span(2, 2, "We parse."),
		span(3, 1, "References"),
	}

	got := DetectBoundaries(spans, titleSet(1))
	want := []Boundary{
		{Page: 1, Title: "Abstract"},
		{Page: 1, Title: "Introduction"},
		{Page: 2, Title: "Method"},
		{Page: 3, Title: "References"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d boundaries, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("boundary %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDetectBoundariesSkipsPageNumbers(t *testing.T) {
	spans := []TextSpan{
		span(1, 1, "Abstract"),
		span(1, 1, "3"),
		span(2, 1, "1. Introduction"),
	}

	got := DetectBoundaries(spans, titleSet(1))
	if len(got) != 2 {
		t.Fatalf("expected 2 boundaries, got %v", got)
	}
	if got[0].Title != "Abstract" || got[1].Title != "Introduction" {
		t.Errorf("unexpected boundaries %v", got)
	}
}

func TestDetectBoundariesDropsPreAbstractTitles(t *testing.T) {
	spans := []TextSpan{
		span(1, 1, "A Grand Title"),
		span(1, 1, "Keywords"),
		span(1, 1, "Abstract"),
		span(2, 1, "1. Introduction"),
	}

	got := DetectBoundaries(spans, titleSet(1))
	if len(got) != 2 {
		t.Fatalf("expected title and keywords dropped, got %v", got)
	}
	if got[0].Title != "Abstract" {
		t.Errorf("expected boundaries to start at Abstract, got %v", got)
	}
}

func TestDetectBoundariesAnchorFallback(t *testing.T) {
	spans := []TextSpan{
		span(1, 1, "A Journal Title"),
		span(2, 1, "1. Introduction"),
		span(3, 1, "2. Method"),
	}

	got := DetectBoundaries(spans, titleSet(1))
	if len(got) != 3 {
		t.Fatalf("expected synthesized Abstract plus 2 boundaries, got %v", got)
	}
	if got[0].Title != "Abstract" || got[0].Page != 1 {
		t.Errorf("expected synthesized Abstract on page 1, got %+v", got[0])
	}
	if got[1].Title != "Introduction" || got[1].Page != 2 {
		t.Errorf("unexpected boundary %+v", got[1])
	}
}

func TestDetectBoundariesNoAnchors(t *testing.T) {
	spans := []TextSpan{
		span(1, 1, "A Title"),
		span(1, 2, "prose only"),
	}
	if got := DetectBoundaries(spans, titleSet(1)); got != nil {
		t.Errorf("expected no boundaries, got %v", got)
	}
}

func TestDetectBoundariesFullText(t *testing.T) {
	spans := []TextSpan{span(1, 1, "Abstract")}
	if got := DetectBoundaries(spans, TitleFonts{FullText: true}); got != nil {
		t.Errorf("expected nil in full-text mode, got %v", got)
	}
}
