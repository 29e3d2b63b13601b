package mathmark

import "testing"

func TestTrigrams(t *testing.T) {
	a := Trigrams("The Quick")
	b := Trigrams("the    quick")
	if len(a) != len(b) {
		t.Fatalf("expected identical sets, got %d and %d trigrams", len(a), len(b))
	}
	for tri := range a {
		if !b[tri] {
			t.Errorf("trigram %q missing after whitespace folding", tri)
		}
	}

	if len(Trigrams("ab")) != 0 {
		t.Error("expected no trigrams for a two-character string")
	}
}

func TestJaccard(t *testing.T) {
	a := Trigrams("the quick brown fox")
	if got := Jaccard(a, a); got != 1.0 {
		t.Errorf("expected self-similarity 1.0, got %f", got)
	}
	if got := Jaccard(a, Trigrams("zzz yyy xxx www")); got != 0 {
		t.Errorf("expected 0 for disjoint sets, got %f", got)
	}
	if got := Jaccard(nil, a); got != 0 {
		t.Errorf("expected 0 for an empty set, got %f", got)
	}
}

func TestFindBestAlignment(t *testing.T) {
	needle := "the quick brown fox"
	candidates := []string{
		"an unrelated sentence about parsing",
		"the quick brown fox jumps over the lazy dog",
	}

	best, sim, ok := FindBestAlignment(needle, candidates)
	if !ok {
		t.Fatal("expected an acceptable alignment")
	}
	if sim < AlignmentThreshold {
		t.Errorf("expected similarity at least %f, got %f", AlignmentThreshold, sim)
	}
	if best != candidates[1] {
		t.Errorf("expected the containing candidate, got %q", best)
	}

	if _, _, ok := FindBestAlignment("abcdef", []string{"uvwxyz"}); ok {
		t.Error("expected no alignment for strings sharing no trigrams")
	}
}

func TestSplitParagraphs(t *testing.T) {
	got := SplitParagraphs("first paragraph\nstill first\n\nsecond paragraph\n\n\nthird")
	if len(got) != 3 {
		t.Fatalf("expected 3 paragraphs, got %v", got)
	}
	if got[0] != "first paragraph\nstill first" || got[2] != "third" {
		t.Errorf("unexpected paragraphs %v", got)
	}
}

func TestAlignParagraphs(t *testing.T) {
	extracted := "The parser reads $x$ positioned text.\n\nIt groups blocks into sections carefully."
	blocks := []string{
		"The parser reads x positioned text.",
		"It groups blocks into sections carefully.",
		"completely different content with no counterpart whatsoever",
	}

	aligned := AlignParagraphs(extracted, blocks)
	if aligned[0] != "The parser reads $x$ positioned text." {
		t.Errorf("unexpected alignment for block 0: %q", aligned[0])
	}
	if aligned[1] != "It groups blocks into sections carefully." {
		t.Errorf("unexpected alignment for block 1: %q", aligned[1])
	}
	if _, ok := aligned[2]; ok {
		t.Error("expected no alignment for the unmatched block")
	}
}
