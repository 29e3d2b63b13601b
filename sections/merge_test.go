package sections

import (
	"testing"

	"github.com/tsawler/papyrus/fonts"
	"github.com/tsawler/papyrus/model"
)

func TestMerge(t *testing.T) {
	fontBased := []fonts.Boundary{
		{Page: 1, Title: "Abstract"},
		{Page: 1, Title: "Introduction"},
		{Page: 2, Title: "Bold Aside"},
		{Page: 9, Title: "Appendix"},
	}
	validated := []string{"Abstract", "Introduction", "Limitations"}

	got := Merge(fontBased, validated, 3)

	want := []fonts.Boundary{
		{Page: 1, Title: "Abstract"},
		{Page: 1, Title: "Introduction"},
		{Page: model.NoPage, Title: "Limitations"},
		{Page: 9, Title: "Appendix"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d boundaries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("boundary %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMergeDropsUnconfirmedInRange(t *testing.T) {
	fontBased := []fonts.Boundary{
		{Page: 2, Title: "Theorem 1"},
	}
	got := Merge(fontBased, []string{"Abstract"}, 5)

	for _, b := range got {
		if b.Title == "Theorem 1" {
			t.Error("expected in-range unconfirmed boundary dropped")
		}
	}
}

func TestMergeKeepsOutOfRange(t *testing.T) {
	fontBased := []fonts.Boundary{
		{Page: 12, Title: "Supplementary Material"},
	}
	got := Merge(fontBased, []string{"Abstract"}, 10)

	found := false
	for _, b := range got {
		if b.Title == "Supplementary Material" && b.Page == 12 {
			found = true
		}
	}
	if !found {
		t.Error("expected out-of-range boundary preserved")
	}
}

func TestMergeCaseInsensitive(t *testing.T) {
	fontBased := []fonts.Boundary{{Page: 3, Title: "RELATED WORK"}}
	got := Merge(fontBased, []string{"Related Work"}, 5)

	if len(got) != 1 {
		t.Fatalf("expected 1 boundary, got %v", got)
	}
	if got[0].Page != 3 || got[0].Title != "Related Work" {
		t.Errorf("expected validated casing with font page, got %+v", got[0])
	}
}

func TestMergeSkipsBlankTitles(t *testing.T) {
	got := Merge(nil, []string{"", "  ", "Abstract"}, 5)
	if len(got) != 1 || got[0].Title != "Abstract" {
		t.Errorf("expected blanks skipped, got %v", got)
	}
}
