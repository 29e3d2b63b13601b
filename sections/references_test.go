package sections

import (
	"strings"
	"testing"

	"github.com/tsawler/papyrus/model"
)

func TestCollectReferencesText(t *testing.T) {
	header := textBlock(50, "References")
	header.Section = "References"
	entryOne := textBlock(70, "[1] A. Author. A paper. 2020.")
	entryOne.Section = "References"
	entryTwo := textBlock(90, "[2] B. Writer. Another paper. 2021.")
	entryTwo.Section = "References"
	body := textBlock(30, "conclusion text.")
	body.Section = "Conclusion"

	pages := []*model.Page{testPage(8, body, header, entryOne, entryTwo)}

	got := CollectReferencesText(pages)
	if strings.Contains(got, "conclusion") {
		t.Error("expected non-reference text excluded")
	}
	if strings.HasPrefix(got, "References") {
		t.Error("expected the section header itself excluded")
	}
	if !strings.Contains(got, "[1] A. Author") || !strings.Contains(got, "[2] B. Writer") {
		t.Errorf("expected both entries collected, got %q", got)
	}
}

func TestCollectReferencesFallback(t *testing.T) {
	// No block carries a references section label.
	pages := []*model.Page{
		testPage(8,
			textBlock(30, "closing remarks."),
			textBlock(50, "References"),
			textBlock(70, "[1] A. Author. A paper. 2020."),
		),
	}
	for _, block := range pages[0].Blocks {
		block.Section = "Conclusion"
	}

	got := CollectReferencesText(pages)
	if strings.Contains(got, "closing remarks") {
		t.Error("expected text before the header excluded")
	}
	if !strings.Contains(got, "[1] A. Author") {
		t.Errorf("expected entry after the header collected, got %q", got)
	}
}

func TestCollectReferencesBibliography(t *testing.T) {
	entry := textBlock(70, "[1] A. Author. A paper. 2020.")
	entry.Section = "Bibliography"
	pages := []*model.Page{testPage(8, entry)}

	if got := CollectReferencesText(pages); !strings.Contains(got, "[1]") {
		t.Errorf("expected bibliography section collected, got %q", got)
	}
}

func TestCollectReferencesNone(t *testing.T) {
	body := textBlock(30, "no reference list here.")
	body.Section = "Content"
	pages := []*model.Page{testPage(1, body)}

	if got := CollectReferencesText(pages); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
