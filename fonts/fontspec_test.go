package fonts

import (
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<pdf2xml>
<page number="1" width="612" height="792">
<fontspec id="0" size="18" family="NimbusRomNo9L-Medi" color="#000000"/>
<fontspec id="1" size="10" family="NimbusRomNo9L-Regu" color="#000000"/>
<text top="100" left="50" width="200" height="20" font="0">A Study of Parsers</text>
<text top="200" left="50" width="400" height="12" font="1">Abstract</text>
<text top="220" left="50" width="400" height="12" font="1">This paper presents a detailed study of document parsers.</text>
</page>
<page number="2" width="612" height="792">
<text top="100" left="50" width="400" height="12" font="1">More body text on the second page.</text>
</page>
</pdf2xml>`

func TestParseXML(t *testing.T) {
	df, err := ParseXML(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("ParseXML failed: %v", err)
	}

	if len(df.Specs) != 2 {
		t.Fatalf("expected 2 font specs, got %d", len(df.Specs))
	}
	if df.Specs[0].Size != 18 || df.Specs[1].Size != 10 {
		t.Errorf("unexpected font sizes: %+v", df.Specs)
	}
	if !strings.Contains(df.Specs[0].Family, "Medi") {
		t.Errorf("unexpected family %q", df.Specs[0].Family)
	}

	if len(df.Spans) != 4 {
		t.Fatalf("expected 4 spans, got %d", len(df.Spans))
	}
	if df.Spans[0].Page != 1 || df.Spans[0].Font != 0 {
		t.Errorf("unexpected first span %+v", df.Spans[0])
	}
	if df.Spans[3].Page != 2 {
		t.Errorf("expected last span on page 2, got %+v", df.Spans[3])
	}

	// Body font accumulated far more characters than the title font.
	if df.CharCounts[1] <= df.CharCounts[0] {
		t.Errorf("expected body font to dominate char counts: %v", df.CharCounts)
	}
}

func TestParseXMLEmpty(t *testing.T) {
	empty := `<?xml version="1.0"?><pdf2xml><page number="1" width="612" height="792"></page></pdf2xml>`
	if _, err := ParseXML(strings.NewReader(empty)); err == nil {
		t.Fatal("expected an error for a document with no text")
	}
}
