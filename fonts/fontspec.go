// Package fonts analyzes the font table of a paper to find the fonts that
// render section headings, and walks the positioned-text stream to detect
// section boundaries.
package fonts

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/papyrus/model"
)

// Spec describes one font from the extraction font table.
type Spec struct {
	ID     int
	Size   float64
	Family string
}

// TextSpan is one positioned-text element in stream order: the page it
// appears on, the font it is rendered in, and its raw text.
type TextSpan struct {
	Page model.PageNumber
	Font int
	Text string
}

// DocumentFonts holds the font table plus per-font usage collected from a
// full positioned-text stream.
type DocumentFonts struct {
	Specs      map[int]Spec
	CharCounts map[int]int
	Spans      []TextSpan
}

// ParseXML reads a pdftohtml-style XML document: <fontspec id size family>
// declarations plus <page number> / <text font> elements. It returns the
// font table, per-font character counts, and every text span in stream
// order.
func ParseXML(r io.Reader) (*DocumentFonts, error) {
	df := &DocumentFonts{
		Specs:      make(map[int]Spec),
		CharCounts: make(map[int]int),
	}

	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose

	var currentPage model.PageNumber
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed extraction XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "page":
			if n, ok := intAttr(start, "number"); ok {
				currentPage = n
			}
		case "fontspec":
			spec := Spec{}
			if id, ok := intAttr(start, "id"); ok {
				spec.ID = id
			}
			if size, ok := floatAttr(start, "size"); ok {
				spec.Size = size
			}
			spec.Family = attr(start, "family")
			df.Specs[spec.ID] = spec
		case "text":
			font, _ := intAttr(start, "font")
			text, err := innerText(decoder, start.Name.Local)
			if err != nil {
				return nil, fmt.Errorf("malformed text element: %w", err)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			df.CharCounts[font] += len([]rune(text))
			df.Spans = append(df.Spans, TextSpan{Page: currentPage, Font: font, Text: text})
		}
	}

	if len(df.Spans) == 0 {
		return nil, fmt.Errorf("extraction XML contains no text: source document is broken or empty")
	}
	return df, nil
}

// innerText collects all character data inside an element, descending
// through inline children such as <b> and <i>.
func innerText(decoder *xml.Decoder, name string) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return sb.String(), nil
}

func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func intAttr(e xml.StartElement, name string) (int, bool) {
	v, err := strconv.Atoi(attr(e, name))
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatAttr(e xml.StartElement, name string) (float64, bool) {
	v, err := strconv.ParseFloat(attr(e, name), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
