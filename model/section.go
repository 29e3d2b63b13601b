package model

import (
	"regexp"
	"strings"
)

// MathKey addresses a block by page number and position, used to look up
// math-marked text produced for that block.
type MathKey struct {
	Page  PageNumber
	Block int
}

// MathTexts maps blocks to their math-marked text. Blocks without an entry
// have no detected math.
type MathTexts map[MathKey]string

// Section is one logical section of a paper: a stable ordinal (first-seen
// order across the block scan, not page order), a title, ordered body
// content, an optional math-marked parallel of the content, and the
// captions assigned to the section.
type Section struct {
	Index        int      `json:"index"`
	Title        string   `json:"title"`
	Contents     []string `json:"contents"`
	MathContents []string `json:"math_contents,omitempty"`
	Captions     []string `json:"captions,omitempty"`
}

// Text returns the section contents joined by newlines.
func (s Section) Text() string {
	if len(s.Contents) == 0 {
		return ""
	}
	return strings.Join(s.Contents, "\n")
}

// MathText returns the math-marked contents if present, otherwise the
// plain contents.
func (s Section) MathText() string {
	if len(s.MathContents) > 0 {
		return strings.Join(s.MathContents, "\n")
	}
	return s.Text()
}

// Reference is a single bibliographic entry. Every field is optional:
// structured extraction quality varies and absence is not an error.
type Reference struct {
	RawText *string  `json:"raw_text,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Title   *string  `json:"title,omitempty"`
	Year    *int     `json:"year,omitempty"`
	Venue   *string  `json:"venue,omitempty"`
	DOI     *string  `json:"doi,omitempty"`
	URL     *string  `json:"url,omitempty"`
	ArxivID *string  `json:"arxiv_id,omitempty"`
	Volume  *string  `json:"volume,omitempty"`
	Pages   *string  `json:"pages,omitempty"`
}

// PaperOutput is the full structured result: sections plus extracted
// references.
type PaperOutput struct {
	Sections   []Section   `json:"sections"`
	References []Reference `json:"references,omitempty"`
}

// LegacySection is the two-field shape kept for backward-compatible
// consumers: a title and the joined section text.
type LegacySection struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

// LegacySections flattens sections into the legacy title/contents shape.
func LegacySections(pages []*Page) []LegacySection {
	sections := SectionsFromPages(pages)
	out := make([]LegacySection, 0, len(sections))
	for _, s := range sections {
		out = append(out, LegacySection{Title: s.Title, Contents: s.Text()})
	}
	return out
}

var (
	eosPattern  = regexp.MustCompile(`(\.)(\W)`)
	extraSpaces = regexp.MustCompile(`\s+`)
)

func normalizeContent(text string) string {
	text = eosPattern.ReplaceAllString(text, "$1 $2")
	return extraSpaces.ReplaceAllString(text, " ")
}

// SectionsFromPages groups page blocks into sections by their assigned
// section label. Captions (by block type) are partitioned into the
// section's Captions list; everything else becomes Contents. Section
// indices reflect first-seen order and the result is sorted by index.
func SectionsFromPages(pages []*Page) []Section {
	return SectionsFromPagesWithMath(pages, nil)
}

// SectionsFromPagesWithMath is SectionsFromPages with math-marked text: for
// each body block with a mathTexts entry the marked text is carried in a
// parallel MathContents list. MathContents is dropped entirely for a
// section when no element differs from its Contents counterpart.
func SectionsFromPagesWithMath(pages []*Page, mathTexts MathTexts) []Section {
	indices := make(map[string]int)
	contents := make(map[string][]string)
	mathContents := make(map[string][]string)
	captions := make(map[string][]string)
	var order []string

	ensureIndex := func(section string) {
		if _, ok := indices[section]; !ok {
			indices[section] = len(indices)
			order = append(order, section)
		}
	}

	var lastText, lastMath string
	for _, page := range pages {
		for blockIdx, block := range page.Blocks {
			text := strings.TrimSpace(block.Text())

			math := text
			if marked, ok := mathTexts[MathKey{Page: page.Number, Block: blockIdx}]; ok {
				math = strings.TrimSpace(marked)
			}

			// A block ending in "-" continues into the next block
			// (column or page break mid-word).
			if strings.HasSuffix(text, "-") {
				lastText += strings.TrimSuffix(text, "-")
				lastMath += strings.TrimSuffix(math, "-")
				continue
			}
			if lastText != "" {
				text = lastText + text
				math = lastMath + math
				lastText, lastMath = "", ""
			}

			text = normalizeContent(text)
			math = normalizeContent(math)

			ensureIndex(block.Section)
			if block.Type == BlockCaption {
				captions[block.Section] = append(captions[block.Section], text)
			} else {
				contents[block.Section] = append(contents[block.Section], text)
				mathContents[block.Section] = append(mathContents[block.Section], math)
			}
		}
	}

	sections := make([]Section, 0, len(order))
	for _, title := range order {
		body := contents[title]
		math := mathContents[title]
		hasMath := false
		for i := range math {
			if i < len(body) && math[i] != body[i] {
				hasMath = true
				break
			}
		}
		if !hasMath {
			math = nil
		}
		sections = append(sections, Section{
			Index:        indices[title],
			Title:        title,
			Contents:     body,
			MathContents: math,
			Captions:     captions[title],
		})
	}
	return sections
}
