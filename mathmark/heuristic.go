package mathmark

import (
	"regexp"
	"sort"
	"strings"
)

const (
	mathOpen  = "<math>"
	mathClose = "</math>"

	// suppressWindow is the context radius checked for false-positive
	// patterns around every candidate span.
	suppressWindow = 20
	// evidenceWindow is the context radius searched for positive math
	// evidence around structure-only candidates.
	evidenceWindow = 50
	// mergeGap is the maximum run of characters between two spans that
	// still merges them into one.
	mergeGap = 3
)

const mathChars = `\x{2200}-\x{22FF}\x{2190}-\x{21FF}\x{0391}-\x{03C9}\x{2070}-\x{209F}\x{00B2}\x{00B3}\x{00B9}±×÷√∞∂∇`

// exprSpan matches operand chains joined by operators: "α ≤ β",
// "x = 2y + 1", "1/2". Operands are math characters, single letters, or
// numbers, so the chain cannot swallow surrounding prose words.
var exprSpan = regexp.MustCompile(`(?:[` + mathChars + `]+|\b[A-Za-z]\b|\b\d+(?:\.\d+)?\b)(?:\s*(?:[=<>+\-*/]|[` + mathChars + `])\s*(?:[` + mathChars + `]+|\b[A-Za-z]\b|\b\d+(?:\.\d+)?\b))*`)

// Explicit math characters detected inside a candidate span.
var hasMathChar = regexp.MustCompile(`[` + mathChars + `]`)

var hasOperator = regexp.MustCompile(`[=<>+\-*/]`)

// structuralSpans match math-shaped text with no special characters:
// function application, named functions, exponent/subscript notation,
// norm bars. They are accepted only with positive contextual evidence.
var structuralSpans = []*regexp.Regexp{
	regexp.MustCompile(`\b[a-zA-Z]\s*\(\s*[a-zA-Z0-9,\s]+\)`),
	regexp.MustCompile(`\b(?:sin|cos|tan|log|ln|exp|min|max|arg|sup|inf|lim|det)\s*[a-zA-Z0-9(]`),
	regexp.MustCompile(`\b[a-zA-Z0-9]+\s*[\^_]\s*[a-zA-Z0-9{(]`),
	regexp.MustCompile(`\|\|[^|]+\|\|`),
}

// falsePositives are checked against the context window around a
// candidate; a match kills the span. The last pattern is special-cased
// to the text immediately before the span (cross-references like
// "Figure 2").
var falsePositives = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}\s*/\s*\d{4}`),
	regexp.MustCompile(`(?i)\b[a-z]\s*=\s*\d+\s+(?:participants|subjects|patients|samples|items|trials|studies|papers|articles)`),
	regexp.MustCompile(`(?i)\bin\s*\(\s*[a-z]\s*\)`),
}

var crossReference = regexp.MustCompile(`(?i)\b(?:section|figure|fig|table|equation|eq|algorithm|appendix|chapter)\.?\s*$`)

// positiveEvidence justifies a structure-only span: math vocabulary or
// explicit math characters near it.
var positiveEvidence = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:theorem|lemma|proof|equation|formula|denote|define|minimize|maximize|subject to|such that|where|let|given)\b`),
	hasMathChar,
}

type span struct {
	start, end int
	structural bool
}

// MarkMath wraps math-like spans of text in <math> tags. Candidates come
// from two regex families: operand/operator expressions and structural
// patterns (function application, exponents, norms). Every candidate is
// suppressed when its surrounding context matches a false-positive
// pattern; candidates without explicit math characters further need
// positive math evidence nearby. Returns the input unchanged when no
// span survives.
func MarkMath(text string) string {
	runes := []rune(text)
	var candidates []span

	for _, loc := range exprSpan.FindAllStringIndex(text, -1) {
		matched := text[loc[0]:loc[1]]
		withMath := hasMathChar.MatchString(matched)
		// A bare operand with neither math characters nor an operator
		// is ordinary prose (a lone letter or number).
		if !withMath && !hasOperator.MatchString(matched) {
			continue
		}
		candidates = append(candidates, span{
			start:      runeIndex(text, loc[0]),
			end:        runeIndex(text, loc[1]),
			structural: !withMath,
		})
	}
	for _, re := range structuralSpans {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			candidates = append(candidates, span{
				start:      runeIndex(text, loc[0]),
				end:        runeIndex(text, loc[1]),
				structural: !hasMathChar.MatchString(matched),
			})
		}
	}
	if len(candidates) == 0 {
		return text
	}

	var kept []span
	for _, c := range candidates {
		if suppressed(runes, c) {
			continue
		}
		if c.structural && !hasEvidence(runes, c) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return text
	}

	var sb strings.Builder
	prev := 0
	for _, s := range mergeSpans(kept) {
		sb.WriteString(string(runes[prev:s.start]))
		sb.WriteString(mathOpen)
		sb.WriteString(strings.TrimSpace(string(runes[s.start:s.end])))
		sb.WriteString(mathClose)
		prev = s.end
	}
	sb.WriteString(string(runes[prev:]))
	return sb.String()
}

func runeIndex(s string, byteIndex int) int {
	return len([]rune(s[:byteIndex]))
}

func window(runes []rune, s span, radius int) string {
	start := maxInt(0, s.start-radius)
	end := minInt(len(runes), s.end+radius)
	return string(runes[start:end])
}

func suppressed(runes []rune, s span) bool {
	ctx := window(runes, s, suppressWindow)
	for _, re := range falsePositives {
		if re.MatchString(ctx) {
			return true
		}
	}
	before := string(runes[maxInt(0, s.start-suppressWindow):s.start])
	return crossReference.MatchString(before)
}

func hasEvidence(runes []rune, s span) bool {
	// The span itself is excluded so a structural match cannot vouch
	// for its own content.
	outside := string(runes[maxInt(0, s.start-evidenceWindow):s.start]) +
		string(runes[s.end:minInt(len(runes), s.end+evidenceWindow)])
	for _, re := range positiveEvidence {
		if re.MatchString(outside) {
			return true
		}
	}
	return false
}

// mergeSpans sorts spans, absorbs nested or overlapping ones, and joins
// spans separated by at most mergeGap characters.
func mergeSpans(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})
	var out []span
	for _, s := range spans {
		if len(out) > 0 && s.start <= out[len(out)-1].end+mergeGap {
			if s.end > out[len(out)-1].end {
				out[len(out)-1].end = s.end
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
