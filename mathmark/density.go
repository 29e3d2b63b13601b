// Package mathmark detects mathematical notation in extracted text. It
// offers a heuristic span detector with context-based false-positive
// suppression, trigram-similarity alignment of externally extracted text
// onto document blocks, and Unicode-to-LaTeX normalization inside math
// markers.
package mathmark

import "regexp"

// Component caps for the density estimate. Each signal saturates so a
// single pathological feature cannot dominate the score.
const (
	symbolDensityCap   = 0.3
	singleCharSeqCap   = 0.3
	fractionDensityCap = 0.2
	subSuperscriptCap  = 0.2

	// DensityThreshold is the minimum density at which a page is worth
	// sending to a vision model for math extraction.
	DensityThreshold = 0.3
)

var (
	mathSymbolChars = regexp.MustCompile(`[\x{2200}-\x{22FF}\x{2190}-\x{21FF}\x{2A00}-\x{2AFF}\x{00B1}\x{00D7}\x{00F7}]`)
	singleCharSeq   = regexp.MustCompile(`(\b\w\b\s){3,}`)
	fractionLike    = regexp.MustCompile(`\d+\s*/\s*\d+`)
	subSuperChars   = regexp.MustCompile(`[\x{2080}-\x{2089}\x{2070}-\x{2079}]`)
)

// EstimateDensity scores how math-heavy a text is, in [0, 1]. The score
// sums four capped signals: Unicode math symbol frequency, runs of
// isolated single characters (typical of inline formulas), fraction-like
// digit patterns, and sub/superscript characters.
func EstimateDensity(text string) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	n := float64(len(runes))

	density := 0.0
	density += capped(float64(len(mathSymbolChars.FindAllString(text, -1)))/n*50, symbolDensityCap)
	density += capped(float64(len(singleCharSeq.FindAllString(text, -1)))/n*100, singleCharSeqCap)
	density += capped(float64(len(fractionLike.FindAllString(text, -1)))/n*100, fractionDensityCap)
	density += capped(float64(len(subSuperChars.FindAllString(text, -1)))/n*100, subSuperscriptCap)
	if density > 1 {
		density = 1
	}
	return density
}

func capped(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
