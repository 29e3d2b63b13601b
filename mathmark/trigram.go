package mathmark

import (
	"regexp"
	"strings"
)

// AlignmentThreshold is the minimum trigram similarity for an extracted
// paragraph to be accepted as matching a document block.
const AlignmentThreshold = 0.4

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLine     = regexp.MustCompile(`\n\s*\n`)
)

// Trigrams returns the set of 3-character substrings of s, lowercased
// and with whitespace runs collapsed so re-wrapped text compares equal.
func Trigrams(s string) map[string]bool {
	s = strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " "))
	runes := []rune(s)
	set := make(map[string]bool)
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = true
	}
	return set
}

// Jaccard measures the intersection-over-union of two trigram sets.
// Two empty sets have similarity zero.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// FindBestAlignment returns the candidate most similar to needle, with
// its similarity. ok is false when no candidate reaches
// AlignmentThreshold.
func FindBestAlignment(needle string, candidates []string) (best string, similarity float64, ok bool) {
	needleSet := Trigrams(needle)
	for _, c := range candidates {
		sim := Jaccard(needleSet, Trigrams(c))
		if sim > similarity {
			similarity = sim
			best = c
		}
	}
	if similarity < AlignmentThreshold {
		return "", similarity, false
	}
	return best, similarity, true
}

// SplitParagraphs splits extracted page text on blank lines, dropping
// empty paragraphs.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range blankLine.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AlignParagraphs matches every block text against the paragraphs of
// externally extracted page text, returning the aligned paragraph per
// block index. Blocks with no acceptable alignment are absent from the
// result and should keep their heuristic markup.
func AlignParagraphs(extracted string, blockTexts []string) map[int]string {
	paragraphs := SplitParagraphs(extracted)
	aligned := make(map[int]string)
	for i, text := range blockTexts {
		if best, _, ok := FindBestAlignment(text, paragraphs); ok {
			aligned[i] = best
		}
	}
	return aligned
}
