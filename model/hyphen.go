package model

import (
	"regexp"
	"sort"
	"strings"
)

// hyphenatedSuffixes lists compound-word suffixes that take a hyphen when
// line-break merging glues them to the preceding word ("databased" should
// read "data-based"). The list was tuned against a paper corpus; keep it
// in sync with FixSuffixHyphens tests when extending.
var hyphenatedSuffixes = []string{
	"based", "driven", "oriented", "aware", "agnostic", "independent",
	"dependent", "first", "native", "centric", "intensive", "bound",
	"safe", "free", "proof", "efficient", "optimized", "enabled",
	"powered", "ready", "capable", "compatible", "compliant", "level",
	"scale", "wide", "specific", "friendly", "facing", "like", "style",
}

type suffixPattern struct {
	re     *regexp.Regexp
	suffix string
}

// Longest suffix first so "independent" wins over "dependent".
var suffixPatterns = func() []suffixPattern {
	suffixes := append([]string(nil), hyphenatedSuffixes...)
	sort.Slice(suffixes, func(i, j int) bool { return len(suffixes[i]) > len(suffixes[j]) })
	patterns := make([]suffixPattern, 0, len(suffixes))
	for _, suffix := range suffixes {
		patterns = append(patterns, suffixPattern{
			re:     regexp.MustCompile(`\b[A-Za-z]+` + suffix + `\b`),
			suffix: suffix,
		})
	}
	return patterns
}()

// FixSuffixHyphens repairs compound words that lost their hyphen, turning
// "databased" into "data-based". Already-hyphenated and space-separated
// forms pass through unchanged, so the function is idempotent.
func FixSuffixHyphens(text string) string {
	result := text
	for _, sp := range suffixPatterns {
		matches := sp.re.FindAllStringIndex(result, -1)
		if matches == nil {
			continue
		}
		var sb strings.Builder
		last := 0
		for _, loc := range matches {
			start, end := loc[0], loc[1]
			sb.WriteString(result[last:start])
			sb.WriteString(rehyphenate(result, start, result[start:end], sp.suffix))
			last = end
		}
		sb.WriteString(result[last:])
		result = sb.String()
	}
	return result
}

func rehyphenate(text string, start int, match, suffix string) string {
	// Preceded by a hyphen: an already-hyphenated compound whose tail the
	// pattern re-matched (e.g. the "independent" inside "platform-independent"
	// seen by the "dependent" pattern).
	if start > 0 && text[start-1] == '-' {
		return match
	}
	pos := len(match) - len(suffix)
	if pos > 0 {
		prev := match[pos-1]
		if prev != '-' && prev != ' ' {
			return match[:pos] + "-" + suffix
		}
	}
	return match
}
