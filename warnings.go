package papyrus

import (
	"fmt"
	"strings"
)

// Warning reports a non-fatal problem encountered during parsing. The
// pipeline degrades around such problems (heuristic math instead of LLM
// math, font-based sections instead of validated ones) rather than
// aborting, and surfaces what happened here.
type Warning struct {
	Stage   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		parts = append(parts, w.String())
	}
	return strings.Join(parts, "\n")
}
