package mathmark

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	displayMath = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	inlineMath  = regexp.MustCompile(`(?s)\$(.+?)\$`)
	mathSpan    = regexp.MustCompile(`(?s)<math>(.*?)</math>`)
)

// ConvertDelimiters rewrites LaTeX math delimiters emitted by a vision
// model into <math> tags. Display math ($$...$$) is handled before
// inline math so the doubled delimiters are not consumed pairwise.
func ConvertDelimiters(text string) string {
	text = displayMath.ReplaceAllString(text, mathOpen+"$1"+mathClose)
	return inlineMath.ReplaceAllString(text, mathOpen+"$1"+mathClose)
}

// latexSymbols maps Unicode math characters to LaTeX commands. Applied
// only inside <math> spans.
var latexSymbols = map[rune]string{
	// Greek letters
	'α': `\alpha`, 'β': `\beta`, 'γ': `\gamma`, 'δ': `\delta`,
	'ε': `\epsilon`, 'ζ': `\zeta`, 'η': `\eta`, 'θ': `\theta`,
	'ι': `\iota`, 'κ': `\kappa`, 'λ': `\lambda`, 'μ': `\mu`,
	'ν': `\nu`, 'ξ': `\xi`, 'π': `\pi`, 'ρ': `\rho`,
	'σ': `\sigma`, 'τ': `\tau`, 'υ': `\upsilon`, 'φ': `\phi`,
	'χ': `\chi`, 'ψ': `\psi`, 'ω': `\omega`,
	'Γ': `\Gamma`, 'Δ': `\Delta`, 'Θ': `\Theta`, 'Λ': `\Lambda`,
	'Ξ': `\Xi`, 'Π': `\Pi`, 'Σ': `\Sigma`, 'Υ': `\Upsilon`,
	'Φ': `\Phi`, 'Ψ': `\Psi`, 'Ω': `\Omega`,
	// Relations
	'≤': `\leq`, '≥': `\geq`, '≠': `\neq`, '≈': `\approx`,
	'≡': `\equiv`, '∼': `\sim`, '∝': `\propto`,
	// Set operators
	'∈': `\in`, '∉': `\notin`, '⊂': `\subset`, '⊆': `\subseteq`,
	'∪': `\cup`, '∩': `\cap`, '∅': `\emptyset`,
	// Large operators
	'∑': `\sum`, '∏': `\prod`, '∫': `\int`,
	// Arrows
	'→': `\rightarrow`, '←': `\leftarrow`, '⇒': `\Rightarrow`,
	'⇔': `\Leftrightarrow`, '↦': `\mapsto`,
	// Logic
	'∀': `\forall`, '∃': `\exists`, '¬': `\neg`,
	'∧': `\land`, '∨': `\lor`,
	// Miscellaneous
	'±': `\pm`, '×': `\times`, '÷': `\div`, '∞': `\infty`,
	'√': `\sqrt`, '∂': `\partial`, '∇': `\nabla`, '·': `\cdot`,
}

// Sub/superscript digits become LaTeX script groups.
var scriptDigits = map[rune]string{
	'⁰': `^{0}`, '¹': `^{1}`, '²': `^{2}`, '³': `^{3}`, '⁴': `^{4}`,
	'⁵': `^{5}`, '⁶': `^{6}`, '⁷': `^{7}`, '⁸': `^{8}`, '⁹': `^{9}`,
	'₀': `_{0}`, '₁': `_{1}`, '₂': `_{2}`, '₃': `_{3}`, '₄': `_{4}`,
	'₅': `_{5}`, '₆': `_{6}`, '₇': `_{7}`, '₈': `_{8}`, '₉': `_{9}`,
}

// UnicodeToLaTeX substitutes Unicode math symbols for LaTeX commands,
// strictly inside <math> spans. A command is followed by a space when
// the next character is alphanumeric so commands do not run into their
// operands. Text outside math spans is untouched.
func UnicodeToLaTeX(text string) string {
	return mathSpan.ReplaceAllStringFunc(text, func(m string) string {
		inner := mathSpan.FindStringSubmatch(m)[1]
		return mathOpen + replaceSymbols(inner) + mathClose
	})
}

func replaceSymbols(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		repl, ok := latexSymbols[r]
		if !ok {
			repl, ok = scriptDigits[r]
		}
		if !ok {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(repl)
		if i+1 < len(runes) && needsSpaceBefore(runes[i+1], repl) {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// needsSpaceBefore reports whether a LaTeX command must be separated
// from the following character. Commands ending in a letter swallow a
// following alphanumeric; brace-closed replacements never do.
func needsSpaceBefore(next rune, command string) bool {
	if strings.HasSuffix(command, "}") {
		return false
	}
	return unicode.IsLetter(next) || unicode.IsDigit(next)
}
