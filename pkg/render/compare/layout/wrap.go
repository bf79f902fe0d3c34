package layout

import (
	"strings"

	"github.com/backtoschool/progcompare/pkg/render/compare/styles"
)

// Wrap greedily splits text into lines no wider than maxWidth when measured
// by m in font f. Lines only break between words, so a single word wider
// than maxWidth gets a line of its own. Blank text yields no lines.
func Wrap(m Measurer, text string, maxWidth float64, f styles.Font) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Measure(candidate, f) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// WrapParagraphs wraps each newline-separated paragraph on its own. Blank
// lines between paragraphs are kept as empty lines, leading and trailing
// ones are dropped.
func WrapParagraphs(m Measurer, text string, maxWidth float64, f styles.Font) []string {
	var lines []string
	pendingBlank := false
	for _, para := range strings.Split(text, "\n") {
		wrapped := Wrap(m, para, maxWidth, f)
		if len(wrapped) == 0 {
			pendingBlank = len(lines) > 0
			continue
		}
		if pendingBlank {
			lines = append(lines, "")
			pendingBlank = false
		}
		lines = append(lines, wrapped...)
	}
	return lines
}

// Measurer is the measuring half of a [Canvas].
type Measurer interface {
	Measure(text string, f styles.Font) float64
}
