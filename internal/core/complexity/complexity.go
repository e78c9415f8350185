// Package complexity scores raw document text on a 0-8 scale and maps the
// score to a complexity band used for strategy selection. Scoring is a
// pure function of the text.
package complexity

import (
	"regexp"
	"strings"

	"github.com/caselens/verdict/internal/core/model"
)

// Formal drafting connectives that rarely appear outside legal prose.
var formalConnectives = []string{
	"pursuant",
	"whereas",
	"heretofore",
	"notwithstanding",
	"aforementioned",
}

// Structural markers of heavily organised instruments.
var structuralMarkers = []string{
	"section",
	"paragraph",
	"clause",
	"schedule",
}

var (
	bracketYearPattern = regexp.MustCompile(`\[(19|20)\d{2}\]`)
	caseStylePattern   = regexp.MustCompile(`\b[A-Z][A-Za-z]*\s+v\.?\s+[A-Z]`)
)

// Indicator thresholds: counts at or above the second value score 2, at or
// above the first score 1.
const (
	lengthMedium = 3000
	lengthHeavy  = 10000

	connectivesMedium = 2
	connectivesHeavy  = 5

	citationsMedium = 1
	citationsHeavy  = 4

	structureMedium = 3
	structureHeavy  = 8
)

// Assess returns the complexity band for text. An explicit hint always
// wins over the computed score.
func Assess(text string, hint model.Complexity) model.Complexity {
	if hint != "" {
		return hint
	}
	switch s := Score(text); {
	case s >= 6:
		return model.ComplexityComplex
	case s >= 3:
		return model.ComplexityMedium
	default:
		return model.ComplexitySimple
	}
}

// Score computes the 0-8 composite: four indicators scored 0-2 from text
// length, formal connectives, citation-like patterns and structural
// markers. Empty input scores 0.
func Score(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	score := scale(len(text), lengthMedium, lengthHeavy)
	score += scale(countTerms(lower, formalConnectives), connectivesMedium, connectivesHeavy)
	score += scale(countCitations(text), citationsMedium, citationsHeavy)
	score += scale(countTerms(lower, structuralMarkers), structureMedium, structureHeavy)
	return score
}

func scale(n, medium, heavy int) int {
	switch {
	case n >= heavy:
		return 2
	case n >= medium:
		return 1
	default:
		return 0
	}
}

func countTerms(lower string, terms []string) int {
	total := 0
	for _, t := range terms {
		total += strings.Count(lower, t)
	}
	return total
}

func countCitations(text string) int {
	return len(bracketYearPattern.FindAllStringIndex(text, -1)) +
		len(caseStylePattern.FindAllStringIndex(text, -1))
}
