package rules

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caselens/verdict/internal/core/model"
)

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

var (
	// "12 March 2021", "3rd May 1998".
	dayFirstDatePattern = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthNames + `)\s+((?:19|20)\d{2})\b`)

	// "March 12, 2021".
	monthFirstDatePattern = regexp.MustCompile(`\b(` + monthNames + `)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+((?:19|20)\d{2})\b`)

	// "12/03/2021", "12.03.21". Day first, the UK convention.
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/.](\d{1,2})[/.](\d{2,4})\b`)

	// "2021-03-12".
	isoDatePattern = regexp.MustCompile(`\b((?:19|20)\d{2})-(\d{2})-(\d{2})\b`)
)

var monthIndex = func() map[string]int {
	m := map[string]int{}
	for i, name := range strings.Split(monthNames, "|") {
		m[name] = i + 1
	}
	return m
}()

// Chronology extracts dated events. Dates are normalised to ISO yyyy-mm-dd
// so the same event reported by different engines in different formats
// still deduplicates.
type Chronology struct{}

func NewChronology() *Chronology { return &Chronology{} }

func (c *Chronology) Describe() model.ProcessingEngine {
	return model.ProcessingEngine{
		Name:               "chronology",
		Type:               model.EngineRuleBased,
		BaselineConfidence: 0.80,
		Specialties:        []string{"litigation", "correspondence"},
		Available:          true,
		Version:            "1.0.3",
	}
}

type dateSpan struct {
	start      int
	date       string
	confidence float64
}

func (c *Chronology) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var spans []dateSpan
	found := func(offset int, date string, confidence float64) {
		if date == "" {
			return
		}
		spans = append(spans, dateSpan{start: offset, date: date, confidence: confidence})
	}

	for _, m := range dayFirstDatePattern.FindAllStringSubmatchIndex(text, -1) {
		day := atoi(text[m[2]:m[3]])
		month := monthIndex[text[m[4]:m[5]]]
		year := atoi(text[m[6]:m[7]])
		found(m[0], isoDate(year, month, day), 0.85)
	}

	for _, m := range monthFirstDatePattern.FindAllStringSubmatchIndex(text, -1) {
		month := monthIndex[text[m[2]:m[3]]]
		day := atoi(text[m[4]:m[5]])
		year := atoi(text[m[6]:m[7]])
		found(m[0], isoDate(year, month, day), 0.82)
	}

	for _, m := range isoDatePattern.FindAllStringSubmatchIndex(text, -1) {
		year := atoi(text[m[2]:m[3]])
		month := atoi(text[m[4]:m[5]])
		day := atoi(text[m[6]:m[7]])
		found(m[0], isoDate(year, month, day), 0.85)
	}

	for _, m := range numericDatePattern.FindAllStringSubmatchIndex(text, -1) {
		day := atoi(text[m[2]:m[3]])
		month := atoi(text[m[4]:m[5]])
		year := expandYear(atoi(text[m[6]:m[7]]))
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		found(m[0], isoDate(year, month, day), 0.75)
	}

	// Events come back in document order regardless of which pattern
	// matched.
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	set := &model.EntitySet{}
	seen := map[string]bool{}
	for _, s := range spans {
		description := clip(sentenceAround(text, s.start), maxSnippetLen)
		key := dedupeKey(s.date, description)
		if seen[key] {
			continue
		}
		seen[key] = true
		set.Events = append(set.Events, model.ChronologyEvent{
			Date:        s.date,
			Description: description,
			Confidence:  s.confidence,
		})
	}

	return set, nil
}

// isoDate renders yyyy-mm-dd, or "" when the components do not form a real
// calendar date.
func isoDate(year, month, day int) string {
	s := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

func expandYear(y int) int {
	switch {
	case y >= 100:
		return y
	case y >= 70:
		return 1900 + y
	default:
		return 2000 + y
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
