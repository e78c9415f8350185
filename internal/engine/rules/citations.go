package rules

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/caselens/verdict/internal/core/model"
)

var (
	// "[2020] UKSC 11", "[2018] EWCA Civ 242".
	neutralCitationPattern = regexp.MustCompile(`\[(?:19|20)\d{2}\]\s+(?:UKSC|UKHL|UKPC|EWCA\s+(?:Civ|Crim)|EWHC|EWCOP|EWFC|UKUT|CSIH|CSOH|NICA)\s+\d+`)

	// "[1932] AC 562", "[1995] 2 All ER 87".
	lawReportPattern = regexp.MustCompile(`\[(?:19|20)\d{2}\]\s+(?:\d+\s+)?(?:AC|QB|KB|Ch|WLR|All\s+ER|Lloyd's\s+Rep|BCLC|FLR|Cr\s+App\s+R)\s+\d+`)

	// "Donoghue v Stevenson", "Smith Industries Ltd v. Jones".
	caseNamePattern = regexp.MustCompile(`\b[A-Z][\w'.&-]*(?:\s+[A-Z][\w'.&-]*){0,4}\s+v\.?\s+[A-Z][\w'.&-]*(?:\s+[A-Z][\w'.&-]*){0,4}`)

	// "Unfair Contract Terms Act 1977", "Sale of Goods Act 1979". Interior
	// words are either title-cased or one of the connectives statute names
	// actually use, which stops the match running back to the start of the
	// sentence.
	statutePattern = regexp.MustCompile(`\b[A-Z][A-Za-z()]*(?:\s+(?:[A-Z][A-Za-z()]*|of|the|and|for|to|in|&))*?\s+Act\s+(?:19|20)\d{2}\b`)

	// Statutory instruments: "SI 2013/609".
	instrumentPattern = regexp.MustCompile(`\bSI\s+(?:19|20)\d{2}/\d+\b`)

	// Court case numbers: "HQ2019/1234".
	caseNumberPattern = regexp.MustCompile(`\b[A-Z]{2,4}\d{4}/\d+\b`)

	treatmentPattern = regexp.MustCompile(`(?i)\b(applied|followed|distinguished|overruled|considered|approved)\b`)
)

// Citations recognises references to case law, legislation and statutory
// instruments. A case name immediately followed by a bracketed citation is
// folded into a single authority.
type Citations struct{}

func NewCitations() *Citations { return &Citations{} }

func (c *Citations) Describe() model.ProcessingEngine {
	return model.ProcessingEngine{
		Name:               "citations",
		Type:               model.EngineRuleBased,
		BaselineConfidence: 0.88,
		Specialties:        []string{"case-law", "legislation"},
		Available:          true,
		Version:            "2.1.0",
	}
}

type citationSpan struct {
	start, end int
	citation   string
	relevance  string
	confidence float64
	consumed   bool
}

func (c *Citations) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var brackets []citationSpan
	for _, m := range neutralCitationPattern.FindAllStringIndex(text, -1) {
		brackets = append(brackets, citationSpan{
			start: m[0], end: m[1],
			citation:   collapseSpace(text[m[0]:m[1]]),
			relevance:  "cited authority",
			confidence: 0.95,
		})
	}
	for _, m := range lawReportPattern.FindAllStringIndex(text, -1) {
		if overlapsAny(brackets, m[0], m[1]) {
			continue
		}
		brackets = append(brackets, citationSpan{
			start: m[0], end: m[1],
			citation:   collapseSpace(text[m[0]:m[1]]),
			relevance:  "cited authority",
			confidence: 0.90,
		})
	}

	var names []citationSpan
	for _, m := range caseNamePattern.FindAllStringIndex(text, -1) {
		names = append(names, citationSpan{
			start: m[0], end: m[1],
			citation:   trimCaseLead(collapseSpace(text[m[0]:m[1]])),
			relevance:  "cited authority",
			confidence: 0.75,
		})
	}

	// Join "Donoghue v Stevenson" with its trailing "[1932] AC 562".
	var spans []citationSpan
	for i := range names {
		joined := false
		for j := range brackets {
			if brackets[j].consumed {
				continue
			}
			gap := brackets[j].start - names[i].end
			if gap >= 0 && gap <= 3 {
				spans = append(spans, citationSpan{
					start:      names[i].start,
					end:        brackets[j].end,
					citation:   names[i].citation + " " + brackets[j].citation,
					relevance:  "cited authority",
					confidence: brackets[j].confidence,
				})
				brackets[j].consumed = true
				joined = true
				break
			}
		}
		if !joined {
			spans = append(spans, names[i])
		}
	}
	for _, b := range brackets {
		if !b.consumed {
			spans = append(spans, b)
		}
	}

	for _, m := range statutePattern.FindAllStringIndex(text, -1) {
		spans = append(spans, citationSpan{
			start: m[0], end: m[1],
			citation:   strings.TrimPrefix(collapseSpace(text[m[0]:m[1]]), "The "),
			relevance:  "governing legislation",
			confidence: 0.88,
		})
	}
	for _, m := range instrumentPattern.FindAllStringIndex(text, -1) {
		spans = append(spans, citationSpan{
			start: m[0], end: m[1],
			citation:   text[m[0]:m[1]],
			relevance:  "statutory instrument",
			confidence: 0.85,
		})
	}
	for _, m := range caseNumberPattern.FindAllStringIndex(text, -1) {
		spans = append(spans, citationSpan{
			start: m[0], end: m[1],
			citation:   text[m[0]:m[1]],
			relevance:  "case reference",
			confidence: 0.80,
		})
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	set := &model.EntitySet{}
	seen := map[string]bool{}
	for _, s := range spans {
		key := dedupeKey(s.citation)
		if seen[key] {
			continue
		}
		seen[key] = true
		relevance := s.relevance
		if t := treatmentPattern.FindString(sentenceAround(text, s.start)); t != "" {
			relevance = strings.ToLower(t)
		}
		set.Authorities = append(set.Authorities, model.Authority{
			Citation:   s.citation,
			Relevance:  relevance,
			Confidence: s.confidence,
		})
	}

	return set, nil
}

func overlapsAny(spans []citationSpan, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
