package rules

import (
	"context"
	"regexp"

	"github.com/caselens/verdict/internal/core/model"
)

// issueLexicon maps dispute phrasing to an issue category. Patterns are
// compiled case-insensitively at init.
var issueLexicon = []struct {
	expr       string
	category   string
	confidence float64
}{
	{`breach(?:es|ed)?\s+of\s+(?:contract|the\s+agreement|warranty|duty|covenant)`, "contract", 0.80},
	{`repudiat(?:ion|ory|ed)`, "contract", 0.76},
	{`frustration\s+of\s+(?:the\s+)?contract|force\s+majeure`, "contract", 0.74},
	{`negligen(?:ce|t|tly)`, "tort", 0.78},
	{`duty\s+of\s+care`, "tort", 0.76},
	{`misrepresentation`, "misrepresentation", 0.78},
	{`liab(?:ility|le)`, "liability", 0.72},
	{`damages|loss(?:es)?\s+(?:suffered|claimed)|compensation`, "remedies", 0.74},
	{`injunction|specific\s+performance|rescission`, "remedies", 0.76},
	{`unfair\s+dismissal|wrongful\s+dismissal|redundancy`, "employment", 0.76},
	{`limitation\s+period|time[- ]barred|statute[- ]barred`, "procedure", 0.74},
	{`jurisdiction|governing\s+law|choice\s+of\s+law`, "procedure", 0.72},
	{`unjust\s+enrichment|restitution`, "restitution", 0.74},
}

var issuePatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(issueLexicon))
	for i, entry := range issueLexicon {
		out[i] = regexp.MustCompile(`(?i)\b(?:` + entry.expr + `)\b`)
	}
	return out
}()

// Issues spots the legal questions a document raises by matching dispute
// phrasing and categorising it.
type Issues struct{}

func NewIssues() *Issues { return &Issues{} }

func (e *Issues) Describe() model.ProcessingEngine {
	return model.ProcessingEngine{
		Name:               "issues",
		Type:               model.EngineRuleBased,
		BaselineConfidence: 0.74,
		Specialties:        []string{"litigation", "contract"},
		Available:          true,
		Version:            "1.1.0",
	}
}

func (e *Issues) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := &model.EntitySet{}
	seen := map[string]bool{}

	for i, pattern := range issuePatterns {
		entry := issueLexicon[i]
		for _, m := range pattern.FindAllStringIndex(text, -1) {
			phrase := collapseSpace(text[m[0]:m[1]])
			key := dedupeKey(phrase, entry.category)
			if seen[key] {
				continue
			}
			seen[key] = true
			set.Issues = append(set.Issues, model.Issue{
				Description: phrase,
				Category:    entry.category,
				Confidence:  entry.confidence,
				Context:     clip(sentenceAround(text, m[0]), maxSnippetLen),
			})
		}
	}

	return set, nil
}
