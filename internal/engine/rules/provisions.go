package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/caselens/verdict/internal/core/model"
)

var (
	// "section 6(1) of the Sale of Goods Act 1979", "clause 5.2",
	// "paragraph 3 of Schedule 2". The trailing instrument is optional.
	provisionRefPattern = regexp.MustCompile(`\b(?i:(section|s\.|regulation|reg\.|article|art\.|clause|paragraph|para\.|schedule|rule))\s*(\d+[A-Z]?(?:\.\d+)*(?:\(\d+\))?(?:\([a-z]\))?)` +
		`(?:\s+of\s+(?:the\s+)?([A-Z][A-Za-z()]*(?:\s+(?:[A-Z][A-Za-z()]*|of|the|and|for|to|in|&))*?\s+(?:Act|Regulations|Rules|Order)\s+(?:19|20)\d{2}))?`)

	// Sentences that impose duties: "The Supplier shall deliver ...".
	obligationPattern = regexp.MustCompile(`(?i)\b(shall|must|agrees?\s+to|undertakes?\s+to|warrants?\s+that|covenants?\s+to|is\s+required\s+to)\b`)
)

// Provisions reads statutory and contractual provision references out of a
// document and flags the sentences that impose obligations. It is typed
// hybrid: reference spotting is pure pattern work, obligation detection
// leans on sentence structure.
type Provisions struct{}

func NewProvisions() *Provisions { return &Provisions{} }

func (p *Provisions) Describe() model.ProcessingEngine {
	return model.ProcessingEngine{
		Name:               "provisions",
		Type:               model.EngineHybrid,
		BaselineConfidence: 0.77,
		Specialties:        []string{"contract", "legislation"},
		Available:          true,
		Version:            "0.9.1",
	}
}

func (p *Provisions) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := &model.EntitySet{}
	seenRefs := map[string]bool{}

	for _, m := range provisionRefPattern.FindAllStringSubmatchIndex(text, -1) {
		kind := canonicalRefKind(text[m[2]:m[3]])
		number := text[m[4]:m[5]]
		citation := kind + " " + number
		relevance := "referenced provision"
		if m[6] >= 0 {
			instrument := strings.TrimPrefix(collapseSpace(text[m[6]:m[7]]), "The ")
			citation += ", " + instrument
			relevance = "statutory provision"
		}
		key := dedupeKey(citation)
		if seenRefs[key] {
			continue
		}
		seenRefs[key] = true
		set.Authorities = append(set.Authorities, model.Authority{
			Citation:   citation,
			Relevance:  relevance,
			Confidence: 0.77,
		})
	}

	seenObligations := map[string]bool{}
	for _, m := range obligationPattern.FindAllStringIndex(text, -1) {
		sentence := sentenceAround(text, m[0])
		if sentence == "" {
			continue
		}
		key := dedupeKey(sentence)
		if seenObligations[key] {
			continue
		}
		seenObligations[key] = true
		set.Issues = append(set.Issues, model.Issue{
			Description: clip(sentence, maxSnippetLen),
			Category:    "obligation",
			Confidence:  0.72,
		})
	}

	return set, nil
}

// canonicalRefKind folds abbreviated reference words onto their full form
// so "s. 6" and "Section 6" produce one authority.
func canonicalRefKind(kind string) string {
	switch strings.ToLower(strings.TrimSuffix(kind, ".")) {
	case "s", "section":
		return "Section"
	case "reg", "regulation":
		return "Regulation"
	case "art", "article":
		return "Article"
	case "para", "paragraph":
		return "Paragraph"
	case "clause":
		return "Clause"
	case "schedule":
		return "Schedule"
	case "rule":
		return "Rule"
	default:
		return kind
	}
}
