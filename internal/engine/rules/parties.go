package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/caselens/verdict/internal/core/model"
)

var (
	// "Mr Justice Smith", "Lady Justice Arden", "His Honour Judge Brown".
	judicialPattern = regexp.MustCompile(`\b((?:Mrs?\.?\s+|Ms\.?\s+)?(?:Lord|Lady)?\s*Justice|(?:His|Her)\s+Honour\s+Judge|District\s+Judge|Judge)\s+([A-Z][A-Za-z'-]+)\b`)

	// "Jane Doe QC", "John Smith KC".
	postNominalPattern = regexp.MustCompile(`\b([A-Z][A-Za-z'-]+(?:\s+[A-Z][A-Za-z'-]+){0,2})\s+(QC|KC)\b`)

	// "the Claimant, Mr John Smith" and similar designation-then-name runs.
	designatedPartyPattern = regexp.MustCompile(`\b(?i:(claimant|defendant|appellant|respondent|applicant|petitioner))s?\b,?\s+(?:(?:Mr|Mrs|Ms|Miss|Dr)\.?\s+)?([A-Z][A-Za-z'-]+(?:\s+[A-Z][A-Za-z'-]+){0,2})`)

	// "Mr John Smith", "Dr Jones". The title is stripped from the name so
	// the same person reported without a title still merges downstream.
	titledNamePattern = regexp.MustCompile(`\b(Mr|Mrs|Ms|Miss|Dr|Professor|Sir|Dame|Lord|Lady)\.?\s+([A-Z][A-Za-z'-]+(?:\s+[A-Z][A-Za-z'-]+)?)\b`)

	// "Smith Industries Ltd v Jones" case styles: left side claims, right
	// side defends.
	caseStylePartiesPattern = regexp.MustCompile(`\b([A-Z][\w'.&-]*(?:\s+[A-Z][\w'.&-]*){0,3})\s+v\.?\s+([A-Z][\w'.&-]*(?:\s+[A-Z][\w'.&-]*){0,3})`)

	counselRolePattern = regexp.MustCompile(`(?i)\b(solicitor|barrister|counsel)s?\b`)
)

// Parties finds the people involved in a matter: judges, counsel,
// designated parties and the two sides of a case style.
type Parties struct{}

func NewParties() *Parties { return &Parties{} }

func (p *Parties) Describe() model.ProcessingEngine {
	return model.ProcessingEngine{
		Name:               "parties",
		Type:               model.EngineRuleBased,
		BaselineConfidence: 0.82,
		Specialties:        []string{"litigation", "case-law"},
		Available:          true,
		Version:            "1.2.0",
	}
}

func (p *Parties) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := &model.EntitySet{}
	seen := map[string]bool{}

	add := func(person model.Person) {
		key := dedupeKey(person.Name)
		if person.Name == "" || seen[key] {
			return
		}
		seen[key] = true
		set.Persons = append(set.Persons, person)
	}

	for _, m := range judicialPattern.FindAllStringSubmatchIndex(text, -1) {
		style := collapseSpace(text[m[0]:m[1]])
		add(model.Person{
			Name:       style,
			Role:       "judge",
			Confidence: 0.85,
			Context:    clip(sentenceAround(text, m[0]), maxSnippetLen),
		})
	}

	for _, m := range postNominalPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		if strings.Contains(name, "Justice") || strings.Contains(name, "Honour") {
			continue
		}
		add(model.Person{
			Name:       name,
			Role:       text[m[4]:m[5]],
			Confidence: 0.85,
			Context:    clip(sentenceAround(text, m[0]), maxSnippetLen),
		})
	}

	for _, m := range designatedPartyPattern.FindAllStringSubmatchIndex(text, -1) {
		add(model.Person{
			Name:       text[m[4]:m[5]],
			Role:       strings.ToLower(text[m[2]:m[3]]),
			Confidence: 0.82,
			Context:    clip(sentenceAround(text, m[0]), maxSnippetLen),
		})
	}

	for _, m := range titledNamePattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[4]:m[5]]
		// "Mrs Justice Hale" belongs to the judicial pattern above.
		if strings.HasPrefix(name, "Justice") || strings.HasPrefix(name, "Honour") {
			continue
		}
		sentence := sentenceAround(text, m[0])
		role := ""
		if rm := counselRolePattern.FindString(sentence); rm != "" {
			role = strings.ToLower(rm)
		}
		add(model.Person{
			Name:       name,
			Role:       role,
			Confidence: 0.80,
			Context:    clip(sentence, maxSnippetLen),
		})
	}

	for _, m := range caseStylePartiesPattern.FindAllStringSubmatchIndex(text, -1) {
		sentence := clip(sentenceAround(text, m[0]), maxSnippetLen)
		left := trimCaseLead(collapseSpace(text[m[2]:m[3]]))
		if left != "" {
			add(model.Person{
				Name:       left,
				Role:       "claimant",
				Confidence: 0.78,
				Context:    sentence,
			})
		}
		add(model.Person{
			Name:       collapseSpace(text[m[4]:m[5]]),
			Role:       "defendant",
			Confidence: 0.78,
			Context:    sentence,
		})
	}

	return set, nil
}
