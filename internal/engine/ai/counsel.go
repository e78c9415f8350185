// Package ai contains the LLM-backed extraction engine.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/caselens/verdict/internal/core/model"
	"github.com/caselens/verdict/internal/llm"
)

const counselPrompt = `You are a legal document analyst. Extract the entities below from the document and answer with a single JSON object, no commentary.

Schema:
{
  "persons": [{"name": "", "role": "", "confidence": 0.0, "context": ""}],
  "issues": [{"description": "", "category": "", "confidence": 0.0, "context": ""}],
  "chronology_events": [{"date": "yyyy-mm-dd", "description": "", "confidence": 0.0}],
  "authorities": [{"citation": "", "relevance": "", "confidence": 0.0}]
}

Rules:
- Report only entities that appear in the document. Never invent any.
- Use ISO yyyy-mm-dd for dates the document states in full.
- Confidence is your own estimate between 0 and 1.

Document type: %s

Document:
%s`

// Counsel asks a language model for the four entity collections and
// sanitises what comes back. It is only available when a client is
// configured.
type Counsel struct {
	client llm.Client
}

func NewCounsel(client llm.Client) *Counsel {
	return &Counsel{client: client}
}

func (c *Counsel) Describe() model.ProcessingEngine {
	return model.ProcessingEngine{
		Name:               "counsel",
		Type:               model.EngineAIAssisted,
		BaselineConfidence: 0.86,
		Specialties:        []string{"case-law", "contract", "litigation"},
		Available:          c.client != nil,
		Version:            "1.4.0",
	}
}

func (c *Counsel) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	if c.client == nil {
		return nil, fmt.Errorf("no llm client configured")
	}
	if documentType == "" {
		documentType = "unspecified"
	}

	response, err := c.client.Generate(ctx, fmt.Sprintf(counselPrompt, documentType, text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction: %w", err)
	}

	set, err := llm.ParseJSON[model.EntitySet](response)
	if err != nil {
		return nil, err
	}

	sanitize(&set)
	return &set, nil
}

// sanitize drops entities without their defining field and clamps model
// confidences into [0,1].
func sanitize(set *model.EntitySet) {
	persons := set.Persons[:0]
	for _, p := range set.Persons {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		p.Confidence = clamp(p.Confidence)
		persons = append(persons, p)
	}
	set.Persons = persons

	issues := set.Issues[:0]
	for _, i := range set.Issues {
		i.Description = strings.TrimSpace(i.Description)
		if i.Description == "" {
			continue
		}
		i.Confidence = clamp(i.Confidence)
		issues = append(issues, i)
	}
	set.Issues = issues

	events := set.Events[:0]
	for _, e := range set.Events {
		e.Date = strings.TrimSpace(e.Date)
		if e.Date == "" {
			continue
		}
		e.Confidence = clamp(e.Confidence)
		events = append(events, e)
	}
	set.Events = events

	authorities := set.Authorities[:0]
	for _, a := range set.Authorities {
		a.Citation = strings.TrimSpace(a.Citation)
		if a.Citation == "" {
			continue
		}
		a.Confidence = clamp(a.Confidence)
		authorities = append(authorities, a)
	}
	set.Authorities = authorities
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
