// Package strategy maps a document's assessed complexity, the requested
// accuracy tier and the text length to an execution strategy. Selection is
// a pure decision table over the injected catalog; the selector never
// invokes engines.
package strategy

import "github.com/caselens/verdict/internal/core/model"

const (
	// Documents shorter than this qualify for the cheap rules-only path.
	rulesOnlyMaxLength = 5000
	// Documents longer than this always get the hybrid treatment: rule-only
	// extraction underperforms on large, heavily structured text.
	hybridMinLength = 20000
)

// The fast rule-based trio used when the document is cheap to process.
var rulesOnlyEngines = []string{"parties", "citations", "chronology"}

// The broadly capable five-engine subset for the default path.
var balancedEngines = []string{"parties", "citations", "chronology", "issues", "provisions"}

// Select applies the decision table, first match wins:
//
//  1. simple + standard accuracy + short text  -> rules-only, sequential
//  2. near-perfect accuracy                    -> full consensus, concurrent
//  3. complex or very long text                -> hybrid (rules + AI pass)
//  4. otherwise                                -> balanced consensus
//
// preferred, when non-empty, narrows the chosen engine set; an empty
// intersection keeps the unfiltered set so a misconfigured allowlist
// degrades accuracy rather than availability.
func Select(
	complexity model.Complexity,
	accuracy model.AccuracyLevel,
	textLength int,
	preferred []string,
	catalog []model.ProcessingEngine,
) model.Strategy {
	var s model.Strategy

	switch {
	case complexity == model.ComplexitySimple &&
		accuracy == model.AccuracyStandard &&
		textLength < rulesOnlyMaxLength:
		s = model.Strategy{
			Type:    model.StrategyRulesOnly,
			Label:   "rules-only",
			Engines: clone(rulesOnlyEngines),
		}

	case accuracy == model.AccuracyNearPerfect:
		s = model.Strategy{
			Type:       model.StrategyFull,
			Label:      "full-consensus",
			Engines:    availableNames(catalog, false),
			Concurrent: true,
		}

	case complexity == model.ComplexityComplex || textLength > hybridMinLength:
		s = model.Strategy{
			Type:       model.StrategyHybrid,
			Label:      "hybrid-consensus",
			Engines:    availableNames(catalog, true),
			AIFollowUp: firstAIAssisted(catalog),
			Concurrent: true,
		}

	default:
		s = model.Strategy{
			Type:       model.StrategyBalanced,
			Label:      "balanced-consensus",
			Engines:    clone(balancedEngines),
			Concurrent: true,
		}
	}

	s = applyPreferred(s, preferred)
	s.EngineCount = len(s.Engines)
	if s.AIFollowUp != "" {
		s.EngineCount++
	}
	return s
}

// availableNames lists available catalog engines in catalog order,
// optionally excluding the AI-assisted ones.
func availableNames(catalog []model.ProcessingEngine, excludeAI bool) []string {
	var names []string
	for _, d := range catalog {
		if !d.Available {
			continue
		}
		if excludeAI && d.Type == model.EngineAIAssisted {
			continue
		}
		names = append(names, d.Name)
	}
	return names
}

// firstAIAssisted returns the first available AI-assisted engine, or ""
// when none is registered. Hybrid degrades to consensus-only in that case.
func firstAIAssisted(catalog []model.ProcessingEngine) string {
	for _, d := range catalog {
		if d.Available && d.Type == model.EngineAIAssisted {
			return d.Name
		}
	}
	return ""
}

func applyPreferred(s model.Strategy, preferred []string) model.Strategy {
	if len(preferred) == 0 {
		return s
	}
	allow := make(map[string]bool, len(preferred))
	for _, name := range preferred {
		allow[name] = true
	}
	var filtered []string
	for _, name := range s.Engines {
		if allow[name] {
			filtered = append(filtered, name)
		}
	}
	if len(filtered) == 0 {
		// Nothing in the allowlist matches the selected set; keep the
		// original set rather than running no engines at all.
		return s
	}
	s.Engines = filtered
	if s.AIFollowUp != "" && !allow[s.AIFollowUp] {
		s.AIFollowUp = ""
	}
	return s
}

func clone(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
