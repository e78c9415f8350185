// Package consensus folds the outputs of several extraction engines into
// one confidence-scored result. Build is a pure function: same inputs,
// same output, no clocks and no I/O.
package consensus

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/caselens/verdict/internal/core/model"
)

const (
	// Each agreeing engine adds a small bonus on top of the mean engine
	// confidence, capped so consensus never manufactures certainty.
	agreementBonusPerEngine = 0.02
	agreementBonusCap       = 0.10
	confidenceCeiling       = 0.99
)

// Build merges engine results into a ConsensusResult. Results must be in
// processing order; dedup keeps the higher-confidence duplicate and ties
// keep the earlier one. With no results the consensus confidence is zero.
func Build(strategyLabel string, results []model.EngineResult) *model.ConsensusResult {
	merged := model.EntitySet{
		Persons:     []model.Person{},
		Issues:      []model.Issue{},
		Events:      []model.ChronologyEvent{},
		Authorities: []model.Authority{},
	}

	var (
		personLists    [][]model.Person
		issueLists     [][]model.Issue
		eventLists     [][]model.ChronologyEvent
		authorityLists [][]model.Authority
	)
	enginesUsed := make([]string, 0, len(results))
	for _, r := range results {
		enginesUsed = append(enginesUsed, r.EngineName)
		personLists = append(personLists, r.Entities.Persons)
		issueLists = append(issueLists, r.Entities.Issues)
		eventLists = append(eventLists, r.Entities.Events)
		authorityLists = append(authorityLists, r.Entities.Authorities)
	}

	conflicts := 0
	var n int

	merged.Persons, n = dedupe(personLists, samePerson, func(p model.Person) float64 { return p.Confidence })
	conflicts += n
	merged.Issues, n = dedupe(issueLists, sameIssue, func(i model.Issue) float64 { return i.Confidence })
	conflicts += n
	merged.Events, n = dedupe(eventLists, sameEvent, func(e model.ChronologyEvent) float64 { return e.Confidence })
	conflicts += n
	merged.Authorities, n = dedupe(authorityLists, sameAuthority, func(a model.Authority) float64 { return a.Confidence })
	conflicts += n

	var totalConfidence float64
	var totalTime time.Duration
	for _, r := range results {
		totalConfidence += r.Confidence
		totalTime += r.ProcessingTime
	}

	var avg, consensusConfidence float64
	if len(results) > 0 {
		avg = totalConfidence / float64(len(results))
		bonus := agreementBonusPerEngine * float64(len(results))
		if bonus > agreementBonusCap {
			bonus = agreementBonusCap
		}
		consensusConfidence = avg + bonus
		if consensusConfidence > confidenceCeiling {
			consensusConfidence = confidenceCeiling
		}
	}

	contributions := make([]model.EngineContribution, 0, len(results))
	for _, r := range results {
		weight := 0.0
		if totalConfidence > 0 {
			weight = r.Confidence / totalConfidence
		}
		contributions = append(contributions, model.EngineContribution{
			Engine:     r.EngineName,
			Weight:     weight,
			Confidence: r.Confidence,
		})
	}

	return &model.ConsensusResult{
		Entities:            merged,
		ConsensusConfidence: consensusConfidence,
		EnginesUsed:         enginesUsed,
		ConflictsResolved:   conflicts,
		Stats: model.ProcessingStats{
			TotalTime:         totalTime,
			AverageConfidence: avg,
			// Agreement tracks the confidence mean; entity-level overlap
			// scoring is not part of the contract.
			EngineAgreement: avg,
		},
		Transparency: model.TransparencyReport{
			Strategy:      strategyLabel,
			Contributions: contributions,
		},
	}
}

// dedupe folds entity lists in order. A candidate matching an accepted
// entity replaces it only when strictly more confident; every collapse
// counts as one resolved conflict.
func dedupe[T any](lists [][]T, same func(a, b T) bool, conf func(T) float64) ([]T, int) {
	out := []T{}
	conflicts := 0
	for _, list := range lists {
		for _, candidate := range list {
			matched := false
			for i := range out {
				if same(out[i], candidate) {
					matched = true
					conflicts++
					if conf(candidate) > conf(out[i]) {
						out[i] = candidate
					}
					break
				}
			}
			if !matched {
				out = append(out, candidate)
			}
		}
	}
	return out, conflicts
}

func samePerson(a, b model.Person) bool {
	na, nb := normalizeName(a.Name), normalizeName(b.Name)
	if na == "" || nb == "" {
		return na == nb
	}
	if na == nb {
		return true
	}
	// "J. Smith" and "John Smith" are the same person.
	return initialSurname(na) == initialSurname(nb)
}

func sameIssue(a, b model.Issue) bool {
	return normalizeText(a.Description) == normalizeText(b.Description)
}

func sameEvent(a, b model.ChronologyEvent) bool {
	if a.Date != b.Date {
		return false
	}
	da, db := normalizeText(a.Description), normalizeText(b.Description)
	if da == "" || db == "" {
		return da == db
	}
	return strings.HasPrefix(da, db) || strings.HasPrefix(db, da)
}

func sameAuthority(a, b model.Authority) bool {
	return normalizeText(a.Citation) == normalizeText(b.Citation)
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// normalizeName also strips periods so "J. Smith" normalises like "J Smith".
func normalizeName(s string) string {
	return normalizeText(strings.ReplaceAll(s, ".", " "))
}

// initialSurname reduces a name to its first initial plus last token.
func initialSurname(normalized string) string {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(tokens[0])
	return string(first) + " " + tokens[len(tokens)-1]
}
