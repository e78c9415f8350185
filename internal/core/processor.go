// Package core orchestrates document processing: complexity assessment,
// strategy selection, engine execution under a time budget and consensus
// over the surviving results.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/caselens/verdict/internal/core/complexity"
	"github.com/caselens/verdict/internal/core/consensus"
	"github.com/caselens/verdict/internal/core/model"
	"github.com/caselens/verdict/internal/core/strategy"
	"github.com/caselens/verdict/internal/engine"
)

const defaultBudget = 30 * time.Second

// Processor is the facade over the extraction pipeline. Safe for
// concurrent use: the registry is read-only and the usage counters are
// internally synchronised.
type Processor struct {
	registry *engine.Registry
	log      *zap.Logger
	budget   time.Duration
	usage    *usageCounters
}

// NewProcessor builds a processor around a registry. budget caps a whole
// document run when the request does not carry its own; zero or negative
// falls back to 30s. A nil logger is replaced with a no-op one.
func NewProcessor(registry *engine.Registry, budget time.Duration, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	if budget <= 0 {
		budget = defaultBudget
	}
	return &Processor{
		registry: registry,
		log:      log,
		budget:   budget,
		usage:    newUsageCounters(),
	}
}

// ProcessDocument runs text through the full pipeline and returns the
// consensus result. The only input rejection is non-UTF-8 text; engine
// failures degrade the result instead of failing the call, and a run in
// which every engine failed still returns a well-formed zero-confidence
// result.
func (p *Processor) ProcessDocument(ctx context.Context, text string, opts model.ExtractionOptions) (*model.ConsensusResult, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}

	start := time.Now()

	budget := opts.MaxProcessingTime
	if budget <= 0 {
		budget = p.budget
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	accuracy := opts.RequiredAccuracy
	if accuracy == "" {
		accuracy = model.AccuracyStandard
	}

	assessed := complexity.Assess(text, opts.Complexity)
	strat := strategy.Select(assessed, accuracy, len(text), opts.PreferredEngines, p.registry.Descriptors())

	p.log.Info("strategy selected",
		zap.String("strategy", strat.Label),
		zap.String("complexity", string(assessed)),
		zap.Int("engine_count", strat.EngineCount),
		zap.Int("text_length", len(text)),
	)

	// Blank documents skip engine execution entirely; the consensus over
	// zero results carries the selected strategy label and no confidence.
	var results []model.EngineResult
	if strings.TrimSpace(text) != "" {
		results = p.executeStrategy(ctx, strat, text, opts.DocumentType)
	}

	res := consensus.Build(strat.Label, results)
	res.Stats.TotalTime = time.Since(start)

	p.usage.record(res)

	p.log.Info("document processed",
		zap.String("strategy", strat.Label),
		zap.Int("engines_contributing", len(results)),
		zap.Float64("consensus_confidence", res.ConsensusConfidence),
		zap.Duration("total_time", res.Stats.TotalTime),
	)
	return res, nil
}

// EngineStatus reports every catalog entry with its derived health state.
func (p *Processor) EngineStatus() []model.EngineHealth {
	descriptors := p.registry.Descriptors()
	out := make([]model.EngineHealth, 0, len(descriptors))
	for _, d := range descriptors {
		health := model.HealthHealthy
		if !d.Available {
			health = model.HealthOffline
		}
		out = append(out, model.EngineHealth{ProcessingEngine: d, Health: health})
	}
	return out
}

// Stats returns a snapshot of the cross-request usage counters.
func (p *Processor) Stats() model.ServiceStats {
	return p.usage.snapshot()
}
