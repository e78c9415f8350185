package core

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/caselens/verdict/internal/core/model"
)

// executeStrategy runs the strategy's engines and returns their
// contributions in strategy order. Failed engines are logged and dropped;
// the hybrid follow-up pass runs after the concurrent phase completes.
func (p *Processor) executeStrategy(ctx context.Context, s model.Strategy, text, documentType string) []model.EngineResult {
	var results []model.EngineResult
	if s.Concurrent {
		results = p.runConcurrent(ctx, s.Engines, text, documentType)
	} else {
		results = p.runSequential(ctx, s.Engines, text, documentType)
	}

	if s.AIFollowUp != "" {
		if r, err := p.runEngine(ctx, s.AIFollowUp, text, documentType); err != nil {
			p.log.Warn("follow-up engine skipped", zap.String("engine", s.AIFollowUp), zap.Error(err))
		} else {
			results = append(results, r)
		}
	}
	return results
}

func (p *Processor) runSequential(ctx context.Context, names []string, text, documentType string) []model.EngineResult {
	results := make([]model.EngineResult, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			p.log.Warn("processing budget exhausted, skipping remaining engines",
				zap.String("next", name))
			break
		}
		r, err := p.runEngine(ctx, name, text, documentType)
		if err != nil {
			p.log.Warn("engine skipped", zap.String("engine", name), zap.Error(err))
			continue
		}
		results = append(results, r)
	}
	return results
}

// runConcurrent fans the engines out on an errgroup and joins them all
// before returning. Each engine writes only its own indexed slot, so the
// assembled order is strategy order regardless of completion order.
func (p *Processor) runConcurrent(ctx context.Context, names []string, text, documentType string) []model.EngineResult {
	g, ctx := errgroup.WithContext(ctx)
	slots := make([]*model.EngineResult, len(names))

	for i, name := range names {
		i, name := i, name // per-iteration capture under go < 1.22
		g.Go(func() error {
			r, err := p.runEngine(ctx, name, text, documentType)
			if err != nil {
				p.log.Warn("engine skipped", zap.String("engine", name), zap.Error(err))
				return nil
			}
			slots[i] = &r
			return nil
		})
	}
	// Tasks contain their own failures, so Wait is purely a join barrier.
	if err := g.Wait(); err != nil {
		p.log.Error("engine group failed", zap.Error(err))
	}

	results := make([]model.EngineResult, 0, len(names))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}
