package core

import (
	"context"
	"fmt"
	"time"

	"github.com/caselens/verdict/internal/core/model"
	"github.com/caselens/verdict/internal/engine"
)

// runEngine looks an engine up, invokes it under the request context and
// wraps its output with provenance metadata. Every failure mode (unknown
// name, offline engine, panic, timeout, malformed output) is contained
// here: the returned error means "no contribution", never "abort the
// request".
func (p *Processor) runEngine(ctx context.Context, name, text, documentType string) (model.EngineResult, error) {
	eng, ok := p.registry.Get(name)
	if !ok {
		return model.EngineResult{}, fmt.Errorf("%s: %w", name, ErrEngineUnknown)
	}
	desc := eng.Describe()
	if !desc.Available {
		return model.EngineResult{}, fmt.Errorf("%s: %w", name, ErrEngineUnavailable)
	}

	start := time.Now()
	set, err := invokeWithRecovery(ctx, eng, text, documentType)
	elapsed := time.Since(start)
	if err != nil {
		return model.EngineResult{}, fmt.Errorf("%s: %w: %v", name, ErrEngineFailed, err)
	}
	if set == nil {
		return model.EngineResult{}, fmt.Errorf("%s: %w: nil entity set", name, ErrEngineFailed)
	}

	return model.EngineResult{
		EngineName:     name,
		Entities:       *set,
		Confidence:     desc.BaselineConfidence,
		ProcessingTime: elapsed,
		Method:         desc.Type,
		EngineVersion:  desc.Version,
		SpecialtyMatch: engine.SpecialtyMatch(desc.Specialties, documentType),
	}, nil
}

// invokeWithRecovery runs Extract in its own goroutine so the deadline is
// enforced even against an engine that ignores ctx, and converts a panic
// inside the engine into an error. On expiry the in-flight call is
// abandoned; engines honour ctx per the contract so the goroutine exits
// shortly after.
func invokeWithRecovery(ctx context.Context, eng engine.Engine, text, documentType string) (*model.EntitySet, error) {
	type outcome struct {
		set *model.EntitySet
		err error
	}
	// Buffered so an abandoned call can still deliver and exit.
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		set, err := eng.Extract(ctx, text, documentType)
		done <- outcome{set: set, err: err}
	}()

	select {
	case out := <-done:
		return out.set, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
