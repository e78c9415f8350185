package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caselens/verdict/internal/core/model"
	"github.com/caselens/verdict/internal/engine"
)

// MockEngine is a scriptable engine for pipeline tests. Exactly one of
// Set/Err/Panic/Hang decides the Extract outcome; Hang blocks until the
// context is cancelled.
type MockEngine struct {
	Desc  model.ProcessingEngine
	Set   *model.EntitySet
	Err   error
	Panic bool
	Hang  bool
	Calls *CallLog
}

func (m *MockEngine) Describe() model.ProcessingEngine { return m.Desc }

func (m *MockEngine) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	if m.Calls != nil {
		m.Calls.add(m.Desc.Name)
	}
	if m.Panic {
		panic("mock engine exploded")
	}
	if m.Hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Set, nil
}

// CallLog records engine invocations across goroutines.
type CallLog struct {
	mu    sync.Mutex
	names []string
}

func (c *CallLog) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
}

func (c *CallLog) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

func ruleMock(name string, confidence float64, set *model.EntitySet) *MockEngine {
	return &MockEngine{
		Desc: model.ProcessingEngine{
			Name:               name,
			Type:               model.EngineRuleBased,
			BaselineConfidence: confidence,
			Specialties:        []string{"litigation"},
			Available:          true,
			Version:            "1.0.0",
		},
		Set: set,
	}
}

func aiMock(name string, confidence float64, set *model.EntitySet) *MockEngine {
	e := ruleMock(name, confidence, set)
	e.Desc.Type = model.EngineAIAssisted
	return e
}

func newTestRegistry(t *testing.T, engines ...engine.Engine) *engine.Registry {
	t.Helper()
	reg := engine.NewRegistry()
	for _, e := range engines {
		require.NoError(t, reg.Register(e))
	}
	return reg
}

func personSet(name string, confidence float64) *model.EntitySet {
	return &model.EntitySet{
		Persons: []model.Person{{Name: name, Role: "claimant", Confidence: confidence}},
	}
}
