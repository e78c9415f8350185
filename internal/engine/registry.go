package engine

import (
	"errors"
	"fmt"

	"github.com/caselens/verdict/internal/core/model"
)

var (
	// ErrDuplicate is returned when two engines register the same name.
	ErrDuplicate = errors.New("engine already registered")
	// ErrDisabled is returned by engines wrapped with Disabled.
	ErrDisabled = errors.New("engine disabled by configuration")
)

// Registry is the explicitly constructed engine catalog. It preserves
// registration order, which downstream components rely on for
// deterministic processing order. After construction it is read-only and
// safe for concurrent use without locking.
type Registry struct {
	order   []string
	engines map[string]Engine
}

func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// Register adds an engine under its descriptor name.
func (r *Registry) Register(e Engine) error {
	name := e.Describe().Name
	if name == "" {
		return errors.New("engine has no name")
	}
	if _, exists := r.engines[name]; exists {
		return fmt.Errorf("%s: %w", name, ErrDuplicate)
	}
	r.order = append(r.order, name)
	r.engines[name] = e
	return nil
}

// Get returns the engine registered under name.
func (r *Registry) Get(name string) (Engine, bool) {
	e, ok := r.engines[name]
	return e, ok
}

// Len returns the number of registered engines.
func (r *Registry) Len() int {
	return len(r.order)
}

// Descriptors returns catalog entries in registration order.
func (r *Registry) Descriptors() []model.ProcessingEngine {
	out := make([]model.ProcessingEngine, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.engines[name].Describe())
	}
	return out
}
