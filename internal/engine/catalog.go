package engine

import (
	"github.com/caselens/verdict/internal/engine/ai"
	"github.com/caselens/verdict/internal/engine/rules"
	"github.com/caselens/verdict/internal/llm"
)

// NewDefaultRegistry registers the built-in engines in their canonical
// order. Engines named in disabled stay in the catalog but report offline
// and refuse to run; a nil client leaves the AI engine offline the same
// way.
func NewDefaultRegistry(client llm.Client, disabled []string) (*Registry, error) {
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[name] = true
	}

	reg := NewRegistry()
	engines := []Engine{
		rules.NewParties(),
		rules.NewCitations(),
		rules.NewChronology(),
		rules.NewIssues(),
		rules.NewProvisions(),
		ai.NewCounsel(client),
	}
	for _, e := range engines {
		if off[e.Describe().Name] {
			e = Disabled(e)
		}
		if err := reg.Register(e); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
