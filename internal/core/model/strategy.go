package model

// StrategyType identifies one of the four execution strategies.
type StrategyType string

const (
	StrategyRulesOnly StrategyType = "rules-only"
	StrategyBalanced  StrategyType = "balanced-consensus"
	StrategyFull      StrategyType = "full-consensus"
	StrategyHybrid    StrategyType = "hybrid"
)

// Strategy describes which engines to run and how. The selector produces
// it; only the orchestrator acts on it.
type Strategy struct {
	Type  StrategyType `json:"type"`
	Label string       `json:"label"`
	// Engines is the ordered primary engine set. Order is significant: it
	// fixes the processing order used for dedup tie-breaks downstream.
	Engines []string `json:"engines"`
	// AIFollowUp names an AI-assisted engine invoked as a second phase on
	// the raw text (hybrid strategy). Empty means no follow-up pass.
	AIFollowUp  string `json:"ai_follow_up,omitempty"`
	Concurrent  bool   `json:"concurrent"`
	EngineCount int    `json:"engine_count"`
}
