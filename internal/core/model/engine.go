package model

import "time"

// EngineType classifies how an engine produces its output.
type EngineType string

const (
	EngineRuleBased  EngineType = "rule-based"
	EngineAIAssisted EngineType = "ai-assisted"
	EngineHybrid     EngineType = "hybrid"
)

// ProcessingEngine is a catalog entry describing one extraction engine.
// Entries are created once at registry construction and never mutated.
type ProcessingEngine struct {
	Name               string     `json:"name"`
	Type               EngineType `json:"type"`
	BaselineConfidence float64    `json:"baseline_confidence"`
	Specialties        []string   `json:"specialties"`
	Available          bool       `json:"available"`
	Version            string     `json:"version"`
}

// EngineResult wraps the raw output of one engine invocation with timing
// and provenance metadata. Owned by the orchestrator until handed to the
// consensus builder.
type EngineResult struct {
	EngineName     string        `json:"engine_name"`
	Entities       EntitySet     `json:"entities"`
	Confidence     float64       `json:"confidence"`
	ProcessingTime time.Duration `json:"processing_time"`
	Method         EngineType    `json:"method"`
	EngineVersion  string        `json:"engine_version"`
	SpecialtyMatch bool          `json:"specialty_match"`
}

// HealthState is the operational state derived from the availability flag.
type HealthState string

const (
	HealthHealthy HealthState = "healthy"
	HealthOffline HealthState = "offline"
)

// EngineHealth pairs a catalog entry with its derived health state for
// operational introspection.
type EngineHealth struct {
	ProcessingEngine
	Health HealthState `json:"health"`
}
