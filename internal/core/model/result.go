package model

import "time"

// ProcessingStats summarises one consensus run.
type ProcessingStats struct {
	TotalTime         time.Duration `json:"total_time"`
	AverageConfidence float64       `json:"average_confidence"`
	// EngineAgreement is the mean of the contributing engine confidences.
	// This mirrors the observed contract; it is not an entity-overlap
	// measure.
	EngineAgreement float64 `json:"engine_agreement"`
}

// EngineContribution records one engine's share of the consensus for the
// transparency report. Weight is the engine confidence divided by the sum
// of all contributing confidences.
type EngineContribution struct {
	Engine     string  `json:"engine"`
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
}

// TransparencyReport explains how the consensus was assembled.
type TransparencyReport struct {
	Strategy      string               `json:"strategy"`
	Contributions []EngineContribution `json:"contributions"`
}

// ConsensusResult is the merged, deduplicated, confidence-scored output of
// a processing run. Immutable once returned.
type ConsensusResult struct {
	Entities            EntitySet          `json:"entities"`
	ConsensusConfidence float64            `json:"consensus_confidence"`
	EnginesUsed         []string           `json:"engines_used"`
	ConflictsResolved   int                `json:"conflicts_resolved"`
	Stats               ProcessingStats    `json:"stats"`
	Transparency        TransparencyReport `json:"transparency"`
}

// ServiceStats aggregates counters across all documents processed since
// startup, for external observability tooling.
type ServiceStats struct {
	DocumentsProcessed    int64            `json:"documents_processed"`
	AverageProcessingTime time.Duration    `json:"average_processing_time"`
	AverageConfidence     float64          `json:"average_confidence"`
	EngineUsage           map[string]int64 `json:"engine_usage"`
}
