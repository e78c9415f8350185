package model

import "time"

// AccuracyLevel is the caller-requested accuracy tier. Higher tiers buy
// more engine coverage at a higher processing cost.
type AccuracyLevel string

const (
	AccuracyStandard    AccuracyLevel = "standard"
	AccuracyHigh        AccuracyLevel = "high"
	AccuracyNearPerfect AccuracyLevel = "near-perfect"
)

// Complexity is the assessed (or caller-overridden) difficulty of a document.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// ExtractionOptions carries the per-request knobs. The zero value asks for
// standard accuracy with the configured default time budget.
type ExtractionOptions struct {
	RequiredAccuracy AccuracyLevel `json:"required_accuracy,omitempty"`
	// MaxProcessingTime bounds the whole run; 0 means the processor default.
	MaxProcessingTime time.Duration `json:"max_processing_time,omitempty"`
	// PreferredEngines, when non-empty, narrows the selected strategy to
	// the listed engines.
	PreferredEngines []string `json:"preferred_engines,omitempty"`
	DocumentType     string   `json:"document_type,omitempty"`
	// Complexity overrides the assessor when set; the override always wins.
	Complexity Complexity `json:"complexity,omitempty"`
}
