// Package engine defines the extraction engine contract and the typed,
// insertion-ordered registry the processor is constructed with. The
// registry replaces string-keyed dynamic dispatch: engines are registered
// once at startup and the catalog is read-only for the life of the
// process.
package engine

import (
	"context"
	"strings"

	"github.com/caselens/verdict/internal/core/model"
)

// Engine is the capability every extraction engine implements. Extract
// must honor ctx cancellation and never hang indefinitely; a nil EntitySet
// with a nil error is treated as a malformed result by the caller.
type Engine interface {
	// Describe returns the engine's static catalog entry.
	Describe() model.ProcessingEngine

	// Extract pulls the four entity collections out of raw text. The
	// documentType hint is advisory; engines may ignore it.
	Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error)
}

// documentSpecialties maps a declared document type to the specialty tags
// it calls for. Lookup is case-insensitive.
var documentSpecialties = map[string][]string{
	"contract":          {"contract"},
	"agreement":         {"contract"},
	"deed":              {"contract"},
	"judgment":          {"case-law"},
	"case-law":          {"case-law"},
	"opinion":           {"case-law"},
	"statute":           {"legislation"},
	"legislation":       {"legislation"},
	"regulation":        {"legislation"},
	"pleading":          {"litigation"},
	"claim":             {"litigation"},
	"witness-statement": {"litigation"},
	"letter":            {"correspondence"},
	"correspondence":    {"correspondence"},
	"email":             {"correspondence"},
}

// SpecialtiesFor returns the specialty tags implied by a document type
// hint, or nil when the hint is empty or unrecognised.
func SpecialtiesFor(documentType string) []string {
	return documentSpecialties[strings.ToLower(strings.TrimSpace(documentType))]
}

// SpecialtyMatch reports whether any of an engine's specialty tags align
// with the document type hint.
func SpecialtyMatch(specialties []string, documentType string) bool {
	wanted := SpecialtiesFor(documentType)
	if len(wanted) == 0 {
		return false
	}
	for _, s := range specialties {
		for _, w := range wanted {
			if s == w {
				return true
			}
		}
	}
	return false
}

// Disabled wraps an engine so its descriptor reports it unavailable. Used
// for config-driven disabling without removing the entry from the catalog.
func Disabled(e Engine) Engine {
	return disabledEngine{inner: e}
}

type disabledEngine struct {
	inner Engine
}

func (d disabledEngine) Describe() model.ProcessingEngine {
	desc := d.inner.Describe()
	desc.Available = false
	return desc
}

func (d disabledEngine) Extract(ctx context.Context, text, documentType string) (*model.EntitySet, error) {
	return nil, ErrDisabled
}
