// Package llm provides the pluggable text-generation clients behind the
// AI-assisted extraction engine.
package llm

import "context"

// Client generates a completion for a prompt. Implementations must honor
// the context deadline.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
