package ai

import (
	"context"
)

// TextGenerator sends a single prompt to a hosted model and returns its text reply.
// Calls are stateless; implementations are safe for concurrent use.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
