package services

import "context"

// TextGenerator is the contract with the generative-text backend. All calls
// are single synchronous requests; failures propagate to the caller, nothing
// is retried here.
type TextGenerator interface {
	// GenerateNarrative produces long-form text with the narrative model.
	GenerateNarrative(ctx context.Context, prompt string) (string, error)

	// GenerateCommentary produces short text with the fast model.
	GenerateCommentary(ctx context.Context, prompt string) (string, error)

	// GenerateStructured asks the fast model for a JSON document.
	GenerateStructured(ctx context.Context, prompt string) (string, error)
}
