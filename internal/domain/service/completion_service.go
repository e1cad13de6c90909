package service

import (
	"context"
)

// CompletionService defines the interface for the text-completion provider
type CompletionService interface {
	// Complete sends prompt as the sole user message and returns the reply text.
	// A non-success response yields *errors.UpstreamScoringError.
	Complete(ctx context.Context, prompt string) (string, error)
}
