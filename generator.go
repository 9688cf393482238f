package biomark

import "context"

// Generator sends a prompt to a generative model and returns its reply.
type Generator interface {
	// Generate returns the raw reply text, expected to be JSON.
	Generate(ctx context.Context, prompt string) (string, error)
}
