package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/biomark"
)

var _ biomark.Generator = (*PacedGenerator)(nil)

// DefaultDelay is the pause taken before and after every model call.
const DefaultDelay = 5 * time.Second

// PacedGenerator wraps a Generator and sleeps a fixed delay before and
// after each call. It does not retry.
type PacedGenerator struct {
	next  biomark.Generator
	delay time.Duration
}

// NewPacedGenerator creates a new PacedGenerator.
func NewPacedGenerator(next biomark.Generator, delay time.Duration) *PacedGenerator {
	return &PacedGenerator{next: next, delay: delay}
}

// Generate waits, delegates to the wrapped generator, then waits again.
// A canceled context interrupts either wait.
func (g *PacedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := sleep(ctx, g.delay); err != nil {
		return "", err
	}

	reply, genErr := g.next.Generate(ctx, prompt)

	if err := sleep(ctx, g.delay); err != nil {
		return "", err
	}
	if genErr != nil {
		return "", genErr
	}
	return reply, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
