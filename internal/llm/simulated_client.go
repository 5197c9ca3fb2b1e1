package llm

import (
	"context"
	"time"

	"github.com/csheth/textcraft/internal/textmode"
)

// simulatedClient answers with canned transformations after a fixed delay.
// It is the default until a real provider is configured.
type simulatedClient struct {
	delay time.Duration
}

func (c *simulatedClient) Name() string {
	return "Simulation"
}

func (c *simulatedClient) Transform(ctx context.Context, req Request) (string, error) {
	text, _, err := prepare(req)
	if err != nil {
		return "", err
	}
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return textmode.SimulateAll(req.Processing, req.Style, text), nil
}
