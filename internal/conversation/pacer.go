package conversation

import (
	"context"
	"time"
)

// DefaultMinLatency is the typing-indicator floor applied to assistant messages.
const DefaultMinLatency = 750 * time.Millisecond

// Pacer enforces a minimum visible latency between the start of an action and
// the delivery of the message it produces.
type Pacer struct {
	floor time.Duration
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewPacer returns a Pacer with the given floor. A non-positive floor disables
// waiting.
func NewPacer(floor time.Duration) *Pacer {
	return &Pacer{floor: floor, now: time.Now, sleep: sleepContext}
}

// Start marks the beginning of an action.
func (p *Pacer) Start() time.Time {
	return p.now()
}

// Wait blocks for whatever remains of the floor since start. It returns early
// if ctx is done; the caller delivers the message either way.
func (p *Pacer) Wait(ctx context.Context, start time.Time) {
	if p.floor <= 0 {
		return
	}
	remaining := p.floor - p.now().Sub(start)
	if remaining <= 0 {
		return
	}
	p.sleep(ctx, remaining)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
