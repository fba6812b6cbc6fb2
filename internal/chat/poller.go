package chat

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller turns the fixed-interval refresh some screens use into the generic
// "subscribe to conversation updates" capability, so the adapter stays
// transport-agnostic. A push-based subscriber would call Ingest directly.
type Poller struct {
	conv     *Conversation
	interval time.Duration
	log      *zap.Logger
}

func NewPoller(conv *Conversation, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{conv: conv, interval: interval, log: log}
}

// Run polls until ctx is cancelled. Poll failures are logged and the next
// tick tries again at the same fixed interval; there is no backoff and no
// burst retry.
func (p *Poller) Run(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := p.conv.Poll(ctx); err != nil {
				p.log.Warn("poll conversation",
					zap.String("conversation", p.conv.key.String()),
					zap.Error(err),
				)
			}
		}
	}
}
