package notify

import (
	"context"
	"time"

	"forumhub/pkg/logger"
	"forumhub/pkg/models"
)

// DefaultPollInterval is how often the feed refreshes in the background.
const DefaultPollInterval = 30 * time.Second

// FetchFunc retrieves the current notification listing.
type FetchFunc func(ctx context.Context) ([]models.Notification, error)

// Poller periodically fetches notifications and delivers each fresh listing
// on Updates. Its lifetime is bound to the session: cancel the context on
// logout and the poller stops and closes its channel.
type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	updates  chan []models.Notification
}

// NewPoller creates a poller; interval <= 0 uses DefaultPollInterval.
func NewPoller(fetch FetchFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		fetch:    fetch,
		interval: interval,
		updates:  make(chan []models.Notification, 1),
	}
}

// Updates returns the channel fresh listings arrive on. Closed when the
// poller stops.
func (p *Poller) Updates() <-chan []models.Notification {
	return p.updates
}

// Run polls until the context is cancelled or the session goes away. It
// fetches once immediately, then on every interval tick. Transient errors
// are logged and the next tick retries; an auth failure means the session
// ended, so the poller stops.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.updates)

	if !p.poll(ctx) {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.poll(ctx) {
				return
			}
		}
	}
}

func (p *Poller) poll(ctx context.Context) bool {
	items, err := p.fetch(ctx)
	if err != nil {
		if models.IsAuthRequired(err) {
			logger.Debug("Notification poller stopping: session ended")
			return false
		}
		if ctx.Err() != nil {
			return false
		}
		logger.Debugf("Notification poll failed: %v", err)
		return true
	}

	// Drop the stale pending listing if the consumer is behind.
	select {
	case <-p.updates:
	default:
	}
	select {
	case p.updates <- items:
	case <-ctx.Done():
		return false
	}
	return true
}
