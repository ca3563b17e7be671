package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Purger drops denylist entries of tokens that have already expired.
type Purger interface {
	PurgeRevoked(ctx context.Context, now time.Time) (int, error)
}

// DenylistCleaner periodically purges expired entries from the token denylist.
type DenylistCleaner struct {
	purger   Purger
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDenylistCleaner constructs cleaner; non-positive interval falls back to one minute.
func NewDenylistCleaner(purger Purger, interval time.Duration, logger *slog.Logger) *DenylistCleaner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &DenylistCleaner{
		purger:   purger,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches background purging. Calling Start on a running cleaner is a no-op.
func (c *DenylistCleaner) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}

	// ctx is the start hook's context and may be short-lived.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel

	c.wg.Add(1)
	go c.loop(runCtx)
}

// Stop cancels the loop and waits for it to exit.
func (c *DenylistCleaner) Stop() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *DenylistCleaner) loop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purge(ctx)
		}
	}
}

func (c *DenylistCleaner) purge(ctx context.Context) {
	removed, err := c.purger.PurgeRevoked(ctx, c.now())
	if err != nil {
		c.logger.Error("purge token denylist failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		c.logger.Debug("purged token denylist", slog.Int("removed", removed))
	}
}
