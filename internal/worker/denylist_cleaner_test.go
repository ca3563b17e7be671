package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type purgerStub struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (p *purgerStub) PurgeRevoked(_ context.Context, now time.Time) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, now)
	if p.err != nil {
		return 0, p.err
	}
	return 1, nil
}

func (p *purgerStub) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func waitForCalls(t *testing.T, p *purgerStub, want int) {
	t.Helper()
	deadline := time.After(time.Second)
	for p.count() < want {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d purge calls, got %d", want, p.count())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewDenylistCleanerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cleaner := NewDenylistCleaner(&purgerStub{}, 0, logger)
	if cleaner.interval != time.Minute {
		t.Fatalf("expected default interval of one minute, got %v", cleaner.interval)
	}
}

func TestDenylistCleanerPurgesPeriodically(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	purger := &purgerStub{}
	cleaner := NewDenylistCleaner(purger, 5*time.Millisecond, logger)
	fixed := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	cleaner.now = func() time.Time { return fixed }

	cleaner.Start(context.Background())
	waitForCalls(t, purger, 2)
	cleaner.Stop()

	purger.mu.Lock()
	defer purger.mu.Unlock()
	if !purger.calls[0].Equal(fixed) {
		t.Fatalf("expected purge with injected clock, got %v", purger.calls[0])
	}
}

func TestDenylistCleanerSurvivesErrors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	purger := &purgerStub{err: errors.New("store down")}
	cleaner := NewDenylistCleaner(purger, 5*time.Millisecond, logger)

	cleaner.Start(context.Background())
	waitForCalls(t, purger, 2)
	cleaner.Stop()
}

func TestDenylistCleanerOutlivesStartContext(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	purger := &purgerStub{}
	cleaner := NewDenylistCleaner(purger, 5*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cleaner.Start(ctx)
	cancel()

	waitForCalls(t, purger, 1)
	cleaner.Stop()
}

func TestDenylistCleanerStopIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	purger := &purgerStub{}
	cleaner := NewDenylistCleaner(purger, time.Hour, logger)

	cleaner.Stop()
	cleaner.Start(context.Background())
	cleaner.Start(context.Background())
	cleaner.Stop()
	cleaner.Stop()

	after := purger.count()
	time.Sleep(10 * time.Millisecond)
	if purger.count() != after {
		t.Fatal("expected no purge after stop")
	}
}
