package memory

import (
	"context"
	"sync"
	"time"
)

// Denylist keeps revoked token ids with their expiry. Entries are dropped by Purge.
type Denylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewDenylist() *Denylist {
	return &Denylist{entries: make(map[string]time.Time)}
}

func (d *Denylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[tokenID] = expiresAt
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[tokenID]
	return ok, nil
}

func (d *Denylist) Purge(_ context.Context, now time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for id, expiresAt := range d.entries {
		if !expiresAt.After(now) {
			delete(d.entries, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of tracked entries.
func (d *Denylist) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
