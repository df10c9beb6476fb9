/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package chat

import (
	"sync"
	"time"
)

// PresenceTracker keeps the last-seen timestamp of every user considered
// online. It is a liveness heuristic, not a session registry: entries are
// memory-only, expire lazily after the configured window, and the tracker
// starts empty on every process restart.
//
// At most one entry exists per user. All operations take the internal lock,
// so reads never observe a half-pruned map.
type PresenceTracker struct {
	mu       sync.Mutex
	window   time.Duration
	now      func() time.Time
	lastSeen map[string]time.Time
}

// NewPresenceTracker creates an empty tracker. Users whose last update is
// older than window are reported offline.
func NewPresenceTracker(window time.Duration) *PresenceTracker {
	return &PresenceTracker{
		window:   window,
		now:      time.Now,
		lastSeen: make(map[string]time.Time),
	}
}

// SetOnline records or refreshes the user's last-seen timestamp. Idempotent.
func (t *PresenceTracker) SetOnline(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[userID] = t.now()
}

// SetOffline removes the user's entry. No-op if the user is not tracked.
func (t *PresenceTracker) SetOffline(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.lastSeen, userID)
}

// IsOnline reports whether the user has an entry within the expiry window.
// Expired entries found during the check are evicted.
func (t *PresenceTracker) IsOnline(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prune()
	_, ok := t.lastSeen[userID]
	return ok
}

// ListOnline returns the set of users currently within the expiry window,
// evicting expired entries first.
func (t *PresenceTracker) ListOnline() map[string]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prune()

	online := make(map[string]struct{}, len(t.lastSeen))
	for userID := range t.lastSeen {
		online[userID] = struct{}{}
	}
	return online
}

// prune scans the whole map and drops expired entries. Callers must hold the
// lock. A full scan is fine here, the map stays small and it removes the need
// for timers.
func (t *PresenceTracker) prune() {
	cutoff := t.now().Add(-t.window)
	for userID, seen := range t.lastSeen {
		if seen.Before(cutoff) {
			delete(t.lastSeen, userID)
		}
	}
}
