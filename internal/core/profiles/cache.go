package profiles

import (
	"context"
	"log/slog"
	"sync"
)

// Cache is a process-local, write-once-per-key cache of other users' profile
// summaries, populated lazily the first time an author is rendered. Entries
// are never evicted or refreshed within a session: a profile changed by
// another user stays stale until the next process start. That staleness is
// an accepted trade-off, not a bug.
//
// Concurrent resolves of the same cold key may fetch twice; the last write
// wins and both callers end up observing the same stored value afterwards.
type Cache struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	repo     Repository
	logger   *slog.Logger
}

// NewCache creates a profile cache backed by repo
func NewCache(repo Repository, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		profiles: make(map[string]*Profile),
		repo:     repo,
		logger:   logger,
	}
}

// Resolve returns the cached summary for userID, fetching it on first
// reference. On fetch failure nothing is stored, so a later call retries.
func (c *Cache) Resolve(ctx context.Context, userID string) (*Profile, error) {
	c.mu.RLock()
	cached, ok := c.profiles[userID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	profile, err := c.repo.Get(ctx, userID)
	if err != nil {
		// Leave the key absent; the next render attempt retries the fetch
		return nil, err
	}

	c.mu.Lock()
	c.profiles[userID] = profile
	c.mu.Unlock()

	c.logger.Debug("profile cached", "user", userID)
	return profile, nil
}

// Cached reports whether a summary for userID is already resolved
func (c *Cache) Cached(userID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.profiles[userID]
	return ok
}

// Len returns the number of resolved summaries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}
