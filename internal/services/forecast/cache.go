package forecast

import (
	"sync"
	"time"

	"github.com/bobmcallan/plano/internal/models"
)

// cacheKey identifies one memoized window. Keys are exact: a cached
// January–March view is never reused to answer January–February.
type cacheKey struct {
	userID     string
	startMonth string
	endMonth   string
}

func keyFor(userID string, start, end time.Time) cacheKey {
	return cacheKey{userID: userID, startMonth: models.MonthKey(start), endMonth: models.MonthKey(end)}
}

// viewCache memoizes reconciled monthly views per (user, window).
type viewCache struct {
	mu    sync.RWMutex
	views map[cacheKey]*models.MonthlyView
}

func newViewCache() *viewCache {
	return &viewCache{views: make(map[cacheKey]*models.MonthlyView)}
}

func (c *viewCache) get(key cacheKey) (*models.MonthlyView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	view, ok := c.views[key]
	return view, ok
}

func (c *viewCache) set(key cacheKey, view *models.MonthlyView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[key] = view
}

// invalidateUser drops every window cached for the user, whatever its bounds.
func (c *viewCache) invalidateUser(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key := range c.views {
		if key.userID == userID {
			delete(c.views, key)
			dropped++
		}
	}
	return dropped
}
