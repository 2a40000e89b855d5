package posts

import (
	"sync"

	"github.com/lesvieux/portal/internal/api"
	"github.com/lesvieux/portal/internal/models"
)

// ListCache memoizes hydrated post lists per scope. It follows the
// invalidate-on-write model of the browser UI's query cache: reads fill it,
// successful mutations mark the affected scopes stale, and the next list
// query refetches.
type ListCache struct {
	mu    sync.Mutex
	lists map[api.Scope][]models.Post
}

func NewListCache() *ListCache {
	return &ListCache{lists: make(map[api.Scope][]models.Post)}
}

func (c *ListCache) Get(scope api.Scope) ([]models.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	posts, ok := c.lists[scope]
	return posts, ok
}

func (c *ListCache) Put(scope api.Scope, posts []models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[scope] = posts
}

// Invalidate drops the cached lists for the given scopes. Unknown or
// already-absent scopes are a no-op.
func (c *ListCache) Invalidate(scopes ...api.Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, scope := range scopes {
		delete(c.lists, scope)
	}
}
