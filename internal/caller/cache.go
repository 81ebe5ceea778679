package caller

import (
	"sync"

	"github.com/vburojevic/rlc/internal/domain"
)

// levelCache maps a scope to the last successfully observed or successfully
// applied level. It never holds pending or optimistic values; a failed query
// or change leaves it untouched. Keys are the Scope structs themselves, so
// a node whose name contains a slash can never collide with another node's
// logger entry.
type levelCache struct {
	mu     sync.Mutex
	levels map[domain.Scope]domain.Level
}

func newLevelCache() *levelCache {
	return &levelCache{levels: make(map[domain.Scope]domain.Level)}
}

func (c *levelCache) get(scope domain.Scope) (domain.Level, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	level, ok := c.levels[scope]
	return level, ok
}

func (c *levelCache) set(scope domain.Scope, level domain.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levels[scope] = level
}

// replaceNode drops every entry belonging to node and installs the freshly
// observed set in one step, so loggers no longer reported do not linger.
// Entries for other nodes are untouched.
func (c *levelCache) replaceNode(node string, observed map[domain.Scope]domain.Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for scope := range c.levels {
		if scope.Node == node {
			delete(c.levels, scope)
		}
	}
	for scope, level := range observed {
		c.levels[scope] = level
	}
}
