package msgtree

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// TreeCache keeps recently built trees keyed by their shape. Trees are never
// modified after construction, so a cached tree can be shared by any number
// of decoders. A TreeCache is safe for concurrent use.
type TreeCache struct {
	mu     sync.Mutex
	trees  *tinylfu.T[string, *Node]
	hits   int
	misses int
}

// Sizes below minCacheSize leave tinylfu without room in its protected segment.
const minCacheSize = 10

func NewTreeCache(size int) *TreeCache {
	if size < minCacheSize {
		size = minCacheSize
	}
	return &TreeCache{
		trees: tinylfu.New[string, *Node](size, size*10, shapeHasher),
	}
}

func shapeHasher(shape string) uint64 {
	return xxhash.Sum64String(shape)
}

// Get returns the tree for shape, building it on a miss. Shapes that fail to
// build are not cached.
func (c *TreeCache) Get(shape string) (*Node, error) {
	if root, ok := c.lookup(shape); ok {
		return root, nil
	}

	root, err := BuildTree(shape)
	if err != nil {
		return nil, err
	}

	c.add(shape, root)
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Cached tree %016x", shapeHasher(shape))
		logger.Info(message, "cache")
	}
	return root, nil
}

func (c *TreeCache) lookup(shape string) (*Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	root, ok := c.trees.Get(shape)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return root, ok
}

func (c *TreeCache) add(shape string, root *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees.Add(shape, root)
}

// Stats returns the number of hits and misses so far.
func (c *TreeCache) Stats() (hits int, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
