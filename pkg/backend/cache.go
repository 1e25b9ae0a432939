package backend

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cache memoizes access resolutions. Any mutation that can change a grant
// purges the whole cache, resolutions are cheap to recompute.
type cache struct {
	b           *Backend
	resolutions *lru.Cache[string, Resolution]
}

func newCache(b *Backend, size int) *cache {
	if size <= 0 {
		size = 1
	}
	c := &cache{b: b}
	cache, _ := lru.New[string, Resolution](size)
	c.resolutions = cache
	return c
}

func cacheKey(userID, projectID int64) string {
	return fmt.Sprintf("%d:%d", userID, projectID)
}

func (c *cache) Get(userID, projectID int64) (Resolution, bool) {
	return c.resolutions.Get(cacheKey(userID, projectID))
}

func (c *cache) Set(userID, projectID int64, r Resolution) {
	c.resolutions.Add(cacheKey(userID, projectID), r)
}

func (c *cache) Purge() {
	c.resolutions.Purge()
}

func (c *cache) Len() int {
	return c.resolutions.Len()
}
