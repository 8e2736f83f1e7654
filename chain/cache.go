// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/spacetimechain/lightcore/cache"
	"github.com/spacetimechain/lightcore/spacetime"
)

// rejectCache remembers why headers failed verification, so that
// re-submissions fail fast.
type rejectCache struct {
	arc   *lru.ARCCache
	stats cache.Stats
}

func newRejectCache(size int) *rejectCache {
	arc, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return &rejectCache{arc: arc}
}

// Get returns the cached rejection of hash, nil if there's none.
func (c *rejectCache) Get(hash spacetime.Bytes32) error {
	v, ok := c.arc.Get(hash)
	if ok {
		c.stats.Hit()
	} else {
		c.stats.Miss()
	}
	if changed, hit, miss := c.stats.Stats(); changed {
		metricRejectCacheHitMiss().SetWithLabel(hit, map[string]string{"event": "hit"})
		metricRejectCacheHitMiss().SetWithLabel(miss, map[string]string{"event": "miss"})
	}
	if !ok {
		return nil
	}
	return v.(error)
}

func (c *rejectCache) Add(hash spacetime.Bytes32, err error) {
	c.arc.Add(hash, err)
}

func (c *rejectCache) Len() int {
	return c.arc.Len()
}
