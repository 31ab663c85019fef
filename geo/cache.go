package geo

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedLocator answers repeated lookups from an LRU cache. Only records the
// vendor did not mark as failed are cached, and only for an explicit subject;
// self lookups and vendor failures always go to the vendor.
type CachedLocator struct {
	Next  Locator
	Cache *lru.Cache[CacheKey, Record]
}

// CacheKey identifies one lookup. Fields is the comma-joined selection, the
// same value that goes on the wire.
type CacheKey struct {
	Subject string
	Lang    string
	Fields  string
}

func NewCachedLocator(next Locator, size int) (*CachedLocator, error) {
	cache, err := lru.New[CacheKey, Record](size)
	if err != nil {
		return nil, err
	}
	return &CachedLocator{Next: next, Cache: cache}, nil
}

func (c *CachedLocator) Locate(ctx context.Context, req Request) (Record, error) {
	record, _, err := c.LocateCached(ctx, req)
	return record, err
}

// LocateCached is Locate that also reports whether the answer came from the cache.
func (c *CachedLocator) LocateCached(ctx context.Context, req Request) (Record, bool, error) {
	key := cacheKey(req)
	if c.Cache != nil && req.Subject != "" {
		if record, found := c.Cache.Get(key); found {
			return record, true, nil
		}
	}
	record, err := c.Next.Locate(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if c.Cache != nil && req.Subject != "" && !Failed(record) {
		c.Cache.Add(key, record)
	}
	return record, false, nil
}

func cacheKey(req Request) CacheKey {
	return CacheKey{Subject: req.Subject, Lang: req.Lang, Fields: strings.Join(req.Fields, ",")}
}
