package glasscube

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/glasscube/glasscube/api"
)

const latestKey = "latest"

// LatestSource is the content API endpoint FeedCache wraps.
type LatestSource interface {
	Latest(ctx context.Context) (api.Latest, error)
}

// FeedCache keeps the landing page's /latest response for a TTL. Only
// successful responses are cached; entity pages always read through.
type FeedCache struct {
	src   LatestSource
	items *cache.Cache
}

// NewFeedCache creates a FeedCache over src.
func NewFeedCache(src LatestSource, ttl time.Duration) *FeedCache {
	return &FeedCache{src: src, items: cache.New(ttl, 2*ttl)}
}

// Latest returns the cached feed or fetches a fresh one.
func (f *FeedCache) Latest(ctx context.Context) (api.Latest, error) {
	if v, ok := f.items.Get(latestKey); ok {
		return v.(api.Latest), nil
	}
	latest, err := f.src.Latest(ctx)
	if err != nil {
		return api.Latest{}, err
	}
	f.items.Set(latestKey, latest, cache.DefaultExpiration)
	return latest, nil
}

// Invalidate drops the cached feed so the next read fetches again. The
// editor calls it after every successful save.
func (f *FeedCache) Invalidate() {
	f.items.Delete(latestKey)
}

func (f *FeedCache) Flush() {
	f.items.Flush()
}
