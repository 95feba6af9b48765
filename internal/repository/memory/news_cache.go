package memory

import (
	"context"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type NewsCache struct {
	cache *cache.Cache
}

var _ contract.NewsCache = &NewsCache{}

func NewNewsCache() *NewsCache {
	// Create a cache with a default expiration time of 30 minutes, and which
	// purges expired items every 10 minutes
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &NewsCache{
		cache: c,
	}
}

func (r *NewsCache) Set(_ context.Context, key string, news *dto.NewsResponse, ttl time.Duration) {
	r.cache.Set(key, news, ttl)
}

func (r *NewsCache) Get(_ context.Context, key string) (*dto.NewsResponse, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*dto.NewsResponse), true
	}
	return nil, false
}
