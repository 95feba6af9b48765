package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/internal/repository/contract"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "astorga:news:"

// NewsCache shares the news feed between relay instances.
type NewsCache struct {
	rdb    *goredis.Client
	logger logger.ILogger
}

var _ contract.NewsCache = &NewsCache{}

func NewNewsCache(rdb *goredis.Client, log logger.ILogger) *NewsCache {
	return &NewsCache{rdb: rdb, logger: log}
}

func (c *NewsCache) Get(ctx context.Context, key string) (*dto.NewsResponse, bool) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("NewsCache", "Redis get failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var news dto.NewsResponse
	if err := json.Unmarshal(raw, &news); err != nil {
		return nil, false
	}
	return &news, true
}

func (c *NewsCache) Set(ctx context.Context, key string, news *dto.NewsResponse, ttl time.Duration) {
	raw, err := json.Marshal(news)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		c.logger.Warn("NewsCache", "Redis set failed", map[string]interface{}{"error": err.Error()})
	}
}
