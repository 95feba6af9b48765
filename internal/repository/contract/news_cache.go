package contract

import (
	"context"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/dto"
)

type NewsCache interface {
	Get(ctx context.Context, key string) (*dto.NewsResponse, bool)
	Set(ctx context.Context, key string, news *dto.NewsResponse, ttl time.Duration)
}
