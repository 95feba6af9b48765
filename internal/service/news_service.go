package service

import (
	"context"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/constant"
	"github.com/cokeastorga/astorgayabogados/internal/dto"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/internal/repository/contract"
	"github.com/cokeastorga/astorgayabogados/pkg/llm"
)

const newsCacheKey = "legal-news"

type INewsService interface {
	Latest(ctx context.Context) *dto.NewsResponse
}

type newsService struct {
	searcher llm.GroundedSearcher
	cache    contract.NewsCache
	ttl      time.Duration
	logger   logger.ILogger
}

// NewNewsService accepts a nil searcher, in which case the offline feed is always served.
func NewNewsService(searcher llm.GroundedSearcher, cache contract.NewsCache, ttl time.Duration, log logger.ILogger) INewsService {
	return &newsService{searcher: searcher, cache: cache, ttl: ttl, logger: log}
}

func OfflineNews() *dto.NewsResponse {
	return &dto.NewsResponse{
		Text: constant.LegalNewsOfflineText,
		Sources: []dto.NewsSource{
			{Title: "Poder Judicial de Chile", URI: "https://www.pjud.cl"},
			{Title: "Diario Oficial", URI: "https://www.diariooficial.cl"},
			{Title: "Biblioteca del Congreso Nacional", URI: "https://www.bcn.cl"},
		},
	}
}

func (s *newsService) Latest(ctx context.Context) *dto.NewsResponse {
	if cached, ok := s.cache.Get(ctx, newsCacheKey); ok {
		return cached
	}

	if s.searcher == nil {
		return OfflineNews()
	}

	text, sources, err := s.searcher.Search(ctx, constant.LegalNewsPrompt)
	if err != nil {
		s.logger.Warn("NewsService", "News search failed, serving offline feed", map[string]interface{}{
			"error": err.Error(),
		})
		return OfflineNews()
	}

	if text == "" {
		text = constant.LegalNewsEmptyText
	}

	news := &dto.NewsResponse{Text: text, Sources: uniqueSources(sources, constant.LegalNewsMaxSources)}
	s.cache.Set(ctx, newsCacheKey, news, s.ttl)
	return news
}

func uniqueSources(sources []llm.Source, limit int) []dto.NewsSource {
	seen := make(map[string]struct{}, len(sources))
	out := make([]dto.NewsSource, 0, limit)
	for _, src := range sources {
		if src.URI == "" || src.Title == "" {
			continue
		}
		if _, dup := seen[src.URI]; dup {
			continue
		}
		seen[src.URI] = struct{}{}
		out = append(out, dto.NewsSource{Title: src.Title, URI: src.URI})
		if len(out) == limit {
			break
		}
	}
	return out
}
