package video

import (
	"context"

	"github.com/rs/zerolog/log"

	"mango/internal/ai"
	"mango/internal/pkg/cache"
)

// ListModels 列出可用模型
// 结果在 Redis 缓存 10 分钟；未配置 Redis 时每次现查
func (s *videoService) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	if s.cache != nil {
		var cached []ai.ModelInfo
		if err := s.cache.Get(ctx, cache.ModelCatalogCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	models, err := s.aiClient.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ModelCatalogCacheKey, models, cache.ModelCatalogCacheTTL); err != nil {
			log.Warn().Err(err).Msg("缓存模型清单失败")
		}
	}
	return models, nil
}
