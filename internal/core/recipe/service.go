package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chef-express/internal/core/cache"
	"chef-express/internal/core/matching"
	"chef-express/internal/metrics"
	"chef-express/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜搜尋與詳細資料服務
type Service struct {
	store        Store
	ranker       *matching.Ranker
	cacheManager *cache.CacheManager
}

// NewService 創建新的食譜服務，cacheManager 可為 nil
func NewService(store Store, ranker *matching.Ranker, cacheManager *cache.CacheManager) *Service {
	return &Service{
		store:        store,
		ranker:       ranker,
		cacheManager: cacheManager,
	}
}

// Search 取得候選食譜後依覆蓋率排序
func (s *Service) Search(ctx context.Context, ingredients []common.Ingredient) (common.Ranking, error) {
	start := time.Now()

	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return common.Ranking{}, common.NewValidationError(fmt.Sprintf("ingredient %d: name is required", i))
		}
	}

	names := common.IngredientNames(ingredients)
	candidates, err := s.store.FindByTags(ctx, names)
	if err != nil {
		return common.Ranking{}, storeError(ctx, err)
	}

	ranking := s.ranker.Rank(candidates, ingredients)
	metrics.RecordSearch(len(candidates), len(ranking.Results), ranking.Skipped, time.Since(start))

	fields := []zap.Field{
		zap.Int("ingredients", len(ingredients)),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(ranking.Results)),
		zap.Int("min_coverage", ranking.MinCoverage),
		zap.Duration("elapsed", time.Since(start)),
	}
	if ranking.Skipped > 0 {
		common.LogWarn("Recipe search skipped malformed records",
			append(fields, zap.Int("skipped", ranking.Skipped))...)
	} else {
		common.LogDebug("Recipe search completed", fields...)
	}

	return ranking, nil
}

// Detail 取得完整食譜，優先讀取快取
func (s *Service) Detail(ctx context.Context, id string) (*common.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.NewValidationError("recipe id is required")
	}

	key := s.getCacheKey("recipe", id)
	if cached, err := s.getFromCache(ctx, key); err == nil && cached != "" {
		var r common.Recipe
		if err := common.ParseJSONBytes([]byte(cached), &r); err == nil {
			metrics.RecordCacheLookup("recipe", true)
			return &r, nil
		}
		common.LogWarn("Discarding unreadable cached recipe", zap.String("recipe_id", id))
	}
	if s.cacheManager != nil {
		metrics.RecordCacheLookup("recipe", false)
	}

	r, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, common.ErrRecipeNotFound.Wrap(err)
	}
	if err != nil {
		return nil, storeError(ctx, err)
	}

	if data, err := common.ToJSON(r); err == nil {
		if err := s.setToCache(ctx, key, data); err != nil {
			common.LogDebug("Failed to cache recipe", zap.String("recipe_id", id), zap.Error(err))
		}
	}

	return r, nil
}

// storeError 將資料來源錯誤轉為 API 錯誤，逾時或取消回傳 504
func storeError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return common.ErrGatewayTimeout.Wrap(err)
	}
	return common.ErrStoreUnavailable.Wrap(err)
}

// Ping 檢查資料來源
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// MinCoverage 搜尋門檻
func (s *Service) MinCoverage() int {
	return s.ranker.MinCoverage()
}

// getCacheKey 生成緩存鍵
func (s *Service) getCacheKey(prefix string, data string) string {
	return fmt.Sprintf("%s:%s", prefix, data)
}

// getFromCache 從緩存獲取數據
func (s *Service) getFromCache(ctx context.Context, key string) (string, error) {
	if s.cacheManager == nil {
		return "", common.ErrCacheDisabled
	}
	return s.cacheManager.Get(ctx, key)
}

// setToCache 將數據存入緩存
func (s *Service) setToCache(ctx context.Context, key string, value string) error {
	if s.cacheManager == nil {
		return nil
	}
	return s.cacheManager.Set(ctx, key, value)
}
