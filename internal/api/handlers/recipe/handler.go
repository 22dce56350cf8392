package recipe

import (
	"context"
	"net/http"
	"strings"

	"chef-express/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service 食譜服務介面
type Service interface {
	Search(ctx context.Context, ingredients []common.Ingredient) (common.Ranking, error)
	Detail(ctx context.Context, id string) (*common.Recipe, error)
}

// Handler 食譜處理器
type Handler struct {
	service Service
}

// NewHandler 創建食譜處理器
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleSearch 依冰箱食材搜尋食譜
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := common.RequestID(c)

	var ingredients []common.Ingredient
	if err := common.DecodeJSON(c.Request.Body, &ingredients); err != nil {
		common.LogWarn("Invalid search request",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	ranking, err := h.service.Search(c.Request.Context(), ingredients)
	if err != nil {
		common.LogError("Recipe search failed",
			zap.String("request_id", requestID),
			zap.Int("ingredients", len(ingredients)),
			zap.Error(err),
		)
		common.WriteError(c, err)
		return
	}

	common.LogInfo("Recipe search completed",
		zap.String("request_id", requestID),
		zap.Int("ingredients", len(ingredients)),
		zap.Int("results", len(ranking.Results)),
		zap.Int("skipped", ranking.Skipped),
	)

	c.JSON(http.StatusOK, ranking)
}

// HandleDetail 取得單一食譜
func (h *Handler) HandleDetail(c *gin.Context) {
	requestID := common.RequestID(c)
	id := strings.TrimSpace(c.Param("id"))

	recipe, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		common.LogWarn("Recipe detail failed",
			zap.String("request_id", requestID),
			zap.String("recipe_id", id),
			zap.Error(err),
		)
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}
