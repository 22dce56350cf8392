package recipe

import (
	"errors"
	"net/http"
	"strings"

	"chef-express/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// legacyIngredient 舊版前端送出的食材格式
type legacyIngredient struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Cantidad string `json:"cantidad_relativa"`
}

// legacyResult 舊版搜尋結果格式
type legacyResult struct {
	ID              string   `json:"id"`
	Titulo          string   `json:"titulo"`
	TiempoTotal     string   `json:"tiempo_total"`
	Coincidencia    string   `json:"coincidencia"`
	PorcentajeValor int      `json:"porcentajeValor"`
	Faltantes       []string `json:"faltantes"`
}

// legacyIngredientLine 舊版食譜食材格式
type legacyIngredientLine struct {
	Cantidad string `json:"cantidad"`
	Nombre   string `json:"nombre"`
}

// legacyRecipe 舊版食譜詳細格式
type legacyRecipe struct {
	ID            string                 `json:"_id"`
	Titulo        string                 `json:"titulo"`
	TiempoTotal   string                 `json:"tiempo_total,omitempty"`
	TagsBusqueda  []string               `json:"tags_busqueda"`
	Ingredientes  []legacyIngredientLine `json:"ingredientes"`
	Instrucciones []string               `json:"instrucciones"`
}

// writeLegacyError 舊版錯誤格式只有 message 欄位
func writeLegacyError(c *gin.Context, err error) {
	ce := common.ToCustomError(err)
	status := ce.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, gin.H{"message": ce.Message})
}

// HandleLegacyMethodNotAllowed 舊版路徑的 405 回應，維持只有 message 的格式
func HandleLegacyMethodNotAllowed(c *gin.Context) {
	writeLegacyError(c, common.ErrMethodNotAllowed)
}

// HandleLegacySearch 相容舊版 buscarRecetas 函式
func (h *Handler) HandleLegacySearch(c *gin.Context) {
	requestID := common.RequestID(c)

	var body []legacyIngredient
	if err := common.DecodeJSON(c.Request.Body, &body); err != nil {
		common.LogWarn("Invalid legacy search request",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		writeLegacyError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	ingredients := make([]common.Ingredient, 0, len(body))
	for _, ing := range body {
		ingredients = append(ingredients, common.Ingredient{
			ID:               ing.ID,
			Name:             ing.Nombre,
			RelativeQuantity: ing.Cantidad,
		})
	}

	ranking, err := h.service.Search(c.Request.Context(), ingredients)
	if err != nil {
		common.LogError("Legacy recipe search failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		writeLegacyError(c, err)
		return
	}

	results := make([]legacyResult, 0, len(ranking.Results))
	for _, r := range ranking.Results {
		results = append(results, legacyResult{
			ID:              r.RecipeID,
			Titulo:          r.Title,
			TiempoTotal:     r.TotalTime,
			Coincidencia:    r.CoverageLabel,
			PorcentajeValor: r.CoveragePercent,
			Faltantes:       r.MissingIngredients,
		})
	}

	c.JSON(http.StatusOK, results)
}

// HandleLegacyDetail 相容舊版 obtenerReceta 函式
func (h *Handler) HandleLegacyDetail(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		writeLegacyError(c, common.NewError(common.ErrCodeInvalidRequest, "recipe id is required", http.StatusBadRequest, nil))
		return
	}

	recipe, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		var ce *common.CustomError
		if !errors.As(err, &ce) || ce.Status >= http.StatusInternalServerError {
			common.LogError("Legacy recipe detail failed",
				zap.String("request_id", common.RequestID(c)),
				zap.String("recipe_id", id),
				zap.Error(err),
			)
		}
		writeLegacyError(c, err)
		return
	}

	lines := make([]legacyIngredientLine, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		lines = append(lines, legacyIngredientLine{Cantidad: ing.Quantity, Nombre: ing.Name})
	}

	c.JSON(http.StatusOK, legacyRecipe{
		ID:            recipe.ID,
		Titulo:        recipe.Title,
		TiempoTotal:   recipe.TotalTime,
		TagsBusqueda:  recipe.SearchTags,
		Ingredientes:  lines,
		Instrucciones: recipe.Instructions,
	})
}
