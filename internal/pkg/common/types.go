package common

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultRelativeQuantity 使用者未填寫份量時的預設值
const DefaultRelativeQuantity = "unknown amount"

// ErrMalformedRecipe 食譜資料缺少必要欄位
var ErrMalformedRecipe = errors.New("malformed recipe record")

// Ingredient 使用者冰箱中的食材
type Ingredient struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	RelativeQuantity string   `json:"relative_quantity,omitempty"`
	ExactQuantity    *float64 `json:"exact_quantity"` // 目前未使用
	ExactUnit        *string  `json:"exact_unit"`     // 目前未使用
}

// RecipeIngredient 食譜詳細頁的食材（僅供顯示，不參與比對）
type RecipeIngredient struct {
	Quantity string `json:"quantity"`
	Name     string `json:"name"`
}

// Recipe 食譜
// SearchTags 為 nil 代表資料缺少標籤欄位，與空陣列不同
type Recipe struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	TotalTime    string             `json:"total_time,omitempty"`
	SearchTags   []string           `json:"search_tags"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
}

// Validate 檢查食譜是否可以被評分
func (r *Recipe) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil recipe", ErrMalformedRecipe)
	case strings.TrimSpace(r.ID) == "":
		return fmt.Errorf("%w: missing id", ErrMalformedRecipe)
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("%w: recipe %s missing title", ErrMalformedRecipe, r.ID)
	case r.SearchTags == nil:
		return fmt.Errorf("%w: recipe %s missing search tags", ErrMalformedRecipe, r.ID)
	}
	return nil
}

// MatchResult 單一食譜的比對結果，每次搜尋重新計算
type MatchResult struct {
	RecipeID           string   `json:"recipe_id"`
	Title              string   `json:"title"`
	TotalTime          string   `json:"total_time"`
	CoveragePercent    int      `json:"coverage_percent"`
	CoverageLabel      string   `json:"coverage_label"`
	MissingIngredients []string `json:"missing_ingredients"`
	RequiredCount      int      `json:"required_count"`
}

// Ranking 排序後的搜尋結果
type Ranking struct {
	Results     []MatchResult `json:"results"`
	Skipped     int           `json:"skipped"`
	MinCoverage int           `json:"min_coverage"`
}

// IngredientNames 取出食材名稱
func IngredientNames(ingredients []Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// FormatIngredients 格式化食材列表
func FormatIngredients(ingredients []RecipeIngredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s %s\n", ing.Quantity, ing.Name))
	}
	return sb.String()
}
