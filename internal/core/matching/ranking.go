package matching

import (
	"fmt"
	"sort"

	"chef-express/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultMinCoverage 預設最低覆蓋率
const DefaultMinCoverage = 50

// Ranker 對候選食譜評分、過濾並排序
type Ranker struct {
	scorer      *Scorer
	minCoverage int
}

// NewRanker 建立排序器
func NewRanker(scorer *Scorer, minCoverage int) *Ranker {
	if scorer == nil {
		scorer = defaultScorer
	}
	return &Ranker{scorer: scorer, minCoverage: minCoverage}
}

// MinCoverage 目前使用的門檻
func (r *Ranker) MinCoverage() int {
	return r.minCoverage
}

// Rank 依覆蓋率由高到低排序，同分時保留候選順序。
// 資料不完整的食譜會被略過並計入 Skipped。
func (r *Ranker) Rank(candidates []common.Recipe, userIngredients []common.Ingredient) common.Ranking {
	names := common.IngredientNames(userIngredients)

	ranking := common.Ranking{
		Results:     make([]common.MatchResult, 0, len(candidates)),
		MinCoverage: r.minCoverage,
	}

	for i := range candidates {
		recipe := &candidates[i]
		if err := recipe.Validate(); err != nil {
			ranking.Skipped++
			common.LogWarn("Skipping malformed recipe",
				zap.Error(err),
				zap.Int("position", i),
			)
			continue
		}

		score := r.scorer.ScoreRecipe(*recipe, names)
		if score.CoveragePercent < r.minCoverage {
			continue
		}

		totalTime := recipe.TotalTime
		if totalTime == "" {
			totalTime = "N/A"
		}

		ranking.Results = append(ranking.Results, common.MatchResult{
			RecipeID:           recipe.ID,
			Title:              recipe.Title,
			TotalTime:          totalTime,
			CoveragePercent:    score.CoveragePercent,
			CoverageLabel:      fmt.Sprintf("%d%%", score.CoveragePercent),
			MissingIngredients: score.Missing,
			RequiredCount:      score.RequiredCount,
		})
	}

	sort.SliceStable(ranking.Results, func(i, j int) bool {
		return ranking.Results[i].CoveragePercent > ranking.Results[j].CoveragePercent
	})

	return ranking
}

// RankRecipes 使用預設評分器排序
func RankRecipes(candidates []common.Recipe, userIngredients []common.Ingredient, minCoverage int) common.Ranking {
	return NewRanker(defaultScorer, minCoverage).Rank(candidates, userIngredients)
}
