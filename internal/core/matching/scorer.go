package matching

import (
	"strings"

	"chef-express/internal/pkg/common"
)

// Score 單一食譜的覆蓋率結果
type Score struct {
	CoveragePercent int
	Missing         []string
	RequiredCount   int
	Available       int
}

// Scorer 計算食譜標籤被使用者食材覆蓋的比例
type Scorer struct {
	filter  *TagFilter
	matcher Matcher
}

// NewScorer 建立評分器，matcher 為 nil 時使用 SubstringMatcher
func NewScorer(filter *TagFilter, matcher Matcher) *Scorer {
	if filter == nil {
		filter = defaultFilter
	}
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &Scorer{filter: filter, matcher: matcher}
}

// Score 計算覆蓋率與缺少的食材
func (s *Scorer) Score(tags []string, userNames []string) Score {
	required := s.filter.Filter(tags)

	lowered := make([]string, 0, len(userNames))
	for _, name := range userNames {
		// 空白名稱略過；其餘只轉小寫
		if strings.TrimSpace(name) == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(name))
	}

	result := Score{
		Missing:       make([]string, 0),
		RequiredCount: len(required),
	}

	for _, tag := range required {
		tagLower := strings.ToLower(tag)
		if s.satisfied(lowered, tagLower) {
			result.Available++
			continue
		}
		result.Missing = append(result.Missing, tag)
	}

	result.CoveragePercent = percent(result.Available, result.RequiredCount)
	return result
}

// ScoreRecipe 對食譜的搜尋標籤評分
func (s *Scorer) ScoreRecipe(recipe common.Recipe, userNames []string) Score {
	return s.Score(recipe.SearchTags, userNames)
}

func (s *Scorer) satisfied(userNames []string, tagLower string) bool {
	for _, name := range userNames {
		if s.matcher.Satisfies(name, tagLower) {
			return true
		}
	}
	return false
}

// percent 四捨五入（0.5 進位）的百分比，total 為 0 時回傳 0
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (total * 2)
}

var defaultScorer = NewScorer(defaultFilter, SubstringMatcher{})

// ScoreRecipe 使用預設設定評分
func ScoreRecipe(recipe common.Recipe, userNames []string) Score {
	return defaultScorer.ScoreRecipe(recipe, userNames)
}
