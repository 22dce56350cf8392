// Package matching 實作食材比對與排序：標籤過濾、覆蓋率計算、門檻過濾與排序。
package matching

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinTagLength 標籤最少字元數（含），較短的標籤不視為食材
const DefaultMinTagLength = 3

// ExclusionSet 不屬於食材的分類標籤集合（小寫），建立後不可變
type ExclusionSet struct {
	tags map[string]struct{}
}

// NewExclusionSet 建立排除集合，輸入會轉為小寫
func NewExclusionSet(tags ...string) ExclusionSet {
	set := ExclusionSet{tags: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		set.tags[tag] = struct{}{}
	}
	return set
}

// DefaultExcludedTags 預設的分類標籤：餐別、速度、飲食風格、料理國別、菜式、季節、飲品。
// 每次回傳新的切片。
func DefaultExcludedTags() []string {
	return []string{
		"desayuno", "rápido", "lento", "vegetariano", "vegano", "italiano",
		"mexicano", "postre", "sopa", "invierno", "verano", "guarnición", "bebida",
	}
}

// DefaultExclusions 以預設分類標籤建立排除集合
func DefaultExclusions() ExclusionSet {
	return NewExclusionSet(DefaultExcludedTags()...)
}

// Contains 判斷已轉小寫的標籤是否在集合中
func (s ExclusionSet) Contains(lowerTag string) bool {
	_, ok := s.tags[lowerTag]
	return ok
}

// Len 集合大小
func (s ExclusionSet) Len() int {
	return len(s.tags)
}

// TagFilter 從食譜標籤中挑出真正的食材
type TagFilter struct {
	exclusions   ExclusionSet
	minTagLength int
}

// NewTagFilter 建立標籤過濾器，minTagLength <= 0 時使用預設值
func NewTagFilter(exclusions ExclusionSet, minTagLength int) *TagFilter {
	if minTagLength <= 0 {
		minTagLength = DefaultMinTagLength
	}
	return &TagFilter{
		exclusions:   exclusions,
		minTagLength: minTagLength,
	}
}

// Filter 保留長度足夠且不在排除集合中的標籤，維持原順序與大小寫
func (f *TagFilter) Filter(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) < f.minTagLength {
			continue
		}
		if f.exclusions.Contains(strings.ToLower(tag)) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

var defaultFilter = NewTagFilter(DefaultExclusions(), DefaultMinTagLength)

// FilterIngredientTags 使用預設排除集合過濾標籤
func FilterIngredientTags(tags []string) []string {
	return defaultFilter.Filter(tags)
}
