package matching

import "strings"

// Matcher 判斷使用者的食材名稱是否滿足食譜要求的標籤
// 兩個參數皆已轉為小寫
type Matcher interface {
	Satisfies(userName, requiredTag string) bool
}

// MatcherFunc 讓一般函式實作 Matcher
type MatcherFunc func(userName, requiredTag string) bool

// Satisfies 實作 Matcher
func (f MatcherFunc) Satisfies(userName, requiredTag string) bool {
	return f(userName, requiredTag)
}

// SubstringMatcher 雙向子字串比對："pechuga de pollo" 與 "pollo" 互相滿足
type SubstringMatcher struct{}

// Satisfies 實作 Matcher
func (SubstringMatcher) Satisfies(userName, requiredTag string) bool {
	return strings.Contains(requiredTag, userName) || strings.Contains(userName, requiredTag)
}
