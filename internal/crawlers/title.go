package crawlers

import (
	"regexp"
	"strings"
)

// 대괄호 접두 제목 중 수집 대상으로 인정하는 예외
// [속보], [단독]은 기사, 그 외 대괄호 접두([포토], [인사] 등)는 비기사로 본다
var (
	breakingPattern  = regexp.MustCompile(`^\[\s*속보\s*\]`)
	exclusivePattern = regexp.MustCompile(`^\[\s*단독\s*\]`)
	bracketedPattern = regexp.MustCompile(`^\[`)
)

// ValidTitle 기사 제목인지 판별
// 규칙:
//  1. 빈 제목은 비기사
//  2. 대괄호로 시작하지 않으면 기사
//  3. [속보], [단독]으로 시작하면 기사
//  4. 그 외 대괄호 접두 제목은 비기사
func ValidTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false
	}
	if !bracketedPattern.MatchString(trimmed) {
		return true
	}
	return breakingPattern.MatchString(trimmed) || exclusivePattern.MatchString(trimmed)
}
