package utils

import (
	"strings"
	"time"
)

// dateLayouts 신문사별 작성일자 표기 형식
// 한 형식이라도 맞으면 그 결과를 쓰고, 전부 실패하면 현재 시각으로 대체한다
var dateLayouts = []string{
	"2006. 01. 02 15:04",
	"2006.01.02 15:04",
	"2006-01-02 15:04",
	"2006.01.02. 15:04",
	"2006-01-02 15:04:05",
	"2006.01.02 15:04:05",
	"2006. 01. 02 15:04:05",
}

// ParseDateTime 작성일자 문자열을 시각으로 정규화
// 어떤 형식에도 맞지 않으면 현재 시각을 반환한다 (실패해도 항상 유효한 값)
func ParseDateTime(s string) time.Time {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t
		}
	}
	Debugf("작성일자 해석 실패, 현재 시각으로 대체: %q", s)
	return time.Now()
}

// SameDay 두 시각이 같은 날짜(연/월/일)인지 확인
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
