package models

import "fmt"

// Publisher 수집 대상 신문사 식별자
// 문자열 키 분기 대신 고정된 열거형으로 신문사를 식별한다
type Publisher string

const (
	PublisherHankyung Publisher = "hankyung" // 한국경제
	PublisherSegye    Publisher = "segye"    // 세계일보
	PublisherChosun   Publisher = "chosun"   // 조선일보
	PublisherJoongang Publisher = "joongang" // 중앙일보
	PublisherMunhwa   Publisher = "munhwa"   // 문화일보
)

// publisherNames 식별자 -> 한글 신문사명
var publisherNames = map[Publisher]string{
	PublisherHankyung: "한국경제",
	PublisherSegye:    "세계일보",
	PublisherChosun:   "조선일보",
	PublisherJoongang: "중앙일보",
	PublisherMunhwa:   "문화일보",
}

// AllPublishers 설정 순서 그대로의 전체 신문사 목록
func AllPublishers() []Publisher {
	return []Publisher{
		PublisherHankyung,
		PublisherSegye,
		PublisherChosun,
		PublisherJoongang,
		PublisherMunhwa,
	}
}

// Name 한글 신문사명 반환 (로그/CSV 출력용)
func (p Publisher) Name() string {
	if name, ok := publisherNames[p]; ok {
		return name
	}
	return string(p)
}

// Valid 등록된 신문사인지 확인
func (p Publisher) Valid() bool {
	_, ok := publisherNames[p]
	return ok
}

// ParsePublisher 식별자 또는 한글명으로 Publisher 해석
func ParsePublisher(s string) (Publisher, error) {
	p := Publisher(s)
	if p.Valid() {
		return p, nil
	}
	for id, name := range publisherNames {
		if name == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("등록되지 않은 신문사: %s (한국경제, 세계일보, 조선일보, 중앙일보, 문화일보 중 하나여야 합니다)", s)
}
