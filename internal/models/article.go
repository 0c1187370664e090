package models

import (
	"encoding/json"
	"time"
)

// ArticleRecord 수집된 기사 한 건
// 제목/본문/작성일자 문자열이 모두 비어있지 않을 때만 생성된다
type ArticleRecord struct {
	ID          string    `json:"id"`           // 레코드 고유 ID (UUID)
	Title       string    `json:"title"`        // 기사 제목
	Body        string    `json:"body"`         // 본문 (문단별 개행)
	Category    string    `json:"category"`     // 카테고리 (정치, 경제, ...)
	SubCategory string    `json:"sub_category"` // 하위 카테고리
	PublishedAt time.Time `json:"published_at"` // 정규화된 게시일시
	DateString  string    `json:"date_string"`  // 원문 그대로의 작성일자 문자열
	Publisher   Publisher `json:"publisher"`    // 신문사 식별자
	SourceURL   string    `json:"source_url"`   // 기사 원문 URL
	CollectedAt time.Time `json:"collected_at"` // 수집 시각
}

// Complete 필수 필드(제목/작성일자 문자열/본문)가 모두 채워졌는지 확인
// 하나라도 비어있으면 레코드로 내보내지 않고 건너뛴다
func (a *ArticleRecord) Complete() bool {
	return a.Title != "" && a.DateString != "" && a.Body != ""
}

// CrawlOutcome 신문사 한 곳의 크롤링 결과
// 성공 시 Articles, 실패 시 Err에 원인이 담긴다
// 세션 치명 오류로 중단된 경우에도 그때까지 수집된 기사는 Articles에 남는다
type CrawlOutcome struct {
	Publisher Publisher       `json:"publisher"`
	Articles  []ArticleRecord `json:"articles"`
	Err       error           `json:"-"`
	ErrorMsg  string          `json:"error,omitempty"` // 직렬화용 오류 메시지
	Elapsed   float64         `json:"elapsed"`         // 소요 시간(초)
}

// Succeeded 오류 없이 완료되었는지 확인
func (o *CrawlOutcome) Succeeded() bool {
	return o.Err == nil
}

// CrawlSummary 전체 크롤링 1회 실행 요약
type CrawlSummary struct {
	RunID         string         `json:"run_id"`          // 실행 고유 ID (UUID)
	StartedAt     time.Time      `json:"started_at"`      // 시작 시각
	FinishedAt    time.Time      `json:"finished_at"`     // 종료 시각
	Elapsed       float64        `json:"elapsed"`         // 총 소요 시간(초)
	TotalCount    int            `json:"total_count"`     // 대상 신문사 수
	SuccessCount  int            `json:"success_count"`   // 오류 없이 완료한 신문사 수
	FailedCount   int            `json:"failed_count"`    // 오류/타임아웃 신문사 수
	TotalArticles int            `json:"total_articles"`  // 수집 기사 총 건수
	Outcomes      []CrawlOutcome `json:"outcomes"`
}

// Articles 모든 신문사의 수집 기사를 하나로 합쳐 반환
func (s *CrawlSummary) Articles() []ArticleRecord {
	all := make([]ArticleRecord, 0, s.TotalArticles)
	for _, o := range s.Outcomes {
		all = append(all, o.Articles...)
	}
	return all
}

// ToJSON 요약을 JSON으로 직렬화 (실행 보고서 저장용)
func (s *CrawlSummary) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
