package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParsePublisher(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Publisher
		wantErr bool
	}{
		{"식별자로 해석", "hankyung", PublisherHankyung, false},
		{"한글명으로 해석", "세계일보", PublisherSegye, false},
		{"조선일보 식별자", "chosun", PublisherChosun, false},
		{"중앙일보 한글명", "중앙일보", PublisherJoongang, false},
		{"등록되지 않은 신문사", "한겨레", "", true},
		{"빈 문자열", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePublisher(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePublisher() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePublisher() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPublisher_Name(t *testing.T) {
	if got := PublisherMunhwa.Name(); got != "문화일보" {
		t.Errorf("Name() = %v, want 문화일보", got)
	}
	if got := Publisher("unknown").Name(); got != "unknown" {
		t.Errorf("미등록 신문사는 식별자를 그대로 반환해야 합니다: got %v", got)
	}
}

func TestArticleRecord_Complete(t *testing.T) {
	tests := []struct {
		name   string
		record ArticleRecord
		want   bool
	}{
		{
			name:   "모든 필드 채워짐",
			record: ArticleRecord{Title: "제목", DateString: "2025-10-13 12:34:56", Body: "본문"},
			want:   true,
		},
		{"제목 없음", ArticleRecord{DateString: "2025-10-13", Body: "본문"}, false},
		{"작성일자 없음", ArticleRecord{Title: "제목", Body: "본문"}, false},
		{"본문 없음", ArticleRecord{Title: "제목", DateString: "2025-10-13"}, false},
		{"전부 없음", ArticleRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCrawlConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CrawlConfig)
		wantErr bool
	}{
		{"기본값은 유효", func(c *CrawlConfig) {}, false},
		{"재시도 횟수 0", func(c *CrawlConfig) { c.MaxNavRetries = 0 }, true},
		{"재시도 횟수 과다", func(c *CrawlConfig) { c.MaxNavRetries = 21 }, true},
		{"전체 한도 과소", func(c *CrawlConfig) { c.GlobalTimeout = 30 }, true},
		{"대기 범위 역전", func(c *CrawlConfig) { c.CategoryDelayMin = 7; c.CategoryDelayMax = 3 }, true},
		{"음수 대기 시간", func(c *CrawlConfig) { c.ArticleDelayMin = -1 }, true},
		{"세션 수 과다", func(c *CrawlConfig) { c.MaxSessions = 33 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCrawlConfig()
			tt.mutate(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCrawlSummary_JSON(t *testing.T) {
	summary := &CrawlSummary{
		RunID:         NewID(),
		StartedAt:     time.Now(),
		FinishedAt:    time.Now().Add(5 * time.Minute),
		Elapsed:       300.5,
		TotalCount:    4,
		SuccessCount:  3,
		FailedCount:   1,
		TotalArticles: 42,
		Outcomes: []CrawlOutcome{
			{Publisher: PublisherHankyung, Articles: []ArticleRecord{{Title: "제목", DateString: "d", Body: "b"}}, Elapsed: 120},
			{Publisher: PublisherSegye, ErrorMsg: "타임아웃", Elapsed: 2700},
		},
	}

	data, err := summary.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded CrawlSummary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.RunID != summary.RunID {
		t.Errorf("RunID 불일치: got %v, want %v", decoded.RunID, summary.RunID)
	}
	if decoded.TotalArticles != 42 {
		t.Errorf("TotalArticles 불일치: got %v, want 42", decoded.TotalArticles)
	}
	if len(decoded.Outcomes) != 2 {
		t.Errorf("Outcomes 길이 불일치: got %v, want 2", len(decoded.Outcomes))
	}
}

func TestCrawlSummary_Articles(t *testing.T) {
	summary := &CrawlSummary{
		Outcomes: []CrawlOutcome{
			{Publisher: PublisherHankyung, Articles: []ArticleRecord{{Title: "a"}, {Title: "b"}}},
			{Publisher: PublisherMunhwa, Articles: []ArticleRecord{{Title: "c"}}},
			{Publisher: PublisherSegye},
		},
		TotalArticles: 3,
	}

	all := summary.Articles()
	if len(all) != 3 {
		t.Fatalf("Articles() 길이 = %d, want 3", len(all))
	}
	if all[0].Title != "a" || all[2].Title != "c" {
		t.Errorf("기사 병합 순서가 신문사 순서를 따르지 않습니다: %+v", all)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"유효한 HTTPS URL", "https://www.hankyung.com/politics", false},
		{"유효한 HTTP URL", "http://example.com", false},
		{"프로토콜 없음", "www.segye.com", true},
		{"지원하지 않는 프로토콜", "ftp://example.com", true},
		{"빈 URL", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
