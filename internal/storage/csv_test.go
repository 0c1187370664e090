package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/polinsight/newscrawler/internal/models"
)

func sampleSummary(t *testing.T) *models.CrawlSummary {
	t.Helper()
	started := time.Date(2025, 10, 13, 6, 0, 0, 0, time.Local)
	return &models.CrawlSummary{
		RunID:         models.NewID(),
		StartedAt:     started,
		FinishedAt:    started.Add(3 * time.Minute),
		Elapsed:       180,
		TotalCount:    2,
		SuccessCount:  2,
		TotalArticles: 3,
		Outcomes: []models.CrawlOutcome{
			{
				Publisher: models.PublisherMunhwa,
				Articles: []models.ArticleRecord{
					{
						ID:          models.NewID(),
						Title:       "[속보] 정부, 새 정책 발표",
						Body:        "첫 문단\n둘째 문단",
						Category:    "정치",
						SubCategory: "대통령실",
						DateString:  "2025-10-13 05:30",
						PublishedAt: time.Date(2025, 10, 13, 5, 30, 0, 0, time.Local),
						Publisher:   models.PublisherMunhwa,
						SourceURL:   "https://www.munhwa.com/article/1",
						CollectedAt: started,
					},
					{
						ID:          models.NewID(),
						Title:       "경제 동향 분석",
						Body:        "본문",
						Category:    "경제",
						SubCategory: "금융",
						DateString:  "2025-10-13 04:10",
						Publisher:   models.PublisherMunhwa,
						SourceURL:   "https://www.munhwa.com/article/2",
						CollectedAt: started,
					},
				},
			},
			{
				Publisher: models.PublisherSegye,
				Articles: []models.ArticleRecord{
					{
						ID:          models.NewID(),
						Title:       "세계 뉴스",
						Body:        "본문, \"인용\" 포함",
						Category:    "정치",
						SubCategory: "국회",
						DateString:  "2025-10-13 03:00",
						Publisher:   models.PublisherSegye,
						SourceURL:   "https://www.segye.com/article/3",
						CollectedAt: started,
					},
				},
			},
		},
	}
}

func TestCSVSink_WritesPerPublisherFiles(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(dir)
	summary := sampleSummary(t)

	if err := sink.Save(summary); err != nil {
		t.Fatalf("Save 실패: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("신문사별 파일 수 = %d, want 2", len(entries))
	}

	stamp := summary.StartedAt.Format("20060102_150405")
	wantName := "munhwa_" + stamp + ".csv"
	path := filepath.Join(dir, wantName)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("%s 파일이 없습니다: %v", wantName, err)
	}

	if !bytes.HasPrefix(raw, utf8BOM) {
		t.Error("파일이 UTF-8 BOM으로 시작하지 않습니다")
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV 파싱 실패: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("행 수 = %d, want 3 (헤더 + 기사 2건)", len(rows))
	}

	wantHeader := []string{"제목", "본문", "카테고리", "하위카테고리", "게시일자", "신문사", "기사링크"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("헤더[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	first := rows[1]
	if first[0] != "[속보] 정부, 새 정책 발표" {
		t.Errorf("제목 = %q", first[0])
	}
	if first[1] != "첫 문단\n둘째 문단" {
		t.Errorf("본문 개행이 보존되지 않았습니다: %q", first[1])
	}
	if first[5] != "문화일보" {
		t.Errorf("신문사 = %q, want 문화일보", first[5])
	}
	if first[4] != "2025-10-13 05:30" {
		t.Errorf("게시일자 = %q", first[4])
	}
}

func TestCSVSink_SkipsEmptyPublishers(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(dir)

	summary := sampleSummary(t)
	summary.Outcomes[1].Articles = nil

	if err := sink.Save(summary); err != nil {
		t.Fatalf("Save 실패: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("파일 수 = %d, want 1 (빈 신문사는 파일을 만들지 않음)", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "munhwa_") {
		t.Errorf("예상 밖의 파일: %s", entries[0].Name())
	}
}

func TestCSVSink_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	sink := NewCSVSink(dir)

	if err := sink.Save(sampleSummary(t)); err != nil {
		t.Fatalf("Save 실패: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("출력 디렉터리가 생성되지 않았습니다: %v", err)
	}
}
