package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polinsight/newscrawler/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Reporter 실행 보고서 생성기
type Reporter struct {
	outputDir string
}

// NewReporter 보고서 생성기 생성
func NewReporter(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// SaveSummary 실행 요약을 JSON 보고서로 저장하고 파일 경로를 반환
func (r *Reporter) SaveSummary(summary *models.CrawlSummary) (string, error) {
	reportsDir := filepath.Join(r.outputDir, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("보고서 디렉터리 생성 실패: %w", err)
	}

	data, err := summary.ToJSON()
	if err != nil {
		return "", fmt.Errorf("보고서 직렬화 실패: %w", err)
	}

	filename := fmt.Sprintf("crawl_report_%s.json", summary.StartedAt.Format("20060102_150405"))
	path := filepath.Join(reportsDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("보고서 파일 쓰기 실패: %w", err)
	}

	Infof("✅ 실행 보고서 저장: %s", path)
	return path, nil
}

// LogSummary 실행 요약을 로그로 출력
func (r *Reporter) LogSummary(summary *models.CrawlSummary) {
	Infof("🎉 크롤링 완료: 성공 %d/%d 신문사, 기사 %d건, 소요 %.1f초",
		summary.SuccessCount, summary.TotalCount, summary.TotalArticles, summary.Elapsed)
	for _, outcome := range summary.Outcomes {
		if outcome.Succeeded() {
			Infof("  ✅ %s: %d건 (%.1f초)", outcome.Publisher.Name(), len(outcome.Articles), outcome.Elapsed)
		} else {
			Warnf("  ❌ %s: %s (%.1f초)", outcome.Publisher.Name(), outcome.ErrorMsg, outcome.Elapsed)
		}
	}
}

// NewProgressBar 진행 표시줄 생성
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
