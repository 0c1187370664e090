package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

// utf8BOM 엑셀에서 한글이 깨지지 않도록 파일 머리에 쓰는 바이트 순서 표식
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader CSV 첫 행의 컬럼명
var csvHeader = []string{"제목", "본문", "카테고리", "하위카테고리", "게시일자", "신문사", "기사링크"}

// CSVSink 신문사별 CSV 파일 저장소
// 실행마다 신문사당 파일 하나를 만들며, 파일명에 실행 시각을 붙인다
type CSVSink struct {
	outputDir string
}

// NewCSVSink CSV 저장소 생성
func NewCSVSink(outputDir string) *CSVSink {
	if outputDir == "" {
		outputDir = "output"
	}
	return &CSVSink{outputDir: outputDir}
}

// Save 실행 요약의 기사를 신문사별 CSV 파일로 저장
// 기사가 한 건도 없는 신문사는 파일을 만들지 않는다
func (s *CSVSink) Save(summary *models.CrawlSummary) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("출력 디렉터리 생성 실패: %w", err)
	}

	stamp := summary.StartedAt.Format("20060102_150405")
	for _, outcome := range summary.Outcomes {
		if len(outcome.Articles) == 0 {
			continue
		}
		path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.csv", outcome.Publisher, stamp))
		if err := writeArticlesCSV(path, outcome.Articles); err != nil {
			return fmt.Errorf("[%s] CSV 저장 실패: %w", outcome.Publisher.Name(), err)
		}
		utils.Infof("📝 [%s] CSV 작성 완료: %s (%d건)", outcome.Publisher.Name(), path, len(outcome.Articles))
	}
	return nil
}

// Close CSV 저장소는 열린 자원이 없다
func (s *CSVSink) Close() error { return nil }

// writeArticlesCSV BOM + 헤더 + 기사 행을 순서대로 기록
func writeArticlesCSV(path string, articles []models.ArticleRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range articles {
		row := []string{
			a.Title,
			a.Body,
			a.Category,
			a.SubCategory,
			a.DateString,
			a.Publisher.Name(),
			a.SourceURL,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
