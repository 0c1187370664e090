// Package storage 수집된 기사의 영속화를 담당한다
// CSV 파일(신문사별)과 SQLite 두 가지 저장 방식을 제공하며,
// 설정에 따라 둘을 동시에 쓸 수도 있다
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/polinsight/newscrawler/internal/models"
)

// ArticleSink 수집 결과 저장소
type ArticleSink interface {
	// Save 실행 요약에 담긴 전체 기사를 저장
	Save(summary *models.CrawlSummary) error
	// Close 저장소 정리 (파일/연결 닫기)
	Close() error
}

// NewSink 설정값(csv, sqlite, both)에 맞는 저장소 생성
func NewSink(sinkType, outputDir, sqlitePath string) (ArticleSink, error) {
	if sqlitePath == "" {
		sqlitePath = defaultSQLitePath(outputDir)
	}
	switch sinkType {
	case "csv", "":
		return NewCSVSink(outputDir), nil
	case "sqlite":
		return NewSQLiteSink(sqlitePath)
	case "both":
		sqliteSink, err := NewSQLiteSink(sqlitePath)
		if err != nil {
			return nil, err
		}
		return MultiSink{NewCSVSink(outputDir), sqliteSink}, nil
	default:
		return nil, fmt.Errorf("지원하지 않는 저장 방식: %q (csv, sqlite, both 중 하나여야 합니다)", sinkType)
	}
}

// MultiSink 여러 저장소에 동일한 결과를 기록
// 하나가 실패해도 나머지 저장은 계속 진행한다
type MultiSink []ArticleSink

func (m MultiSink) Save(summary *models.CrawlSummary) error {
	var firstErr error
	for _, sink := range m {
		if err := sink.Save(summary); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m MultiSink) Close() error {
	var firstErr error
	for _, sink := range m {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// defaultSQLitePath 출력 디렉터리 기준 기본 SQLite 경로
func defaultSQLitePath(outputDir string) string {
	return filepath.Join(outputDir, "articles.db")
}
