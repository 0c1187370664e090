package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

// SQLiteSink SQLite 기사 저장소
// 실행 이력(crawl_runs)과 기사(articles)를 함께 기록한다
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink SQLite 저장소 생성 (스키마가 없으면 만든다)
func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("데이터베이스 디렉터리 생성 실패: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 열기 실패: %w", err)
	}

	s := &SQLiteSink{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initSchema 테이블이 없으면 생성
func (s *SQLiteSink) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawl_runs (
		run_id         TEXT PRIMARY KEY,
		started_at     TEXT NOT NULL,
		finished_at    TEXT NOT NULL,
		elapsed        REAL NOT NULL,
		success_count  INTEGER NOT NULL,
		failed_count   INTEGER NOT NULL,
		total_articles INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS articles (
		id           TEXT PRIMARY KEY,
		run_id       TEXT NOT NULL,
		title        TEXT NOT NULL,
		body         TEXT NOT NULL,
		category     TEXT,
		sub_category TEXT,
		date_string  TEXT NOT NULL,
		published_at TEXT,
		publisher    TEXT NOT NULL,
		source_url   TEXT,
		collected_at TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES crawl_runs(run_id)
	);
	CREATE INDEX IF NOT EXISTS idx_articles_publisher ON articles(publisher);
	CREATE INDEX IF NOT EXISTS idx_articles_run ON articles(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("스키마 생성 실패: %w", err)
	}
	return nil
}

// Save 실행 이력과 전체 기사를 단일 트랜잭션으로 기록
func (s *SQLiteSink) Save(summary *models.CrawlSummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("트랜잭션 시작 실패: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO crawl_runs (run_id, started_at, finished_at, elapsed, success_count, failed_count, total_articles)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.Format("2006-01-02 15:04:05"),
		summary.FinishedAt.Format("2006-01-02 15:04:05"),
		summary.Elapsed,
		summary.SuccessCount,
		summary.FailedCount,
		summary.TotalArticles,
	)
	if err != nil {
		return fmt.Errorf("실행 이력 기록 실패: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO articles (id, run_id, title, body, category, sub_category, date_string, published_at, publisher, source_url, collected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("기사 저장 준비 실패: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, a := range summary.Articles() {
		_, err := stmt.Exec(
			a.ID,
			summary.RunID,
			a.Title,
			a.Body,
			a.Category,
			a.SubCategory,
			a.DateString,
			a.PublishedAt.Format("2006-01-02 15:04:05"),
			string(a.Publisher),
			a.SourceURL,
			a.CollectedAt.Format("2006-01-02 15:04:05"),
		)
		if err != nil {
			return fmt.Errorf("기사 저장 실패 (%s): %w", a.SourceURL, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("트랜잭션 커밋 실패: %w", err)
	}
	utils.Infof("💾 SQLite 저장 완료: 기사 %d건 (실행 ID: %s)", count, summary.RunID)
	return nil
}

// CountByPublisher 신문사별 누적 기사 건수 조회
func (s *SQLiteSink) CountByPublisher() (map[models.Publisher]int, error) {
	rows, err := s.db.Query(`SELECT publisher, COUNT(*) FROM articles GROUP BY publisher`)
	if err != nil {
		return nil, fmt.Errorf("건수 조회 실패: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Publisher]int)
	for rows.Next() {
		var publisher string
		var count int
		if err := rows.Scan(&publisher, &count); err != nil {
			return nil, err
		}
		counts[models.Publisher(publisher)] = count
	}
	return counts, rows.Err()
}

// Close 데이터베이스 연결 종료
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
