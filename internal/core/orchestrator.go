package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

// PublisherRunner 신문사 수집 작업 단위
// 실제 구현은 crawlers.PublisherDriver이며, 테스트에서는 가짜 구현을 쓴다
type PublisherRunner interface {
	Publisher() models.Publisher
	Run(ctx context.Context) ([]models.ArticleRecord, error)
	Close() error
}

// Orchestrator 신문사 병렬 수집 조정자
// 신문사마다 고루틴을 띄우되 동시 세션 수는 세마포어로 제한하고,
// 전체 실행에는 단일 시간 한도를 건다
type Orchestrator struct {
	crawlCfg models.CrawlConfig
	runners  []PublisherRunner

	// 동시 세션 상한 산정 (MaxSessions가 0일 때 사용, nil이면 전부 동시 실행)
	maxSessionsFn func() int

	// 진행 표시줄 사용 여부 (주기 실행에서는 끈다)
	ShowProgress bool
}

// NewOrchestrator 조정자 생성
func NewOrchestrator(crawlCfg models.CrawlConfig, runners []PublisherRunner, maxSessionsFn func() int) *Orchestrator {
	return &Orchestrator{
		crawlCfg:      crawlCfg,
		runners:       runners,
		maxSessionsFn: maxSessionsFn,
	}
}

// sessionLimit 동시 실행 세션 수 결정
func (o *Orchestrator) sessionLimit() int {
	limit := o.crawlCfg.MaxSessions
	if limit == 0 && o.maxSessionsFn != nil {
		limit = o.maxSessionsFn()
	}
	if limit < 1 || limit > len(o.runners) {
		limit = len(o.runners)
	}
	return limit
}

// Run 전체 신문사를 병렬 수집하고 실행 요약을 반환
// 신문사 하나의 실패(오류/panic/시간 초과)는 다른 신문사에 영향을 주지 않으며,
// 결과는 신문사 순서 그대로 고정 슬롯에 담긴다
func (o *Orchestrator) Run(ctx context.Context) *models.CrawlSummary {
	startedAt := time.Now()
	runID := models.NewID()

	runCtx, cancel := context.WithTimeout(ctx, o.crawlCfg.GlobalCeiling())
	defer cancel()

	limit := o.sessionLimit()
	utils.Infof("🚀 수집 실행 시작 (ID: %s, 신문사 %d곳, 동시 세션 %d, 한도 %.0f분)",
		runID, len(o.runners), limit, o.crawlCfg.GlobalCeiling().Minutes())

	var bar interface{ Add(int) error }
	if o.ShowProgress {
		bar = utils.NewProgressBar(len(o.runners), "신문사 수집")
	}

	outcomes := make([]models.CrawlOutcome, len(o.runners))
	semaphore := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, runner := range o.runners {
		wg.Add(1)
		go func(slot int, r PublisherRunner) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-runCtx.Done():
				outcomes[slot] = models.CrawlOutcome{
					Publisher: r.Publisher(),
					Err:       runCtx.Err(),
					ErrorMsg:  "전체 작업 한도 초과로 시작하지 못함",
				}
				return
			}

			outcomes[slot] = o.runOne(runCtx, r)
			if bar != nil {
				_ = bar.Add(1)
			}
		}(i, runner)
	}
	wg.Wait()

	finishedAt := time.Now()
	summary := &models.CrawlSummary{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Elapsed:    finishedAt.Sub(startedAt).Seconds(),
		TotalCount: len(o.runners),
		Outcomes:   outcomes,
	}
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			summary.SuccessCount++
		} else {
			summary.FailedCount++
		}
		summary.TotalArticles += len(outcome.Articles)
	}

	utils.Infof("수집 실행 종료: 성공 %d/%d, 기사 %d건, 소요 %.1f초",
		summary.SuccessCount, summary.TotalCount, summary.TotalArticles, summary.Elapsed)
	return summary
}

// runOne 신문사 하나를 실행하고 결과를 회수
// panic은 해당 신문사의 실패로만 기록한다
func (o *Orchestrator) runOne(ctx context.Context, runner PublisherRunner) (outcome models.CrawlOutcome) {
	started := time.Now()
	outcome.Publisher = runner.Publisher()

	defer func() {
		outcome.Elapsed = time.Since(started).Seconds()
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("수집 중 panic: %v", r)
			outcome.ErrorMsg = outcome.Err.Error()
			utils.Errorf("[%s] 수집 panic: %v", outcome.Publisher.Name(), r)
		}
		if closeErr := runner.Close(); closeErr != nil {
			utils.Warnf("[%s] 세션 종료 실패: %v", outcome.Publisher.Name(), closeErr)
		}
	}()

	articles, err := runner.Run(ctx)
	// 중단되더라도 그때까지 수집한 기사는 보존한다
	outcome.Articles = articles
	if err != nil {
		outcome.Err = err
		outcome.ErrorMsg = err.Error()
		utils.Errorf("[%s] 수집 실패: %v (수집분 %d건 보존)", outcome.Publisher.Name(), err, len(articles))
	}
	return outcome
}
