package core

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/polinsight/newscrawler/internal/utils"
)

// Scheduler 주기 실행 관리자
// cron 표현식(분 시 일 월 요일)에 따라 수집 작업을 반복 실행한다
// 이전 실행이 끝나지 않았으면 해당 회차는 건너뛴다
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	job     func(ctx context.Context)
	ctx     context.Context
	running atomic.Bool
}

// NewScheduler 스케줄러 생성
// spec이 비어있으면 매시 정각("0 * * * *")으로 동작한다
func NewScheduler(ctx context.Context, spec string, job func(ctx context.Context)) (*Scheduler, error) {
	if spec == "" {
		spec = "0 * * * *"
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("cron 표현식이 올바르지 않습니다 (%q): %w", spec, err)
	}

	s := &Scheduler{
		cron: cron.New(),
		spec: spec,
		job:  job,
		ctx:  ctx,
	}

	if _, err := s.cron.AddFunc(spec, s.trigger); err != nil {
		return nil, fmt.Errorf("주기 작업 등록 실패: %w", err)
	}

	nextRun := schedule.Next(time.Now())
	utils.Infof("⏰ 주기 실행 등록: %q (다음 실행: %s)", spec, nextRun.Format("2006-01-02 15:04:05"))
	return s, nil
}

// trigger 정각 도래 시 수집 작업 실행
func (s *Scheduler) trigger() {
	if s.ctx.Err() != nil {
		return
	}
	// 직전 회차가 아직 실행 중이면 이번 회차는 건너뛴다
	if !s.running.CompareAndSwap(false, true) {
		utils.Warnf("이전 수집이 아직 진행 중이라 이번 회차를 건너뜁니다 (spec: %s)", s.spec)
		return
	}
	defer s.running.Store(false)

	utils.Infof("주기 수집 시작 (%s)", time.Now().Format("2006-01-02 15:04:05"))
	s.job(s.ctx)
}

// Start 스케줄러 기동 (비동기, 고루틴에서 동작)
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 스케줄러 중단
// 실행 중인 작업이 끝날 때까지 기다린 뒤 반환한다
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	utils.Info("주기 실행 중단")
}
