package crawlers

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/polinsight/newscrawler/internal/utils"
)

// 오류 타입 정의
var (
	ErrBrowserCrashed    = errors.New("브라우저 세션 이상 종료")
	ErrMaxRetriesReached = errors.New("최대 재시도 횟수 도달")
)

// NavError 페이지 로드 실패
// 상태 코드가 있으면 재시도 대기 시간 산정에 사용된다
type NavError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *NavError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("페이지 로드 실패 [%s]: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("페이지 로드 실패 [%s]: %v", e.URL, e.Cause)
}

func (e *NavError) Unwrap() error {
	return e.Cause
}

// statusOf 오류에서 HTTP 상태 코드 추출 (없으면 0)
func statusOf(err error) int {
	var navErr *NavError
	if errors.As(err, &navErr) {
		return navErr.StatusCode
	}
	return 0
}

// RetryPolicy 페이지 로드 재시도 정책
// 일반 실패는 지수 백오프, 429는 더 긴 선형 대기를 적용한다
type RetryPolicy struct {
	MaxAttempts int           // 최대 시도 횟수 (기본 5)
	BaseDelay   time.Duration // 지수 백오프 기준값 (기본 3초)

	// 테스트에서 대기를 건너뛰기 위한 주입 지점
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryPolicy 재시도 정책 생성
func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 3 * time.Second
	}
	return &RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Delay 다음 시도까지의 대기 시간 산출
// 429: 15초 + 5초×시도번호 + 0~5초 랜덤 (요청 차단 해제 대기)
// 그 외: 기준값 × 2^시도번호 + 0~1초 랜덤
func (p *RetryPolicy) Delay(attempt int, statusCode int) time.Duration {
	if statusCode == http.StatusTooManyRequests {
		base := 15*time.Second + time.Duration(attempt)*5*time.Second
		jitter := time.Duration(rand.Float64() * 5 * float64(time.Second))
		return base + jitter
	}
	base := p.BaseDelay * time.Duration(1<<uint(attempt))
	jitter := time.Duration(rand.Float64() * float64(time.Second))
	return base + jitter
}

// Do 작업을 최대 MaxAttempts회 시도
// fn의 attempt 인자는 0부터 시작하며 User-Agent 교체 등에 쓰인다
// 모든 시도가 실패하면 마지막 오류를 ErrMaxRetriesReached로 감싸 반환한다
// 마지막 오류도 연쇄에 남겨 세션 치명 오류(ErrBrowserCrashed) 판별이 가능하다
func (p *RetryPolicy) Do(ctx context.Context, desc string, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == p.MaxAttempts-1 {
			break
		}

		status := statusOf(err)
		delay := p.Delay(attempt, status)
		if status == http.StatusTooManyRequests {
			utils.Warnf("요청 차단(429) [%s]: %.0f초 대기 후 재시도 (%d/%d)",
				desc, delay.Seconds(), attempt+2, p.MaxAttempts)
		} else {
			utils.Warnf("로드 실패 [%s]: %v, %.0f초 대기 후 재시도 (%d/%d)",
				desc, err, delay.Seconds(), attempt+2, p.MaxAttempts)
		}

		if err := p.sleep(ctx, delay); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w [%s]: %w", ErrMaxRetriesReached, desc, lastErr)
}
