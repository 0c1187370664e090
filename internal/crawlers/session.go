package crawlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

// RenderedSession 브라우저 렌더링 수집기
// 드라이버 하나가 전용 세션을 갖고, 탭을 페이지 단위로 열고 닫는다
// 브라우저 기동은 첫 Fetch 시점까지 미룬다
type RenderedSession struct {
	config  models.CrawlConfig
	retry   *RetryPolicy
	browser *rod.Browser
	cleanup func()
}

// NewRenderedSession 렌더링 세션 생성 (브라우저는 아직 기동하지 않음)
func NewRenderedSession(cfg models.CrawlConfig) *RenderedSession {
	return &RenderedSession{
		config: cfg,
		retry:  NewRetryPolicy(cfg.MaxNavRetries, 3*time.Second),
	}
}

// ensureBrowser 브라우저가 없으면 기동 (최대 MaxLaunchRetries회)
func (s *RenderedSession) ensureBrowser() error {
	if s.browser != nil {
		return nil
	}

	var lastErr error
	for attempt := 0; attempt < s.config.MaxLaunchRetries; attempt++ {
		l := launcher.New().
			Headless(s.config.Headless).
			Set("disable-blink-features", "AutomationControlled").
			Set("lang", "ko-KR")

		controlURL, err := l.Launch()
		if err != nil {
			lastErr = err
			utils.Warnf("브라우저 기동 실패(%d/%d): %v", attempt+1, s.config.MaxLaunchRetries, err)
			time.Sleep(2 * time.Second)
			continue
		}

		browser := rod.New().ControlURL(controlURL)
		if err := browser.Connect(); err != nil {
			lastErr = err
			l.Cleanup()
			utils.Warnf("브라우저 연결 실패(%d/%d): %v", attempt+1, s.config.MaxLaunchRetries, err)
			time.Sleep(2 * time.Second)
			continue
		}

		s.browser = browser
		s.cleanup = l.Cleanup
		utils.Debugf("브라우저 기동 완료: %s", controlURL)
		return nil
	}
	return fmt.Errorf("%w: 기동 실패, 최대 재시도 도달: %v", ErrBrowserCrashed, lastErr)
}

// dropBrowser 이상 종료된 브라우저를 버리고 다음 시도에서 재기동하게 한다
func (s *RenderedSession) dropBrowser() {
	if s.browser == nil {
		return
	}
	func() {
		defer func() { recover() }()
		s.browser.MustClose()
	}()
	if s.cleanup != nil {
		s.cleanup()
	}
	s.browser = nil
	s.cleanup = nil
}

// Fetch URL을 렌더링해 문서로 파싱
// waitSelector가 있으면 해당 요소가 나타날 때까지 기다린다 (시간 초과 시 진행)
func (s *RenderedSession) Fetch(ctx context.Context, pageURL string, waitSelector string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := s.retry.Do(ctx, pageURL, func(attempt int) error {
		if err := s.ensureBrowser(); err != nil {
			return err
		}

		fetchErr := s.fetchOnce(ctx, pageURL, waitSelector, attempt, &doc)
		if errors.Is(fetchErr, ErrBrowserCrashed) {
			s.dropBrowser()
		}
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// fetchOnce 탭 하나에서 1회 로드 시도
// panic은 ErrBrowserCrashed로 변환해 재시도 루프가 브라우저를 재기동하게 한다
func (s *RenderedSession) fetchOnce(ctx context.Context, pageURL string, waitSelector string, attempt int, doc **goquery.Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			utils.Errorf("브라우저 작업 panic [%s]: %v", pageURL, r)
			err = ErrBrowserCrashed
		}
	}()

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("%w: 탭 생성 실패: %v", ErrBrowserCrashed, err)
	}
	defer func() {
		closeErr := page.Close()
		if closeErr != nil {
			utils.Debugf("탭 종료 실패 [%s]: %v", pageURL, closeErr)
		}
	}()

	page = page.Context(ctx)

	// 재시도마다 User-Agent 교체
	if err := (proto.NetworkSetUserAgentOverride{
		UserAgent:      UserAgentFor(attempt),
		AcceptLanguage: "ko-KR,ko;q=0.9,en-US;q=0.8",
	}).Call(page); err != nil {
		utils.Warnf("User-Agent 설정 실패 [%s]: %v", pageURL, err)
	}

	// 본문 응답의 상태 코드 수집
	status := 0
	navPage := page.Timeout(time.Duration(s.config.NavTimeout) * time.Second)
	waitResponse := navPage.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument && e.Response != nil {
			status = e.Response.Status
			return true
		}
		return false
	})

	if err := navPage.Navigate(pageURL); err != nil {
		return &NavError{URL: pageURL, Cause: err}
	}
	waitResponse()

	if status >= 400 {
		return &NavError{URL: pageURL, StatusCode: status}
	}

	// 네트워크 유휴 대기 (시간 초과는 무시하고 진행)
	idlePage := page.Timeout(time.Duration(s.config.IdleTimeout) * time.Second)
	func() {
		defer func() {
			if r := recover(); r != nil {
				utils.Debugf("네트워크 유휴 대기 시간 초과 [%s], 그대로 진행", pageURL)
			}
		}()
		idlePage.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)()
	}()

	// 핵심 요소 대기 (시간 초과는 무시하고 진행)
	if waitSelector != "" {
		selPage := page.Timeout(time.Duration(s.config.SelectorTimeout) * time.Second)
		if _, selErr := selPage.Element(waitSelector); selErr != nil {
			utils.Debugf("요소 대기 시간 초과 [%s] (선택자: %s), 그대로 진행", pageURL, waitSelector)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return fmt.Errorf("%w: 렌더링 결과 획득 실패: %v", ErrBrowserCrashed, err)
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("렌더링 문서 파싱 실패 [%s]: %w", pageURL, err)
	}
	*doc = parsed
	return nil
}

// Close 브라우저 세션 종료
func (s *RenderedSession) Close() error {
	if s.browser == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			utils.Warnf("브라우저 종료 중 panic: %v", r)
		}
	}()
	err := s.browser.Close()
	if s.cleanup != nil {
		s.cleanup()
	}
	s.browser = nil
	s.cleanup = nil
	utils.Debug("브라우저 세션 종료")
	return err
}
