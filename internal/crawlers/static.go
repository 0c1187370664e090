package crawlers

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"

	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

// StaticFetcher HTTP 요청으로 문서를 받아 파싱하는 수집기
// 드라이버 하나가 전용으로 사용하므로 동시 요청은 없다
type StaticFetcher struct {
	collector *colly.Collector
	config    models.CrawlConfig
	retry     *RetryPolicy

	// 직전 요청의 응답 (순차 사용 전제)
	attempt      int
	lastBody     []byte
	lastEncoding string
	lastStatus   int
	lastErr      error
}

// NewStaticFetcher 정적 수집기 생성
func NewStaticFetcher(cfg models.CrawlConfig) *StaticFetcher {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(time.Duration(cfg.FetchTimeout) * time.Second)

	f := &StaticFetcher{
		collector: c,
		config:    cfg,
		retry:     NewRetryPolicy(cfg.MaxNavRetries, 3*time.Second),
	}

	c.OnRequest(func(r *colly.Request) {
		for name, value := range DefaultHeaders() {
			r.Headers.Set(name, value)
		}
		r.Headers.Set("User-Agent", UserAgentFor(f.attempt))
	})

	c.OnResponse(func(r *colly.Response) {
		f.lastBody = r.Body
		f.lastEncoding = r.Headers.Get("Content-Encoding")
		f.lastStatus = r.StatusCode
		f.lastErr = nil
	})

	c.OnError(func(r *colly.Response, err error) {
		f.lastStatus = r.StatusCode
		f.lastErr = err
	})

	return f
}

// Fetch URL의 문서를 가져와 파싱
// waitSelector는 렌더링 수집기용 인자로, 정적 수집에서는 쓰지 않는다
func (f *StaticFetcher) Fetch(ctx context.Context, pageURL string, waitSelector string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := f.retry.Do(ctx, pageURL, func(attempt int) error {
		f.attempt = attempt
		f.lastBody = nil
		f.lastErr = nil
		f.lastStatus = 0

		if err := f.collector.Visit(pageURL); err != nil {
			return &NavError{URL: pageURL, StatusCode: f.lastStatus, Cause: err}
		}
		f.collector.Wait()

		if f.lastErr != nil {
			return &NavError{URL: pageURL, StatusCode: f.lastStatus, Cause: f.lastErr}
		}
		if f.lastStatus >= 400 {
			return &NavError{URL: pageURL, StatusCode: f.lastStatus}
		}

		body, err := decompressResponse(f.lastEncoding, f.lastBody)
		if err != nil {
			return fmt.Errorf("응답 해제 실패 [%s]: %w", pageURL, err)
		}

		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("문서 파싱 실패 [%s]: %w", pageURL, err)
		}
		doc = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Debugf("문서 수신: %s (%d 바이트)", pageURL, len(f.lastBody))
	return doc, nil
}

// Close 정적 수집기는 해제할 자원이 없다
func (f *StaticFetcher) Close() error {
	return nil
}

// decompressResponse Content-Encoding에 따라 응답 본문 해제
// gzip, deflate, br(Brotli)을 지원한다
func decompressResponse(contentEncoding string, body []byte) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip 해제 실패: %w", err)
		}
		defer reader.Close()

		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip 읽기 실패: %w", err)
		}
		return decompressed, nil

	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()

		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("deflate 읽기 실패: %w", err)
		}
		return decompressed, nil

	case "br":
		reader := brotli.NewReader(bytes.NewReader(body))
		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("brotli 읽기 실패: %w", err)
		}
		return decompressed, nil

	case "":
		return body, nil

	default:
		utils.Warnf("알 수 없는 Content-Encoding: %s", contentEncoding)
		return body, nil
	}
}
