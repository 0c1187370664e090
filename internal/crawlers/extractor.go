package crawlers

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/polinsight/newscrawler/internal/config"
	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

// DocumentFetcher 문서 획득기
// 정적(StaticFetcher)과 렌더링(RenderedSession) 수집기가 공통으로 구현한다
type DocumentFetcher interface {
	// Fetch URL의 문서를 가져와 파싱
	// waitSelector는 렌더링 수집기에서 핵심 요소 대기에 쓰인다
	Fetch(ctx context.Context, pageURL string, waitSelector string) (*goquery.Document, error)

	// Close 세션 자원 해제
	Close() error
}

// NewFetcher 수집 방식에 맞는 문서 획득기 생성
func NewFetcher(mode config.FetchMode, cfg models.CrawlConfig) (DocumentFetcher, error) {
	switch mode {
	case config.FetchStatic:
		return NewStaticFetcher(cfg), nil
	case config.FetchRendered:
		return NewRenderedSession(cfg), nil
	default:
		return nil, fmt.Errorf("알 수 없는 수집 방식: %s", mode)
	}
}

// ArticleExtractor 기사 문서에서 제목/작성일자/본문을 추출
// 제목이 기사로 인정되지 않으면 세 값 모두 빈 문자열을 반환한다
type ArticleExtractor interface {
	Extract(doc *goquery.Document) (title, dateStr, body string)
}

// NewExtractor 신문사별 추출기 생성
func NewExtractor(cfg *config.PublisherConfig) (ArticleExtractor, error) {
	switch cfg.ID {
	case models.PublisherHankyung:
		return &hankyungExtractor{cfg: cfg}, nil
	case models.PublisherSegye:
		return &segyeExtractor{cfg: cfg}, nil
	case models.PublisherChosun:
		return &chosunExtractor{cfg: cfg}, nil
	case models.PublisherJoongang:
		return &joongangExtractor{cfg: cfg}, nil
	case models.PublisherMunhwa:
		return &munhwaExtractor{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("추출기가 없는 신문사: %s", cfg.ID)
	}
}

// extractTitle 제목 선택자에서 기사 제목 추출
// 비기사 제목이면 빈 문자열을 반환한다
func extractTitle(doc *goquery.Document, selector string, publisherName string) (string, bool) {
	title := trimText(doc.Find(selector).First().Text())
	if title == "" {
		return "", false
	}
	if !ValidTitle(title) {
		utils.Debugf("[%s] 비기사 제목 제외: %s", publisherName, title)
		return "", false
	}
	return title, true
}
