package crawlers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/polinsight/newscrawler/internal/config"
	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

// PublisherDriver 신문사 한 곳의 수집 드라이버
// 카테고리 → 하위 카테고리 → 페이지 → 기사 순으로 순회하며
// 당일 기사가 끊기는 지점에서 해당 하위 카테고리의 수집을 멈춘다
type PublisherDriver struct {
	cfg       *config.PublisherConfig
	crawlCfg  models.CrawlConfig
	fetcher   DocumentFetcher
	extractor ArticleExtractor

	// 당일 판정 기준 시각 (테스트 주입용)
	now func() time.Time

	// 요청 간 대기 (테스트 주입용)
	sleep func(ctx context.Context, minSec, maxSec float64) error

	// 기사 1건 수집 시마다 호출 (진행 표시용, nil 허용)
	OnArticle func(record models.ArticleRecord)
}

// NewPublisherDriver 드라이버 생성
// 수집 방식(static/rendered)에 맞는 문서 획득기와 신문사 추출기를 연결한다
func NewPublisherDriver(cfg *config.PublisherConfig, crawlCfg models.CrawlConfig) (*PublisherDriver, error) {
	fetcher, err := NewFetcher(cfg.FetchMode, crawlCfg)
	if err != nil {
		return nil, err
	}
	extractor, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	return &PublisherDriver{
		cfg:       cfg,
		crawlCfg:  crawlCfg,
		fetcher:   fetcher,
		extractor: extractor,
		now:       time.Now,
		sleep:     utils.SleepRandom,
	}, nil
}

// Publisher 담당 신문사 식별자
func (d *PublisherDriver) Publisher() models.Publisher {
	return d.cfg.ID
}

// Close 수집 세션 종료
func (d *PublisherDriver) Close() error {
	return d.fetcher.Close()
}

// Run 신문사 전체 카테고리를 순회하며 당일 기사 수집
// 치명 오류로 중단되어도 그때까지 수집한 기사는 함께 반환한다
func (d *PublisherDriver) Run(ctx context.Context) ([]models.ArticleRecord, error) {
	utils.Infof("📰 [%s] 수집 시작 (방식: %s, 카테고리 %d개)",
		d.cfg.Name, d.cfg.FetchMode, len(d.cfg.Categories))

	articles := make([]models.ArticleRecord, 0, 64)

	for ci, category := range d.cfg.Categories {
		if ci > 0 {
			if err := d.sleep(ctx, d.crawlCfg.CategoryDelayMin, d.crawlCfg.CategoryDelayMax); err != nil {
				return articles, err
			}
		}
		utils.Infof("[%s] 카테고리 [%s] 수집", d.cfg.Name, category.Name)

		for si, sub := range category.Subs {
			if si > 0 {
				if err := d.sleep(ctx, d.crawlCfg.SubDelayMin, d.crawlCfg.SubDelayMax); err != nil {
					return articles, err
				}
			}

			collected, err := d.crawlSubcategory(ctx, category, sub, &articles)
			if err != nil {
				return articles, err
			}
			utils.Infof("[%s] %s > %s: %d건", d.cfg.Name, category.Name, sub.Name, collected)
		}
	}

	utils.Infof("✅ [%s] 수집 완료: 총 %d건", d.cfg.Name, len(articles))
	return articles, nil
}

// crawlSubcategory 하위 카테고리 하나를 페이지 순으로 수집
// 당일이 아닌 기사를 만나면 그 지점에서 멈추고 다음 페이지로 넘어가지 않는다
func (d *PublisherDriver) crawlSubcategory(
	ctx context.Context,
	category config.CategoryConfig,
	sub config.SubcategoryConfig,
	articles *[]models.ArticleRecord,
) (int, error) {
	collected := 0
	pageNo := d.cfg.PageStart

	for {
		if pageNo > d.cfg.PageStart {
			if err := d.sleep(ctx, d.crawlCfg.PageDelayMin, d.crawlCfg.PageDelayMax); err != nil {
				return collected, err
			}
		}

		pageURL := d.cfg.ListPageURL(category, sub, pageNo)
		listingDoc, err := d.fetcher.Fetch(ctx, pageURL, d.cfg.ListSelector)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrBrowserCrashed) {
				return collected, fmt.Errorf("목록 페이지 수집 중단 [%s]: %w", pageURL, err)
			}
			// 재시도까지 모두 실패한 목록 페이지는 해당 하위 카테고리만 접고 계속한다
			utils.Warnf("[%s] 목록 페이지 수집 실패, 하위 카테고리 건너뜀 [%s]: %v", d.cfg.Name, pageURL, err)
			return collected, nil
		}

		links := d.listingLinks(listingDoc)
		if len(links) == 0 {
			utils.Debugf("[%s] 목록이 비어 수집 종료: %s", d.cfg.Name, pageURL)
			return collected, nil
		}

		for _, link := range links {
			if err := d.sleep(ctx, d.crawlCfg.ArticleDelayMin, d.crawlCfg.ArticleDelayMax); err != nil {
				return collected, err
			}

			record, today, err := d.crawlArticle(ctx, category.Name, sub.Name, link)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return collected, err
				}
				// 기사 한 건의 실패는 전체를 멈추지 않는다
				utils.Warnf("[%s] 기사 수집 실패, 건너뜀 [%s]: %v", d.cfg.Name, link, err)
				continue
			}
			if record == nil {
				continue
			}
			if !today {
				// 당일 기사 구간 종료: 항목 순회와 페이지 이동 모두 중단
				utils.Debugf("[%s] 당일 기사 구간 종료: %s", d.cfg.Name, link)
				return collected, nil
			}

			*articles = append(*articles, *record)
			collected++
			if d.OnArticle != nil {
				d.OnArticle(*record)
			}
		}

		// 목록이 페이지 정원에 못 미치면 마지막 페이지
		if len(links) < d.cfg.ItemsPerPage {
			return collected, nil
		}
		pageNo++
	}
}

// crawlArticle 기사 한 건 수집
// 반환: (레코드, 당일 여부, 오류) — 필수 필드가 비면 레코드는 nil
// panic은 회수해 해당 기사만 실패 처리한다
func (d *PublisherDriver) crawlArticle(ctx context.Context, categoryName, subName, link string) (record *models.ArticleRecord, today bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("기사 처리 panic: %v", r)
		}
	}()

	doc, err := d.fetcher.Fetch(ctx, link, d.cfg.BodySelector)
	if err != nil {
		return nil, false, err
	}

	title, dateStr, body := d.extractor.Extract(doc)
	if title == "" || dateStr == "" || body == "" {
		utils.Debugf("[%s] 필수 필드 누락으로 건너뜀: %s", d.cfg.Name, link)
		return nil, true, nil
	}

	publishedAt := utils.ParseDateTime(dateStr)
	if !utils.SameDay(publishedAt, d.now()) {
		return nil, false, nil
	}

	return &models.ArticleRecord{
		ID:          uuid.New().String(),
		Title:       title,
		Body:        body,
		Category:    categoryName,
		SubCategory: subName,
		PublishedAt: publishedAt,
		DateString:  dateStr,
		Publisher:   d.cfg.ID,
		SourceURL:   link,
		CollectedAt: d.now(),
	}, true, nil
}

// listingLinks 목록 문서에서 기사 링크를 페이지 정원만큼 추출
// 상대 경로는 신문사 도메인 기준으로 절대 경로로 바꾼다
func (d *PublisherDriver) listingLinks(doc *goquery.Document) []string {
	base, err := url.Parse(d.cfg.Domain)
	if err != nil {
		return nil
	}

	links := make([]string, 0, d.cfg.ItemsPerPage)
	seen := make(map[string]bool)

	doc.Find(d.cfg.ListSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, exists := a.Attr("href")
		if !exists || href == "" {
			return true
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return true
		}
		absolute := base.ResolveReference(parsed).String()
		if seen[absolute] {
			return true
		}
		seen[absolute] = true
		links = append(links, absolute)
		return len(links) < d.cfg.ItemsPerPage
	})

	return links
}
