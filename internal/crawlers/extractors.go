package crawlers

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/polinsight/newscrawler/internal/config"
)

// 신문사별 작성일자 표기에서 시각 부분만 떼어내는 패턴
var (
	segyeDatePattern  = regexp.MustCompile(`입력\s*:\s*(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})`)
	chosunDatePattern = regexp.MustCompile(`업데이트\s*(\d{4}.\d{2}.\d{2}.\s+\d{2}:\d{2})`)
	munhwaDatePattern = regexp.MustCompile(`입력\s*(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2})`)
)

func trimText(s string) string {
	return strings.TrimSpace(s)
}

// joinParagraphs 선택된 문단들의 텍스트를 개행으로 연결
func joinParagraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, p *goquery.Selection) {
		if text := trimText(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

// hankyungExtractor 한국경제
// 본문은 div#articletxt의 직접 텍스트 노드만 모은다 (광고/캡션 태그 제외)
type hankyungExtractor struct {
	cfg *config.PublisherConfig
}

func (e *hankyungExtractor) Extract(doc *goquery.Document) (string, string, string) {
	title, ok := extractTitle(doc, e.cfg.TitleSelector, e.cfg.Name)
	if !ok {
		return "", "", ""
	}

	dateStr := trimText(doc.Find(e.cfg.DateSelector).First().Text())

	var parts []string
	doc.Find(e.cfg.BodySelector).First().Find("div#articletxt").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			for child := node.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.TextNode {
					if text := trimText(child.Data); text != "" {
						parts = append(parts, text)
					}
				}
			}
		}
	})
	body := strings.Join(parts, "\n")

	return title, dateStr, body
}

// segyeExtractor 세계일보
// 작성일자는 "입력 : YYYY-MM-DD HH:MM:SS" 표기에서 추출
// 본문은 article.viewBox2 안의 class 없는 p 태그만 모은다
type segyeExtractor struct {
	cfg *config.PublisherConfig
}

func (e *segyeExtractor) Extract(doc *goquery.Document) (string, string, string) {
	title, ok := extractTitle(doc, e.cfg.TitleSelector, e.cfg.Name)
	if !ok {
		return "", "", ""
	}

	dateStr := ""
	if m := segyeDatePattern.FindStringSubmatch(doc.Find(e.cfg.DateSelector).First().Text()); m != nil {
		dateStr = m[1]
	}

	var parts []string
	doc.Find(e.cfg.BodySelector).First().Find("p").Each(func(_ int, p *goquery.Selection) {
		if _, hasClass := p.Attr("class"); hasClass {
			return
		}
		if text := trimText(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	body := strings.Join(parts, "\n")

	return title, dateStr, body
}

// chosunExtractor 조선일보 (렌더링 수집 전용)
// 작성일자는 "업데이트 YYYY.MM.DD. HH:MM" 표기에서 추출
type chosunExtractor struct {
	cfg *config.PublisherConfig
}

func (e *chosunExtractor) Extract(doc *goquery.Document) (string, string, string) {
	title, ok := extractTitle(doc, e.cfg.TitleSelector, e.cfg.Name)
	if !ok {
		return "", "", ""
	}

	dateStr := ""
	if m := chosunDatePattern.FindStringSubmatch(doc.Find(e.cfg.DateSelector).First().Text()); m != nil {
		dateStr = m[1]
	}

	body := joinParagraphs(doc.Find(e.cfg.BodySelector))

	return title, dateStr, body
}

// joongangExtractor 중앙일보
// 작성일자는 time 태그의 datetime 속성(ISO 표기)을 표준 표기로 변환
type joongangExtractor struct {
	cfg *config.PublisherConfig
}

func (e *joongangExtractor) Extract(doc *goquery.Document) (string, string, string) {
	title, ok := extractTitle(doc, e.cfg.TitleSelector, e.cfg.Name)
	if !ok {
		return "", "", ""
	}

	dateStr := ""
	if iso, exists := doc.Find(e.cfg.DateSelector).First().Attr("datetime"); exists {
		if t, err := time.Parse(time.RFC3339, iso); err == nil {
			dateStr = t.Format("2006-01-02 15:04:05")
		}
	}

	body := joinParagraphs(doc.Find(e.cfg.BodySelector))

	return title, dateStr, body
}

// munhwaExtractor 문화일보
// 작성일자는 "입력 YYYY-MM-DD HH:MM" 표기에서 추출
type munhwaExtractor struct {
	cfg *config.PublisherConfig
}

func (e *munhwaExtractor) Extract(doc *goquery.Document) (string, string, string) {
	title, ok := extractTitle(doc, e.cfg.TitleSelector, e.cfg.Name)
	if !ok {
		return "", "", ""
	}

	dateStr := ""
	if m := munhwaDatePattern.FindStringSubmatch(doc.Find(e.cfg.DateSelector).First().Text()); m != nil {
		dateStr = m[1]
	}

	body := joinParagraphs(doc.Find(e.cfg.BodySelector))

	return title, dateStr, body
}
