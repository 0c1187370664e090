package crawlers

// userAgentPool 재시도마다 순환 사용하는 브라우저 식별 문자열
// 첫 시도는 기본값, 이후 재시도에서 다음 항목으로 교체한다
var userAgentPool = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// UserAgentFor 시도 횟수에 해당하는 User-Agent 반환
func UserAgentFor(attempt int) string {
	if attempt < 0 {
		attempt = 0
	}
	return userAgentPool[attempt%len(userAgentPool)]
}

// DefaultHeaders 뉴스 사이트 요청에 쓰는 기본 헤더
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		"Accept-Encoding": "gzip, deflate, br",
		"Cache-Control":   "no-cache",
	}
}
