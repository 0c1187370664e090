package models

import (
	"fmt"
	"time"
)

// CrawlConfig 크롤링 동작 설정
// 재시도/백오프/대기 시간의 기본값은 운영 중인 수치를 그대로 따른다
type CrawlConfig struct {
	Headless         bool `json:"headless" mapstructure:"headless"`                     // 무헤드 브라우저 모드 (기본:true)
	MaxNavRetries    int  `json:"max_nav_retries" mapstructure:"max_nav_retries"`       // 페이지 로드 최대 재시도 (기본:5)
	MaxLaunchRetries int  `json:"max_launch_retries" mapstructure:"max_launch_retries"` // 브라우저 기동 최대 재시도 (기본:3)

	// 타임아웃(초)
	NavTimeout      int `json:"nav_timeout" mapstructure:"nav_timeout"`           // 페이지 네비게이션 (기본:45)
	IdleTimeout     int `json:"idle_timeout" mapstructure:"idle_timeout"`         // 네트워크 유휴 대기 (기본:15)
	SelectorTimeout int `json:"selector_timeout" mapstructure:"selector_timeout"` // 선택자 대기 (기본:10)
	GlobalTimeout   int `json:"global_timeout" mapstructure:"global_timeout"`     // 전체 작업 한도(초) (기본:2700 = 45분)
	FetchTimeout    int `json:"fetch_timeout" mapstructure:"fetch_timeout"`       // 정적 문서 요청 (기본:30)

	// 요청 간 랜덤 대기(초) - 루프가 굵을수록 길게, 주기적 신호가 생기지 않도록 랜덤화
	CategoryDelayMin float64 `json:"category_delay_min" mapstructure:"category_delay_min"` // 기본:3
	CategoryDelayMax float64 `json:"category_delay_max" mapstructure:"category_delay_max"` // 기본:7
	SubDelayMin      float64 `json:"sub_delay_min" mapstructure:"sub_delay_min"`           // 기본:1
	SubDelayMax      float64 `json:"sub_delay_max" mapstructure:"sub_delay_max"`           // 기본:3
	PageDelayMin     float64 `json:"page_delay_min" mapstructure:"page_delay_min"`         // 기본:1
	PageDelayMax     float64 `json:"page_delay_max" mapstructure:"page_delay_max"`         // 기본:2
	ArticleDelayMin  float64 `json:"article_delay_min" mapstructure:"article_delay_min"`   // 기본:3
	ArticleDelayMax  float64 `json:"article_delay_max" mapstructure:"article_delay_max"`   // 기본:7

	// 동시 실행 세션 수 상한 (0이면 리소스 게이트가 산정)
	MaxSessions int `json:"max_sessions" mapstructure:"max_sessions"`
}

// DefaultCrawlConfig 운영 기본값
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		Headless:         true,
		MaxNavRetries:    5,
		MaxLaunchRetries: 3,
		NavTimeout:       45,
		IdleTimeout:      15,
		SelectorTimeout:  10,
		GlobalTimeout:    2700,
		FetchTimeout:     30,
		CategoryDelayMin: 3,
		CategoryDelayMax: 7,
		SubDelayMin:      1,
		SubDelayMax:      3,
		PageDelayMin:     1,
		PageDelayMax:     2,
		ArticleDelayMin:  3,
		ArticleDelayMax:  7,
		MaxSessions:      0,
	}
}

// Validate 설정값 검증
func (c *CrawlConfig) Validate() error {
	if c.MaxNavRetries < 1 || c.MaxNavRetries > 20 {
		return fmt.Errorf("페이지 로드 재시도 횟수는 1-20 사이여야 합니다")
	}
	if c.MaxLaunchRetries < 1 || c.MaxLaunchRetries > 10 {
		return fmt.Errorf("브라우저 기동 재시도 횟수는 1-10 사이여야 합니다")
	}
	if c.NavTimeout < 1 || c.NavTimeout > 300 {
		return fmt.Errorf("네비게이션 타임아웃은 1-300초 사이여야 합니다")
	}
	if c.GlobalTimeout < 60 {
		return fmt.Errorf("전체 작업 한도는 60초 이상이어야 합니다")
	}
	if c.CategoryDelayMin < 0 || c.CategoryDelayMax < c.CategoryDelayMin {
		return fmt.Errorf("카테고리 대기 시간 범위가 올바르지 않습니다")
	}
	if c.SubDelayMin < 0 || c.SubDelayMax < c.SubDelayMin {
		return fmt.Errorf("하위 카테고리 대기 시간 범위가 올바르지 않습니다")
	}
	if c.PageDelayMin < 0 || c.PageDelayMax < c.PageDelayMin {
		return fmt.Errorf("페이지 대기 시간 범위가 올바르지 않습니다")
	}
	if c.ArticleDelayMin < 0 || c.ArticleDelayMax < c.ArticleDelayMin {
		return fmt.Errorf("기사 대기 시간 범위가 올바르지 않습니다")
	}
	if c.MaxSessions < 0 || c.MaxSessions > 32 {
		return fmt.Errorf("동시 세션 수는 0-32 사이여야 합니다")
	}
	return nil
}

// GlobalCeiling 전체 작업 한도를 time.Duration으로 반환
func (c *CrawlConfig) GlobalCeiling() time.Duration {
	return time.Duration(c.GlobalTimeout) * time.Second
}
