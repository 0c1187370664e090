package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/viper"

	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/utils"
)

const (
	// DefaultConfigFile 기본 설정 파일 경로
	DefaultConfigFile = "configs/publishers.yaml"

	// MaxConfigFileSize 설정 파일 최대 크기 (1MB)
	MaxConfigFileSize = 1 * 1024 * 1024
)

//go:embed publishers_template.yaml
var defaultPublisherTemplate string

// FetchMode 기사 문서를 가져오는 방식
type FetchMode string

const (
	FetchStatic   FetchMode = "static"   // HTTP 요청 + HTML 파싱
	FetchRendered FetchMode = "rendered" // 브라우저 렌더링 후 파싱
)

// SubcategoryConfig 하위 카테고리 한 항목
type SubcategoryConfig struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

// CategoryConfig 카테고리와 하위 카테고리 목록
// 순서가 곧 순회 순서이므로 맵이 아닌 슬라이스로 둔다
type CategoryConfig struct {
	Name string              `mapstructure:"name"`
	Path string              `mapstructure:"path"`
	Subs []SubcategoryConfig `mapstructure:"subs"`
}

// PublisherConfig 신문사 한 곳의 수집 설정
type PublisherConfig struct {
	ID            models.Publisher `mapstructure:"id"`
	Name          string           `mapstructure:"name"`
	Domain        string           `mapstructure:"domain"`
	Enabled       bool             `mapstructure:"enabled"`
	FetchMode     FetchMode        `mapstructure:"fetch_mode"`
	ItemsPerPage  int              `mapstructure:"items_per_page"`
	PageStart     int              `mapstructure:"page_start"` // 목록 페이지 번호 시작값 (세계일보는 0)
	ListSelector  string           `mapstructure:"list_selector"`
	TitleSelector string           `mapstructure:"title_selector"`
	DateSelector  string           `mapstructure:"date_selector"`
	BodySelector  string           `mapstructure:"body_selector"`
	Categories    []CategoryConfig `mapstructure:"categories"`
}

// ListPageURL 목록 페이지 URL 구성
// 형식: {domain}{category.path}{sub.path}?page={pageNo}
func (p *PublisherConfig) ListPageURL(category CategoryConfig, sub SubcategoryConfig, pageNo int) string {
	return fmt.Sprintf("%s%s%s?page=%d", p.Domain, category.Path, sub.Path, pageNo)
}

// Validate 신문사 설정 검증
func (p *PublisherConfig) Validate() error {
	if !p.ID.Valid() {
		return fmt.Errorf("등록되지 않은 신문사 식별자: %s", p.ID)
	}
	if err := models.ValidateURL(p.Domain); err != nil {
		return fmt.Errorf("%s: 도메인이 올바르지 않습니다: %w", p.Name, err)
	}
	if p.FetchMode != FetchStatic && p.FetchMode != FetchRendered {
		return fmt.Errorf("%s: fetch_mode는 static 또는 rendered여야 합니다: %s", p.Name, p.FetchMode)
	}
	if p.ItemsPerPage < 1 {
		return fmt.Errorf("%s: items_per_page는 1 이상이어야 합니다", p.Name)
	}
	if p.PageStart < 0 {
		return fmt.Errorf("%s: page_start는 0 이상이어야 합니다", p.Name)
	}
	if p.ListSelector == "" || p.TitleSelector == "" || p.DateSelector == "" || p.BodySelector == "" {
		return fmt.Errorf("%s: 목록/제목/작성일자/본문 선택자는 모두 필요합니다", p.Name)
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("%s: 카테고리가 하나 이상 필요합니다", p.Name)
	}
	for _, cat := range p.Categories {
		if cat.Name == "" {
			return fmt.Errorf("%s: 이름 없는 카테고리가 있습니다", p.Name)
		}
		if len(cat.Subs) == 0 {
			return fmt.Errorf("%s: 카테고리 [%s]에 하위 카테고리가 없습니다", p.Name, cat.Name)
		}
		for _, sub := range cat.Subs {
			if sub.Name == "" || sub.Path == "" {
				return fmt.Errorf("%s: 카테고리 [%s]에 불완전한 하위 카테고리가 있습니다", p.Name, cat.Name)
			}
		}
	}
	return nil
}

// PublisherSet 전체 신문사 설정
type PublisherSet struct {
	Publishers []PublisherConfig `mapstructure:"publishers"`
}

// Get 식별자로 신문사 설정 조회
func (s *PublisherSet) Get(id models.Publisher) (*PublisherConfig, bool) {
	for i := range s.Publishers {
		if s.Publishers[i].ID == id {
			return &s.Publishers[i], true
		}
	}
	return nil, false
}

// Enabled 활성화된 신문사만 설정 순서 그대로 반환
func (s *PublisherSet) Enabled() []PublisherConfig {
	enabled := make([]PublisherConfig, 0, len(s.Publishers))
	for _, p := range s.Publishers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// Validate 전체 설정 검증 (중복 식별자 포함)
func (s *PublisherSet) Validate() error {
	if len(s.Publishers) == 0 {
		return fmt.Errorf("신문사 설정이 비어 있습니다")
	}
	seen := make(map[models.Publisher]bool, len(s.Publishers))
	for i := range s.Publishers {
		p := &s.Publishers[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("신문사 식별자가 중복되었습니다: %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// ConfigError 설정 파일 처리 오류
type ConfigError struct {
	FilePath string
	Cause    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("설정 파일 오류 [%s]: %v", e.FilePath, e.Cause)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// PublisherConfigLoader 신문사 설정 파일 로더
// 파일 존재 확인, 크기 검증, YAML 해석을 담당한다
type PublisherConfigLoader struct {
	configPath string
}

// NewPublisherConfigLoader 설정 파일 로더 생성
func NewPublisherConfigLoader(configPath string) *PublisherConfigLoader {
	if configPath == "" {
		configPath = DefaultConfigFile
	}
	return &PublisherConfigLoader{
		configPath: configPath,
	}
}

// EnsureConfigExists 설정 파일이 없으면 내장 템플릿으로 생성
func (l *PublisherConfigLoader) EnsureConfigExists() error {
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		dir := filepath.Dir(l.configPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("설정 디렉터리를 생성할 수 없습니다 [%s]: %w", dir, err)
		}

		if err := os.WriteFile(l.configPath, []byte(defaultPublisherTemplate), 0644); err != nil {
			return fmt.Errorf("설정 파일을 생성할 수 없습니다 [%s]: %w", l.configPath, err)
		}
		utils.Infof("기본 신문사 설정 파일 생성: %s", l.configPath)
	}
	return nil
}

// ValidateFileSize 설정 파일 크기가 한도 내인지 검증
func (l *PublisherConfigLoader) ValidateFileSize() error {
	info, err := os.Stat(l.configPath)
	if err != nil {
		return fmt.Errorf("설정 파일 정보를 읽을 수 없습니다 [%s]: %w", l.configPath, err)
	}

	if info.Size() > MaxConfigFileSize {
		return &ConfigError{
			FilePath: l.configPath,
			Cause: fmt.Errorf("설정 파일이 너무 큽니다: %d 바이트 (최대 %d 바이트)",
				info.Size(), MaxConfigFileSize),
		}
	}

	return nil
}

// LoadConfig 설정 파일을 읽어 PublisherSet으로 해석
// 처리 순서:
//  1. 설정 파일 존재 확인 (없으면 템플릿 자동 생성)
//  2. 파일 크기 검증
//  3. Viper로 YAML 해석
//  4. 구조체 바인딩
//  5. 설정 내용 검증
func (l *PublisherConfigLoader) LoadConfig() (*PublisherSet, error) {
	if err := l.EnsureConfigExists(); err != nil {
		return nil, err
	}

	if err := l.ValidateFileSize(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(l.configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// 파일 잠금은 일시적 상태이므로 명확한 오류 메시지만 남긴다
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, &ConfigError{
				FilePath: l.configPath,
				Cause:    fmt.Errorf("설정 파일이 다른 프로세스에 의해 잠겨 있습니다: %w", err),
			}
		}

		return nil, &ConfigError{
			FilePath: l.configPath,
			Cause:    err,
		}
	}

	var set PublisherSet
	if err := v.Unmarshal(&set); err != nil {
		return nil, &ConfigError{
			FilePath: l.configPath,
			Cause:    fmt.Errorf("설정 바인딩 실패: %w", err),
		}
	}

	if err := set.Validate(); err != nil {
		return nil, &ConfigError{
			FilePath: l.configPath,
			Cause:    err,
		}
	}

	return &set, nil
}
