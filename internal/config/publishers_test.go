package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/polinsight/newscrawler/internal/models"
)

func loadDefaultSet(t *testing.T) *PublisherSet {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "publishers.yaml")
	loader := NewPublisherConfigLoader(configPath)
	set, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("설정 로드 실패: %v", err)
	}
	return set
}

func TestLoadConfig_GeneratesTemplate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "configs", "publishers.yaml")
	loader := NewPublisherConfigLoader(configPath)

	set, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("설정 로드 실패: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("템플릿 파일이 자동 생성되지 않았습니다: %s", configPath)
	}

	if len(set.Publishers) != 5 {
		t.Errorf("신문사 수 = %d, want 5", len(set.Publishers))
	}
}

func TestLoadConfig_DefaultPublishers(t *testing.T) {
	set := loadDefaultSet(t)

	tests := []struct {
		id        models.Publisher
		name      string
		items     int
		pageStart int
		mode      FetchMode
		enabled   bool
	}{
		{models.PublisherHankyung, "한국경제", 20, 1, FetchStatic, true},
		{models.PublisherSegye, "세계일보", 10, 0, FetchStatic, true},
		{models.PublisherChosun, "조선일보", 20, 1, FetchRendered, false},
		{models.PublisherJoongang, "중앙일보", 24, 1, FetchStatic, true},
		{models.PublisherMunhwa, "문화일보", 12, 1, FetchStatic, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			p, ok := set.Get(tt.id)
			if !ok {
				t.Fatalf("신문사 설정이 없습니다: %s", tt.id)
			}
			if p.Name != tt.name {
				t.Errorf("Name = %s, want %s", p.Name, tt.name)
			}
			if p.ItemsPerPage != tt.items {
				t.Errorf("ItemsPerPage = %d, want %d", p.ItemsPerPage, tt.items)
			}
			if p.PageStart != tt.pageStart {
				t.Errorf("PageStart = %d, want %d", p.PageStart, tt.pageStart)
			}
			if p.FetchMode != tt.mode {
				t.Errorf("FetchMode = %s, want %s", p.FetchMode, tt.mode)
			}
			if p.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", p.Enabled, tt.enabled)
			}
			if len(p.Categories) == 0 {
				t.Error("카테고리가 비어 있습니다")
			}
		})
	}
}

func TestPublisherSet_Enabled(t *testing.T) {
	set := loadDefaultSet(t)

	enabled := set.Enabled()
	if len(enabled) != 4 {
		t.Fatalf("기본 활성 신문사 수 = %d, want 4", len(enabled))
	}
	for _, p := range enabled {
		if p.ID == models.PublisherChosun {
			t.Error("조선일보는 기본 설정에서 비활성이어야 합니다")
		}
	}
	// 설정 순서 보존 확인
	if enabled[0].ID != models.PublisherHankyung || enabled[1].ID != models.PublisherSegye {
		t.Errorf("활성 신문사 순서가 설정 순서와 다릅니다: %v, %v", enabled[0].ID, enabled[1].ID)
	}
}

func TestPublisherConfig_ListPageURL(t *testing.T) {
	set := loadDefaultSet(t)

	hankyung, _ := set.Get(models.PublisherHankyung)
	cat := hankyung.Categories[0]
	sub := cat.Subs[0]
	got := hankyung.ListPageURL(cat, sub, 3)
	want := "https://www.hankyung.com/politics/the-presidential-office?page=3"
	if got != want {
		t.Errorf("ListPageURL = %s, want %s", got, want)
	}

	// 세계일보는 0페이지부터 시작
	segye, _ := set.Get(models.PublisherSegye)
	scat := segye.Categories[0]
	ssub := scat.Subs[0]
	sgot := segye.ListPageURL(scat, ssub, segye.PageStart)
	if !strings.HasSuffix(sgot, "?page=0") {
		t.Errorf("세계일보 첫 페이지 URL은 page=0이어야 합니다: %s", sgot)
	}
	if !strings.HasPrefix(sgot, "https://www.segye.com/newsList/0101010100000") {
		t.Errorf("세계일보 목록 URL 구성이 올바르지 않습니다: %s", sgot)
	}
}

func TestPublisherConfig_Validate(t *testing.T) {
	valid := PublisherConfig{
		ID:            models.PublisherHankyung,
		Name:          "한국경제",
		Domain:        "https://www.hankyung.com",
		FetchMode:     FetchStatic,
		ItemsPerPage:  20,
		PageStart:     1,
		ListSelector:  "a",
		TitleSelector: "h1",
		DateSelector:  "span",
		BodySelector:  "div",
		Categories: []CategoryConfig{
			{Name: "정치", Path: "/politics", Subs: []SubcategoryConfig{{Name: "행정", Path: "/governance"}}},
		},
	}

	tests := []struct {
		name    string
		mutate  func(*PublisherConfig)
		wantErr bool
	}{
		{"유효한 설정", func(p *PublisherConfig) {}, false},
		{"미등록 식별자", func(p *PublisherConfig) { p.ID = "hani" }, true},
		{"프로토콜 없는 도메인", func(p *PublisherConfig) { p.Domain = "www.hankyung.com" }, true},
		{"알 수 없는 수집 방식", func(p *PublisherConfig) { p.FetchMode = "headless" }, true},
		{"페이지당 기사 수 0", func(p *PublisherConfig) { p.ItemsPerPage = 0 }, true},
		{"음수 시작 페이지", func(p *PublisherConfig) { p.PageStart = -1 }, true},
		{"본문 선택자 없음", func(p *PublisherConfig) { p.BodySelector = "" }, true},
		{"카테고리 없음", func(p *PublisherConfig) { p.Categories = nil }, true},
		{"하위 카테고리 없는 카테고리", func(p *PublisherConfig) {
			p.Categories = []CategoryConfig{{Name: "정치", Path: "/politics"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublisherSet_Validate_Duplicate(t *testing.T) {
	set := loadDefaultSet(t)
	set.Publishers = append(set.Publishers, set.Publishers[0])

	if err := set.Validate(); err == nil {
		t.Error("중복 식별자를 검증에서 잡아야 합니다")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(configPath, []byte("publishers: [this is : not valid"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewPublisherConfigLoader(configPath)
	if _, err := loader.LoadConfig(); err == nil {
		t.Error("손상된 YAML은 오류를 반환해야 합니다")
	}
}
