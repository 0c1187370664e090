package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/polinsight/newscrawler/internal/models"
)

// Config 애플리케이션 설정
type Config struct {
	Crawl      models.CrawlConfig `mapstructure:"crawl"`
	Logging    LoggingConfig      `mapstructure:"logging"`
	Output     OutputConfig       `mapstructure:"output"`
	Sink       SinkConfig         `mapstructure:"sink"`
	Schedule   ScheduleConfig     `mapstructure:"schedule"`
	Publishers PublishersConfig   `mapstructure:"publishers"`
}

// LoggingConfig 로그 설정
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 로그 로테이션 설정
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// OutputConfig 출력 설정
type OutputConfig struct {
	BaseDir string `mapstructure:"base_dir"`
}

// SinkConfig 기사 저장 방식 설정
// type: csv, sqlite, both
type SinkConfig struct {
	Type       string `mapstructure:"type"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// ScheduleConfig 주기 실행 설정
type ScheduleConfig struct {
	Spec string `mapstructure:"spec"` // cron 표현식 (기본: 매시 정각)
}

// PublishersConfig 신문사 설정 파일 위치
type PublishersConfig struct {
	ConfigPath string `mapstructure:"config_path"`
}

// LoadConfig 설정 파일 로드
// 경로를 지정하지 않으면 ./configs, ., ~/.newscrawler 순으로 찾는다
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".newscrawler"))
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 설정 파일이 없으면 기본값으로 동작
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("설정 파일 해석 실패: %w", err)
	}

	if err := config.Crawl.Validate(); err != nil {
		return nil, fmt.Errorf("크롤링 설정이 올바르지 않습니다: %w", err)
	}

	return &config, nil
}

// setDefaults 기본 설정값
func setDefaults(v *viper.Viper) {
	defaults := models.DefaultCrawlConfig()

	v.SetDefault("crawl.headless", defaults.Headless)
	v.SetDefault("crawl.max_nav_retries", defaults.MaxNavRetries)
	v.SetDefault("crawl.max_launch_retries", defaults.MaxLaunchRetries)
	v.SetDefault("crawl.nav_timeout", defaults.NavTimeout)
	v.SetDefault("crawl.idle_timeout", defaults.IdleTimeout)
	v.SetDefault("crawl.selector_timeout", defaults.SelectorTimeout)
	v.SetDefault("crawl.global_timeout", defaults.GlobalTimeout)
	v.SetDefault("crawl.fetch_timeout", defaults.FetchTimeout)
	v.SetDefault("crawl.category_delay_min", defaults.CategoryDelayMin)
	v.SetDefault("crawl.category_delay_max", defaults.CategoryDelayMax)
	v.SetDefault("crawl.sub_delay_min", defaults.SubDelayMin)
	v.SetDefault("crawl.sub_delay_max", defaults.SubDelayMax)
	v.SetDefault("crawl.page_delay_min", defaults.PageDelayMin)
	v.SetDefault("crawl.page_delay_max", defaults.PageDelayMax)
	v.SetDefault("crawl.article_delay_min", defaults.ArticleDelayMin)
	v.SetDefault("crawl.article_delay_max", defaults.ArticleDelayMax)
	v.SetDefault("crawl.max_sessions", defaults.MaxSessions)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	v.SetDefault("output.base_dir", "output")

	v.SetDefault("sink.type", "csv")
	v.SetDefault("sink.sqlite_path", "output/articles.db")

	// 매시 정각 실행
	v.SetDefault("schedule.spec", "0 * * * *")

	v.SetDefault("publishers.config_path", "configs/publishers.yaml")
}

// MergeCLIFlags 명령행 인자를 설정에 병합 (명령행이 우선)
// headless는 인자를 실제로 지정했을 때만 전달해 설정 파일 값을 덮지 않는다
func (c *Config) MergeCLIFlags(headless *bool, outputDir string, sinkType string, logLevel string) {
	if headless != nil {
		c.Crawl.Headless = *headless
	}
	if outputDir != "" {
		c.Output.BaseDir = outputDir
	}
	if sinkType != "" {
		c.Sink.Type = sinkType
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
}
