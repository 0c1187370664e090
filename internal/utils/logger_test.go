package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitLogger(t *testing.T) {
	tempDir := t.TempDir()

	config := LogConfig{
		Level:      "debug",
		LogDir:     tempDir,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	if err := InitLogger(config); err != nil {
		t.Fatalf("로거 초기화 실패: %v", err)
	}

	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		t.Errorf("로그 디렉터리가 생성되지 않았습니다: %s", tempDir)
	}

	Info("테스트 정보 로그")
	Warn("테스트 경고 로그")
	Debug("테스트 디버그 로그")

	time.Sleep(100 * time.Millisecond)

	mainLogPath := filepath.Join(tempDir, "news_crawler.log")
	if _, err := os.Stat(mainLogPath); os.IsNotExist(err) {
		t.Errorf("메인 로그 파일이 생성되지 않았습니다: %s", mainLogPath)
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	config := LogConfig{
		Level:      "info",
		LogDir:     tempDir,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   false,
	}

	if err := InitLogger(config); err != nil {
		t.Fatalf("로거 초기화 실패: %v", err)
	}

	Info("정보 로그 테스트")
	Infof("포맷 정보 로그: %s", "테스트")
	Warn("경고 로그 테스트")
	Warnf("포맷 경고 로그: %d", 123)
	Debug("디버그 로그 테스트 - 레벨이 info이므로 기록되지 않아야 함")
	Debugf("포맷 디버그 로그: %v", true)

	time.Sleep(100 * time.Millisecond)

	mainLogPath := filepath.Join(tempDir, "news_crawler.log")
	content, err := os.ReadFile(mainLogPath)
	if err != nil {
		t.Fatalf("로그 파일 읽기 실패: %v", err)
	}

	if len(content) == 0 {
		t.Error("로그 파일이 비어 있습니다")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	config := DefaultLogConfig()

	if config.Level != "info" {
		t.Errorf("기본 로그 레벨 오류: 기대 'info', 실제 '%s'", config.Level)
	}
	if config.LogDir != "logs" {
		t.Errorf("기본 로그 디렉터리 오류: 기대 'logs', 실제 '%s'", config.LogDir)
	}
	if config.MaxSize != 10 {
		t.Errorf("기본 최대 크기 오류: 기대 10, 실제 %d", config.MaxSize)
	}
	if config.MaxBackups != 3 {
		t.Errorf("기본 백업 수 오류: 기대 3, 실제 %d", config.MaxBackups)
	}
	if config.MaxAge != 28 {
		t.Errorf("기본 보관 일수 오류: 기대 28, 실제 %d", config.MaxAge)
	}
	if !config.Compress {
		t.Error("기본값은 압축이 켜져 있어야 합니다")
	}
}

func TestKoreanLogOutput(t *testing.T) {
	tempDir := t.TempDir()

	config := LogConfig{
		Level:      "info",
		LogDir:     tempDir,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   false,
	}

	if err := InitLogger(config); err != nil {
		t.Fatalf("로거 초기화 실패: %v", err)
	}

	Info("한글 로그 메시지입니다")

	time.Sleep(100 * time.Millisecond)

	mainLogPath := filepath.Join(tempDir, "news_crawler.log")
	content, err := os.ReadFile(mainLogPath)
	if err != nil {
		t.Fatalf("로그 파일 읽기 실패: %v", err)
	}

	if len(content) == 0 {
		t.Error("로그 파일이 비어 있어 한글 로그가 기록되지 않았습니다")
	}
}
