package utils

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 전역 로거
var Logger zerolog.Logger

// LogConfig 로그 설정
type LogConfig struct {
	Level      string // 로그 레벨: trace, debug, info, warn, error, fatal, panic
	LogDir     string // 로그 디렉터리
	MaxSize    int    // 로그 파일 하나의 최대 크기(MB)
	MaxBackups int    // 보관할 이전 로그 파일 수
	MaxAge     int    // 보관 일수
	Compress   bool   // 이전 로그 압축 여부
}

// DefaultLogConfig 기본 로그 설정
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		LogDir:     "logs",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// InitLogger 로그 시스템 초기화
func InitLogger(config LogConfig) error {
	if err := os.MkdirAll(config.LogDir, 0755); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// 메인 로그 파일(로테이션)
	mainLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(config.LogDir, "news_crawler.log"),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}

	// 오류 로그 파일(로테이션)
	errorLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(config.LogDir, "news_crawler_error.log"),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}

	// 컬러 콘솔 출력
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}

	// 출력 대상:
	// 1. 컬러 콘솔
	// 2. 메인 로그 파일(전체 레벨)
	// 3. 오류 로그 파일(error 이상)
	multiWriter := io.MultiWriter(
		consoleWriter,
		mainLogFile,
		&FilteredWriter{Writer: errorLogFile, MinLevel: zerolog.ErrorLevel},
	)

	Logger = zerolog.New(multiWriter).
		With().
		Timestamp().
		Caller().
		Logger()

	log.Logger = Logger

	Logger.Info().
		Str("level", config.Level).
		Str("log_dir", config.LogDir).
		Msg("로그 시스템 초기화 완료")

	return nil
}

// FilteredWriter 지정한 레벨 이상만 기록하는 필터 라이터
type FilteredWriter struct {
	Writer   io.Writer
	MinLevel zerolog.Level
}

// Write io.Writer 구현
func (w *FilteredWriter) Write(p []byte) (n int, err error) {
	return w.Writer.Write(p)
}

// WriteLevel 레벨 정보가 있는 쓰기
func (w *FilteredWriter) WriteLevel(level zerolog.Level, p []byte) (n int, err error) {
	if level >= w.MinLevel {
		return w.Writer.Write(p)
	}
	return len(p), nil
}

// Info 단축 메서드: 정보 로그
func Info(msg string) {
	Logger.Info().Msg(msg)
}

// Infof 단축 메서드: 포맷 정보 로그
func Infof(format string, args ...interface{}) {
	Logger.Info().Msgf(format, args...)
}

// Error 단축 메서드: 오류 로그
func Error(err error, msg string) {
	Logger.Error().Err(err).Msg(msg)
}

// Errorf 단축 메서드: 포맷 오류 로그
func Errorf(format string, args ...interface{}) {
	Logger.Error().Msgf(format, args...)
}

// Warn 단축 메서드: 경고 로그
func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

// Warnf 단축 메서드: 포맷 경고 로그
func Warnf(format string, args ...interface{}) {
	Logger.Warn().Msgf(format, args...)
}

// Debug 단축 메서드: 디버그 로그
func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

// Debugf 단축 메서드: 포맷 디버그 로그
func Debugf(format string, args ...interface{}) {
	Logger.Debug().Msgf(format, args...)
}

// Fatal 단축 메서드: 치명적 오류 로그(프로그램 종료)
func Fatal(err error, msg string) {
	Logger.Fatal().Err(err).Msg(msg)
}
