package main

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/polinsight/newscrawler/internal/models"
)

// ValidateFlags 명령행 인자 검증
func ValidateFlags(publisherNames []string, sinkType string, maxSessions int, scheduleSpec string) error {
	// 신문사 지정 검증
	for _, name := range publisherNames {
		if _, err := models.ParsePublisher(name); err != nil {
			return err
		}
	}

	// 저장 방식 검증
	validSinks := map[string]bool{
		"":       true,
		"csv":    true,
		"sqlite": true,
		"both":   true,
	}
	if !validSinks[sinkType] {
		return fmt.Errorf("지원하지 않는 저장 방식: %s (유효값: csv, sqlite, both)", sinkType)
	}

	// 세션 수 검증
	if maxSessions < 0 || maxSessions > 32 {
		return fmt.Errorf("동시 세션 수는 0-32 사이여야 합니다. 현재 값: %d", maxSessions)
	}

	// cron 표현식 검증
	if scheduleSpec != "" {
		if _, err := cron.ParseStandard(scheduleSpec); err != nil {
			return fmt.Errorf("cron 표현식이 올바르지 않습니다 (%q): %w", scheduleSpec, err)
		}
	}

	return nil
}
