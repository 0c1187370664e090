package models

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// ValidateURL URL 형식 검증
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("유효하지 않은 URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL은 HTTP 또는 HTTPS 프로토콜이어야 합니다")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL에 호스트명이 없습니다")
	}
	return nil
}

// NewID 고유 ID 생성
func NewID() string {
	return uuid.New().String()
}
