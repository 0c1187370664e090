package utils

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			"공백 구분 점 표기",
			"2025. 10. 13 14:30",
			time.Date(2025, 10, 13, 14, 30, 0, 0, time.Local),
		},
		{
			"점 표기",
			"2025.10.13 14:30",
			time.Date(2025, 10, 13, 14, 30, 0, 0, time.Local),
		},
		{
			"하이픈 표기",
			"2025-10-13 14:30",
			time.Date(2025, 10, 13, 14, 30, 0, 0, time.Local),
		},
		{
			"마지막 점이 남은 표기",
			"2025.10.13. 14:30",
			time.Date(2025, 10, 13, 14, 30, 0, 0, time.Local),
		},
		{
			"하이픈 초 단위 표기",
			"2025-10-13 14:30:45",
			time.Date(2025, 10, 13, 14, 30, 45, 0, time.Local),
		},
		{
			"점 초 단위 표기",
			"2025.10.13 14:30:45",
			time.Date(2025, 10, 13, 14, 30, 45, 0, time.Local),
		},
		{
			"공백 점 초 단위 표기",
			"2025. 10. 13 14:30:45",
			time.Date(2025, 10, 13, 14, 30, 45, 0, time.Local),
		},
		{
			"앞뒤 공백 제거",
			"  2025-10-13 14:30  ",
			time.Date(2025, 10, 13, 14, 30, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateTime(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("ParseDateTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateTime_Fallback(t *testing.T) {
	before := time.Now()
	got := ParseDateTime("날짜가 아닌 문자열")
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("해석 불가 입력은 현재 시각을 반환해야 합니다: got %v", got)
	}
	if got.IsZero() {
		t.Error("해석 실패 시에도 영값을 반환하면 안 됩니다")
	}
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			"같은 날 다른 시각",
			time.Date(2025, 10, 13, 0, 5, 0, 0, time.Local),
			time.Date(2025, 10, 13, 23, 55, 0, 0, time.Local),
			true,
		},
		{
			"하루 차이",
			time.Date(2025, 10, 13, 23, 59, 0, 0, time.Local),
			time.Date(2025, 10, 14, 0, 1, 0, 0, time.Local),
			false,
		},
		{
			"같은 일자 다른 달",
			time.Date(2025, 9, 13, 12, 0, 0, 0, time.Local),
			time.Date(2025, 10, 13, 12, 0, 0, 0, time.Local),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
