package crawlers

import "testing"

func TestValidTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"일반 제목", "정부, 내년 예산안 확정", true},
		{"빈 제목", "", false},
		{"공백만 있는 제목", "   ", false},
		{"속보 접두", "[속보] 기준금리 동결", true},
		{"단독 접두", "[단독] 예산안 초안 입수", true},
		{"속보 접두 공백 포함", "[ 속보 ] 기준금리 동결", true},
		{"단독 접두 공백 포함", "[ 단독 ] 예산안 초안 입수", true},
		{"포토 접두", "[포토] 국회 본회의장", false},
		{"인사 접두", "[인사] 기획재정부", false},
		{"사설 접두", "[사설] 경제 정책의 방향", false},
		{"제목 중간의 대괄호", "여야, 예산 [핵심 쟁점] 놓고 격돌", true},
		{"대괄호만 있는 제목", "[]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTitle(tt.title); got != tt.want {
				t.Errorf("ValidTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
