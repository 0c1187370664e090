package utils

import (
	"context"
	"math/rand"
	"time"
)

// RandomDelay min~max초 사이의 랜덤 대기 시간 산출
func RandomDelay(minSec, maxSec float64) time.Duration {
	if maxSec <= minSec {
		return time.Duration(minSec * float64(time.Second))
	}
	span := maxSec - minSec
	return time.Duration((minSec + rand.Float64()*span) * float64(time.Second))
}

// SleepRandom 컨텍스트를 존중하며 랜덤 대기
// 컨텍스트가 취소되면 즉시 중단하고 취소 오류를 반환한다
func SleepRandom(ctx context.Context, minSec, maxSec float64) error {
	timer := time.NewTimer(RandomDelay(minSec, maxSec))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
