package crawlers

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/polinsight/newscrawler/internal/utils"
)

// SessionGate 동시 수집 세션 수 산정기
// 가용 메모리와 CPU 코어 수를 기준으로 한 번에 띄울 수집 세션 상한을 정한다
// 브라우저 세션 하나가 수백 MB를 쓰므로 저사양 환경에서는 자동으로 줄어든다
type SessionGate struct {
	config SessionGateConfig

	totalMemory uint64

	// 산정 결과 캐시 (1초)
	cachedMax     int
	lastCacheTime time.Time
	mu            sync.RWMutex
}

// SessionGateConfig 세션 게이트 설정
type SessionGateConfig struct {
	SafetyReserveMemory int64 // 시스템 예비 메모리(바이트)
	SessionMemoryUsage  int64 // 세션 하나의 평균 메모리 소비(바이트)
	MaxSessionsLimit    int   // 절대 상한
}

// DefaultSessionGateConfig 기본 세션 게이트 설정
// 브라우저 세션 1개당 300MB로 잡는다
func DefaultSessionGateConfig() SessionGateConfig {
	return SessionGateConfig{
		SafetyReserveMemory: 1024 * 1024 * 1024,
		SessionMemoryUsage:  300 * 1024 * 1024,
		MaxSessionsLimit:    8,
	}
}

// NewSessionGate 세션 게이트 생성
func NewSessionGate(config SessionGateConfig) *SessionGate {
	if config.SessionMemoryUsage == 0 {
		config.SessionMemoryUsage = 300 * 1024 * 1024
	}
	if config.MaxSessionsLimit < 1 {
		config.MaxSessionsLimit = 8
	}

	vmStat, err := mem.VirtualMemory()
	var totalMem uint64
	if err != nil {
		utils.Warnf("시스템 메모리 조회 실패, 기본값 사용: %v", err)
		totalMem = 4 * 1024 * 1024 * 1024
	} else {
		totalMem = vmStat.Total
		utils.Infof("시스템 총 메모리: %.2f GB", float64(totalMem)/(1024*1024*1024))
	}

	return &SessionGate{
		config:      config,
		totalMemory: totalMem,
	}
}

// MaxSessions 현재 자원으로 허용되는 동시 세션 수 산정
// min(가용 메모리 기준, CPU 코어 수, 절대 상한), 최소 1
func (g *SessionGate) MaxSessions() int {
	g.mu.RLock()
	if time.Since(g.lastCacheTime) < time.Second && g.cachedMax > 0 {
		cached := g.cachedMax
		g.mu.RUnlock()
		return cached
	}
	g.mu.RUnlock()

	byMemory := 1
	available := int64(g.totalMemory) / 2 // 조회 실패 시의 보수적 추정치
	if vmStat, err := mem.VirtualMemory(); err == nil {
		available = int64(vmStat.Available)
	}
	available -= g.config.SafetyReserveMemory
	if available > 0 {
		byMemory = int(available / g.config.SessionMemoryUsage)
	}
	if byMemory < 1 {
		byMemory = 1
	}

	byCPU := runtime.NumCPU()

	result := byMemory
	if byCPU < result {
		result = byCPU
	}
	if g.config.MaxSessionsLimit < result {
		result = g.config.MaxSessionsLimit
	}
	if result < 1 {
		result = 1
	}

	g.mu.Lock()
	g.cachedMax = result
	g.lastCacheTime = time.Now()
	g.mu.Unlock()

	return result
}

// CPUUsage 전체 코어 평균 CPU 사용률(%) 조회
// 조회 실패 시 0을 반환한다
func (g *SessionGate) CPUUsage() float64 {
	percentages, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(percentages) == 0 {
		return 0.0
	}
	return percentages[0]
}
