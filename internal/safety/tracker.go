package safety

import (
	"sync"
	"time"
)

const (
	// EscalationWindow 依赖命中的滑动计数窗口
	EscalationWindow = 30 * time.Minute
	// EscalationThreshold 窗口内达到该次数即阻断语音
	EscalationThreshold = 2
	// trackedKeyCap 键数超过上限时触发一次惰性清扫
	trackedKeyCap = 4096
)

// Clock 可注入时钟，测试用受控时间驱动窗口
type Clock func() time.Time

// EscalationTracker 按会话键维护依赖命中时间戳的滑动窗口计数。
// 仅进程内存，重启即失，属可接受的尽力而为状态。
// 同键的 剪枝+追加+比较 在同一把锁内完成，并发消息不会丢更新。
type EscalationTracker struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	now       Clock
	hits      map[string][]time.Time
}

// NewEscalationTracker 构造跟踪器；clock 为 nil 时使用系统时钟
func NewEscalationTracker(window time.Duration, threshold int, clock Clock) *EscalationTracker {
	if clock == nil {
		clock = time.Now
	}
	return &EscalationTracker{
		window:    window,
		threshold: threshold,
		now:       clock,
		hits:      make(map[string][]time.Time),
	}
}

// Record 记录一次依赖命中：剪掉窗口外的旧纪录，追加当前时间，
// 返回追加后的窗口内计数。
func (t *EscalationTracker) Record(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	kept := t.pruneLocked(key, now)
	kept = append(kept, now)
	t.hits[key] = kept

	if len(t.hits) > trackedKeyCap {
		t.sweepLocked(now)
	}
	return len(kept)
}

// Count 返回窗口内计数，不追加
func (t *EscalationTracker) Count(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pruneLocked(key, t.now()))
}

// Threshold 阻断阈值
func (t *EscalationTracker) Threshold() int {
	return t.threshold
}

// Reset 清空单个键（如会话结束）
func (t *EscalationTracker) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.hits, key)
}

// ResetAll 清空全部键（如切换人格等会话边界）
func (t *EscalationTracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hits = make(map[string][]time.Time)
}

func (t *EscalationTracker) pruneLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-t.window)
	entries := t.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(t.hits, key)
		return nil
	}
	t.hits[key] = kept
	return kept
}

// sweepLocked 删除最新命中已整体过期的键，遏制只被写过一次的键无限累积
func (t *EscalationTracker) sweepLocked(now time.Time) {
	cutoff := now.Add(-t.window)
	for key, entries := range t.hits {
		if len(entries) == 0 || !entries[len(entries)-1].After(cutoff) {
			delete(t.hits, key)
		}
	}
}
