package safety

import (
	"testing"
	"time"
)

// fakeClock 受控时钟
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTrackerRecordCounts(t *testing.T) {
	clock := newFakeClock()
	tr := NewEscalationTracker(30*time.Minute, 2, clock.Now)

	if got := tr.Record("s1"); got != 1 {
		t.Errorf("first Record = %d, want 1", got)
	}
	if got := tr.Record("s1"); got != 2 {
		t.Errorf("second Record = %d, want 2", got)
	}
	if got := tr.Count("s1"); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
	// 不同键互不影响
	if got := tr.Count("s2"); got != 0 {
		t.Errorf("Count(other key) = %d, want 0", got)
	}
}

func TestTrackerWindowExpiry(t *testing.T) {
	clock := newFakeClock()
	tr := NewEscalationTracker(30*time.Minute, 2, clock.Now)

	tr.Record("s1")
	clock.Advance(29 * time.Minute)
	if got := tr.Count("s1"); got != 1 {
		t.Errorf("Count inside window = %d, want 1", got)
	}

	clock.Advance(2 * time.Minute) // 31 分钟，已出窗
	if got := tr.Count("s1"); got != 0 {
		t.Errorf("Count after expiry = %d, want 0", got)
	}

	// 出窗后的新命中重新从 1 计
	if got := tr.Record("s1"); got != 1 {
		t.Errorf("Record after expiry = %d, want 1", got)
	}
}

func TestTrackerSlidingNotFixed(t *testing.T) {
	clock := newFakeClock()
	tr := NewEscalationTracker(30*time.Minute, 2, clock.Now)

	tr.Record("s1")
	clock.Advance(20 * time.Minute)
	if got := tr.Record("s1"); got != 2 {
		t.Errorf("Record at +20m = %d, want 2", got)
	}
	clock.Advance(15 * time.Minute)
	// 第一条已出窗，第二条仍在
	if got := tr.Count("s1"); got != 1 {
		t.Errorf("Count at +35m = %d, want 1", got)
	}
}

func TestTrackerReset(t *testing.T) {
	clock := newFakeClock()
	tr := NewEscalationTracker(30*time.Minute, 2, clock.Now)

	tr.Record("s1")
	tr.Record("s2")
	tr.Reset("s1")
	if got := tr.Count("s1"); got != 0 {
		t.Errorf("Count after Reset = %d, want 0", got)
	}
	if got := tr.Count("s2"); got != 1 {
		t.Errorf("Reset must not touch other keys, Count = %d", got)
	}

	tr.ResetAll()
	if got := tr.Count("s2"); got != 0 {
		t.Errorf("Count after ResetAll = %d, want 0", got)
	}
}

func TestTrackerSweepsExpiredKeys(t *testing.T) {
	clock := newFakeClock()
	tr := NewEscalationTracker(30*time.Minute, 2, clock.Now)

	// 填入超过上限的只写一次的键，然后让它们全部过期
	for i := 0; i < trackedKeyCap+1; i++ {
		tr.Record(string(rune('a'+i%26)) + time.Duration(i).String())
	}
	clock.Advance(31 * time.Minute)

	tr.Record("fresh")
	tr.mu.Lock()
	n := len(tr.hits)
	tr.mu.Unlock()
	if n != 1 {
		t.Errorf("tracked keys after sweep = %d, want 1", n)
	}
}
