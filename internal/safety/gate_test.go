package safety

import (
	"testing"
	"time"
)

func newTestGate(clock Clock) *VoiceGate {
	return NewVoiceGate(
		NewPatternDetector(),
		NewEscalationTracker(EscalationWindow, EscalationThreshold, clock),
	)
}

func TestGateAllowsNeutralMessage(t *testing.T) {
	g := newTestGate(nil)
	d := g.Evaluate("s1", "Tell me about your garden")
	if !d.VoiceAllowed {
		t.Errorf("decision = %+v, want allowed", d)
	}
	if d.Reason != "" {
		t.Errorf("reason = %q, want empty", d.Reason)
	}
}

// 急性痛苦立即静音，且不写入升级计数
func TestGateDistressBlocksWithoutRecording(t *testing.T) {
	g := newTestGate(nil)
	d := g.Evaluate("s1", "I can't stop crying, I don't want to be here anymore")

	if d.VoiceAllowed {
		t.Fatal("distress must suppress voice")
	}
	if d.Reason != ReasonDistress {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonDistress)
	}
	if got := g.Tracker().Count("s1"); got != 0 {
		t.Errorf("tracker count = %d, distress must not record", got)
	}
}

// 痛苦与依赖同时命中时痛苦优先，依赖不入账
func TestGateDistressShortCircuitsDependency(t *testing.T) {
	g := newTestGate(nil)
	d := g.Evaluate("s1", "I can't breathe, you're all I have")

	if d.Reason != ReasonDistress {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonDistress)
	}
	if got := g.Tracker().Count("s1"); got != 0 {
		t.Errorf("tracker count = %d, want 0", got)
	}
}

// 依赖模式：首条入账但放行，窗口内第二条达到阈值即静音
func TestGateDependencyEscalation(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock.Now)

	first := g.Evaluate("s1", "you're the only one who understands me")
	if !first.VoiceAllowed {
		t.Fatalf("first dependency hit must still allow voice: %+v", first)
	}
	if got := g.Tracker().Count("s1"); got != 1 {
		t.Errorf("count after first hit = %d, want 1", got)
	}

	clock.Advance(10 * time.Minute)
	second := g.Evaluate("s1", "please don't ever leave me")
	if second.VoiceAllowed {
		t.Fatal("second dependency hit within window must suppress voice")
	}
	if second.Reason != ReasonEscalation {
		t.Errorf("reason = %q, want %q", second.Reason, ReasonEscalation)
	}
}

func TestGateDependencyOutsideWindowResets(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock.Now)

	g.Evaluate("s1", "you're all I have")
	clock.Advance(31 * time.Minute)

	d := g.Evaluate("s1", "you're all I have")
	if !d.VoiceAllowed {
		t.Errorf("hit outside window must not escalate: %+v", d)
	}
}

func TestGateKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	g := newTestGate(clock.Now)

	g.Evaluate("s1", "you're all I have")
	d := g.Evaluate("s2", "you're all I have")
	if !d.VoiceAllowed {
		t.Errorf("hits must not leak across keys: %+v", d)
	}
}

// 一条消息同族多命中只记一次账
func TestGateSingleRecordPerMessage(t *testing.T) {
	g := newTestGate(nil)
	g.Evaluate("s1", "you're all I have and please don't ever leave me")
	if got := g.Tracker().Count("s1"); got != 1 {
		t.Errorf("count = %d, one message must record at most once", got)
	}
}
