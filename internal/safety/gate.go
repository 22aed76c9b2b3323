package safety

// 阻断原因。只进日志与调用方内部逻辑，响应体不携带。
const (
	ReasonDistress   = "distress_detected"
	ReasonEscalation = "dependency_escalation"
)

// Decision 单条消息的语音可用性判定
type Decision struct {
	VoiceAllowed bool   `json:"voiceAllowed"`
	Reason       string `json:"reason,omitempty"`
	Flags        []Flag `json:"flags,omitempty"`
}

// VoiceGate 组合检测器与升级跟踪器。每条消息重新判定，
// 跨消息记忆只存在于跟踪器中。
type VoiceGate struct {
	detector Detector
	tracker  *EscalationTracker
}

// NewVoiceGate 构造语音门禁
func NewVoiceGate(detector Detector, tracker *EscalationTracker) *VoiceGate {
	return &VoiceGate{detector: detector, tracker: tracker}
}

// Tracker 暴露跟踪器以供会话边界重置
func (g *VoiceGate) Tracker() *EscalationTracker {
	return g.tracker
}

// Evaluate 按固定次序判定：
// 痛苦命中立即阻断且不触碰跟踪器；否则依赖命中先记账，
// 计入后达到阈值才阻断；两族都未命中则放行。
func (g *VoiceGate) Evaluate(key, message string) Decision {
	flags := g.detector.Detect(message)

	for _, f := range flags {
		if f.IsDistress() {
			return Decision{VoiceAllowed: false, Reason: ReasonDistress, Flags: flags}
		}
	}

	for _, f := range flags {
		if f.IsDependency() {
			if g.tracker.Record(key) >= g.tracker.Threshold() {
				return Decision{VoiceAllowed: false, Reason: ReasonEscalation, Flags: flags}
			}
			break
		}
	}

	return Decision{VoiceAllowed: true, Flags: flags}
}
