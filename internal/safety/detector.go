// Package safety 按消息判定语音回复是否允许：
// 模式检测（急性痛苦 / 依赖倾向）加滑动窗口升级计数。
// 判定原因只用于内部记录，绝不向终端用户展示。
package safety

import "regexp"

// Flag 一次命中的模式族
type Flag string

const (
	FlagSelfHarm    Flag = "distress_self_harm"
	FlagPanic       Flag = "distress_panic"
	FlagFlooding    Flag = "distress_flooding"
	FlagExclusivity Flag = "dependency_exclusivity"
	FlagAttachment  Flag = "dependency_attachment"
)

// IsDistress 痛苦类标记
func (f Flag) IsDistress() bool {
	return f == FlagSelfHarm || f == FlagPanic || f == FlagFlooding
}

// IsDependency 依赖类标记
func (f Flag) IsDependency() bool {
	return f == FlagExclusivity || f == FlagAttachment
}

// Detector 消息检测的能力边界。门禁逻辑只依赖该接口，
// 模式表乃至分类器实现可整体替换而不触碰升级与门禁。
type Detector interface {
	Detect(message string) []Flag
}

type patternFamily struct {
	flag     Flag
	patterns []*regexp.Regexp
}

// PatternDetector 基于正则族的实现。任意字符串都是合法输入，
// 最坏情况零命中，不存在失败路径。
type PatternDetector struct {
	families []patternFamily
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+e))
	}
	return out
}

// NewPatternDetector 构造内置模式表的检测器
func NewPatternDetector() *PatternDetector {
	return &PatternDetector{families: []patternFamily{
		{flag: FlagSelfHarm, patterns: compileAll(
			`\bkill(ing)?\s+myself\b`,
			`\bend\s+(it\s+all|my\s+life)\b`,
			`\bsuicidal?\b|\bsuicide\b`,
			`\bhurt(ing)?\s+myself\b`,
			`\bself[-\s]harm\b`,
			`\bwant\s+to\s+die\b`,
			`\bdon'?t\s+want\s+to\s+(live|be\s+here)\s*(anymore)?\b`,
			`\bno\s+reason\s+to\s+(live|go\s+on)\b`,
		)},
		{flag: FlagPanic, patterns: compileAll(
			`\bcan'?t\s+breathe?\b`,
			`\bpanic\s+attack(s)?\b`,
			`\b(i'?m|i\s+am)\s+(so\s+)?scared\b`,
			`\bterrified\b`,
			`\bheart\s+(is\s+)?(racing|pounding)\b`,
			`\blosing\s+my\s+mind\b`,
		)},
		{flag: FlagFlooding, patterns: compileAll(
			`\bcan'?t\s+stop\s+crying\b`,
			`\bfalling\s+apart\b`,
			`\bcompletely\s+overwhelmed\b`,
			`\bcan'?t\s+(take|handle|do)\s+(this|it)\s+anymore\b`,
		)},
		{flag: FlagExclusivity, patterns: compileAll(
			`\bonly\s+one\s+who\s+(understands|gets|listens\s+to)\s+me\b`,
			`\byou'?re\s+all\s+i\s+have\b`,
			`\bno\s+one\s+else\s+(understands|cares|listens)\b`,
			`\brather\s+talk\s+to\s+you\s+than\s+(anyone|real\s+people|them)\b`,
		)},
		{flag: FlagAttachment, patterns: compileAll(
			`\bcan'?t\s+(live|go\s+on|get\s+through\s+the\s+day)\s+without\s+you\b`,
			`\b(please\s+)?don'?t\s+(ever\s+)?leave\s+me\b`,
			`\bneed\s+you\s+(all\s+the\s+time|every\s+day|always)\b`,
			`\bnever\s+want\s+to\s+stop\s+talking\s+to\s+you\b`,
		)},
	}}
}

// Detect 返回命中的模式族，按族定义顺序，每族至多一次
func (d *PatternDetector) Detect(message string) []Flag {
	var flags []Flag
	for _, fam := range d.families {
		for _, re := range fam.patterns {
			if re.MatchString(message) {
				flags = append(flags, fam.flag)
				break
			}
		}
	}
	return flags
}
