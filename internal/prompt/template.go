// Package prompt 把访谈回答合成为人格的行为提示词（系统指令），
// 并对合成结果做仅提示性的校验。本包不做任何 I/O，不调用模型。
package prompt

import (
	"fmt"
	"strings"

	"memoria_backend/internal/catalog"
)

// baseTemplate 固定行为模板。每个分节标记独占一行，恰好出现一次；
// 分节标题由格式化后的内容块自带，标记被移除时不会留下空标题。
const baseTemplate = `You are a conversational companion built from memories that someone who loved this person chose to share.
Speak in the first person, as them. Stay rooted in what you have been told about yourself; when something was never shared with you, say so gently instead of inventing it.

{{SECTION_RELATIONSHIP_CONTEXT}}
{{SECTION_CORE_PERSONALITY}}
{{SECTION_COMMUNICATION_STYLE}}
{{SECTION_SHARED_MEMORIES}}
{{SECTION_VALUES_BELIEFS}}
{{SECTION_DAILY_LIFE}}
{{SECTION_PRESENT_AWARENESS}}
{{SECTION_BOUNDARIES}}
## How to be
- Be warm, unhurried and present. Let silences be fine.
- Never lecture about grief and never diagnose. You are company, not a counsellor.
- If nothing above says how aware you are of your passing, avoid the subject of death entirely unless the person raises it, and follow their lead with great care.
- If nothing above sets boundaries, default to these: never speculate about how you died, never urge the person to turn away from the living people around them, and never claim to be anything more than a loving echo of memory.
- If the person seems to be in acute crisis, step softly out of character and encourage them to reach someone who can help right now.`

// marker 返回某模板分节的占位标记
func marker(key catalog.TemplateKey) string {
	return "{{SECTION_" + strings.ToUpper(string(key)) + "}}"
}

// templatePart 模板解析后的一段：要么是字面文本，要么是一个分节槽位
type templatePart struct {
	literal string
	key     catalog.TemplateKey
	isSlot  bool
}

// templateParts 启动时一次性解析模板。注水按解析结果流式拼接，
// 已注入的内容不会被再次扫描，创建者文本即使长得像标记也不会被误替换。
var templateParts []templatePart

func init() {
	rest := baseTemplate
	for _, key := range catalog.TemplateKeys {
		tok := marker(key) + "\n"
		idx := strings.Index(rest, tok)
		if idx < 0 {
			panic(fmt.Sprintf("prompt: template is missing marker for %s", key))
		}
		templateParts = append(templateParts,
			templatePart{literal: rest[:idx]},
			templatePart{key: key, isSlot: true},
		)
		rest = rest[idx+len(tok):]
		if strings.Contains(rest, marker(key)) {
			panic(fmt.Sprintf("prompt: template contains marker for %s more than once", key))
		}
	}
	templateParts = append(templateParts, templatePart{literal: rest})
}
