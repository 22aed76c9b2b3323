package prompt

import (
	"strings"
	"time"

	"memoria_backend/internal/catalog"
	"memoria_backend/internal/model"
)

// Meta 一次注水的元数据。时间戳只存在于这里，提示词字符串本身是确定性的。
type Meta struct {
	PersonaID        string    `json:"personaId"`
	PersonaName      string    `json:"personaName"`
	InjectedSections []string  `json:"injectedSections"`
	MissingSections  []string  `json:"missingSections"`
	TotalAnswers     int       `json:"totalAnswers"`
	HydratedAt       time.Time `json:"hydratedAt"`
}

// Result 注水产物，每次调用重新计算，从不缓存
type Result struct {
	Prompt string `json:"prompt"`
	Meta   Meta   `json:"meta"`
}

// Hydrate 把访谈回答合成为完整的行为提示词。
// 零回答时同样产出合法提示词，模板默认行为即刻生效。
func Hydrate(personaID, personaName string, answers []model.OnboardingAnswer) Result {
	grouped := make(map[catalog.TemplateKey][]model.OnboardingAnswer)
	total := 0
	for _, a := range answers {
		if !a.Meaningful() {
			continue
		}
		total++
		if key, ok := catalog.TemplateKeyFor(a.QuestionID); ok {
			grouped[key] = append(grouped[key], a)
		}
	}

	blocks := make(map[catalog.TemplateKey]*SectionBlock, len(catalog.TemplateKeys))
	var injected, missing []string
	for _, key := range catalog.TemplateKeys {
		block := FormatSection(key, grouped[key])
		blocks[key] = block
		if block != nil {
			injected = append(injected, string(key))
		} else {
			missing = append(missing, string(key))
		}
	}

	var b strings.Builder
	if personaName != "" {
		b.WriteString("You are " + personaName + ". You speak as " + personaName + " would.\n\n")
	}
	for _, part := range templateParts {
		if !part.isSlot {
			b.WriteString(part.literal)
			continue
		}
		// 槽位连同其换行一起解析进 templateParts；有内容则写回块加换行，
		// 无内容则整行消失，不留空标题
		if block := blocks[part.key]; block != nil {
			b.WriteString(block.Text)
			b.WriteString("\n")
		}
	}

	return Result{
		Prompt: b.String(),
		Meta: Meta{
			PersonaID:        personaID,
			PersonaName:      personaName,
			InjectedSections: injected,
			MissingSections:  missing,
			TotalAnswers:     total,
			HydratedAt:       time.Now(),
		},
	}
}
