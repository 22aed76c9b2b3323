package prompt

import (
	"fmt"

	"memoria_backend/internal/catalog"
)

type WarningLevel string

const (
	LevelCritical WarningLevel = "critical"
	LevelWarning  WarningLevel = "warning"
)

// Warning 注水质量的提示性告警，只做标注，从不阻断或修改提示词
type Warning struct {
	Level   WarningLevel        `json:"level"`
	Section catalog.TemplateKey `json:"section,omitempty"`
	Message string              `json:"message"`
}

// criticalSections 缺失时默认安全/感知行为会静默生效，必须强提醒
var criticalSections = []catalog.TemplateKey{
	catalog.SectionBoundaries,
	catalog.SectionPresentAwareness,
}

// importantSections 缺失会让人格显得空泛
var importantSections = []catalog.TemplateKey{
	catalog.SectionRelationshipContext,
	catalog.SectionCorePersonality,
	catalog.SectionCommunicationStyle,
}

// Validate 检查注水元数据并产出建议性告警
func Validate(meta Meta) []Warning {
	missing := make(map[catalog.TemplateKey]bool, len(meta.MissingSections))
	for _, s := range meta.MissingSections {
		missing[catalog.TemplateKey(s)] = true
	}

	var warnings []Warning
	for _, key := range criticalSections {
		if missing[key] {
			warnings = append(warnings, Warning{
				Level:   LevelCritical,
				Section: key,
				Message: fmt.Sprintf("section %q has no creator content; template defaults will silently apply", key),
			})
		}
	}
	for _, key := range importantSections {
		if missing[key] {
			warnings = append(warnings, Warning{
				Level:   LevelWarning,
				Section: key,
				Message: fmt.Sprintf("section %q is empty; the persona may feel generic", key),
			})
		}
	}
	if meta.TotalAnswers <= 2 {
		warnings = append(warnings, Warning{
			Level:   LevelWarning,
			Message: fmt.Sprintf("only %d answered question(s); the persona is built almost entirely from template defaults", meta.TotalAnswers),
		})
	}
	return warnings
}
