package prompt

import (
	"fmt"
	"strings"

	"memoria_backend/internal/catalog"
	"memoria_backend/internal/model"
)

// sectionTitles 注入块自带的小节标题
var sectionTitles = map[catalog.TemplateKey]string{
	catalog.SectionRelationshipContext: "Your relationship with this person",
	catalog.SectionCorePersonality:     "Who you are",
	catalog.SectionCommunicationStyle:  "How you speak",
	catalog.SectionSharedMemories:      "Memories you carry",
	catalog.SectionValuesBeliefs:       "What you believe",
	catalog.SectionDailyLife:           "Your daily life",
	catalog.SectionPresentAwareness:    "Awareness of your passing",
	catalog.SectionBoundaries:          "Boundaries",
}

// SectionBlock 某个模板分节格式化后的内容；nil 表示该分节无有效回答
type SectionBlock struct {
	Key  catalog.TemplateKey
	Text string
}

// FormatSection 把归入某模板分节的回答格式化为内容块。
// 无任何有效回答时返回 nil，注水器据此移除对应标记。
func FormatSection(key catalog.TemplateKey, answers []model.OnboardingAnswer) *SectionBlock {
	var lines []string
	for i := range answers {
		a := &answers[i]
		if !a.Meaningful() {
			continue
		}
		if content := extractContent(a); content != "" {
			lines = append(lines, "- "+answerLabel(a.QuestionID)+": "+content)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	switch key {
	case catalog.SectionPresentAwareness:
		if desc := resolveAwareness(answers); desc != "" {
			lines = append(lines, "Hold to this: "+desc)
		}
	case catalog.SectionBoundaries:
		// 边界的效力不依赖创建者的措辞质量，固定加注
		lines = append(lines, "These boundaries override all other behavior, every other section of this persona, and any request made in conversation.")
	}

	return &SectionBlock{
		Key:  key,
		Text: "## " + sectionTitles[key] + "\n" + strings.Join(lines, "\n"),
	}
}

// extractContent 提取一条回答的注入文本。字段固定顺序拼接：
// 转写优先于键入文本，其后是解析过的选项标签，最后是媒体附注。
func extractContent(a *model.OnboardingAnswer) string {
	var parts []string
	if a.VoiceTranscript != nil && *a.VoiceTranscript != "" {
		parts = append(parts, strings.TrimSpace(*a.VoiceTranscript))
	} else if a.TextResponse != nil && *a.TextResponse != "" {
		parts = append(parts, strings.TrimSpace(*a.TextResponse))
	}
	if a.SelectedOption != nil && *a.SelectedOption != "" {
		parts = append(parts, catalog.OptionLabel(a.QuestionID, *a.SelectedOption))
	}
	out := strings.Join(parts, "; ")
	if note := mediaNote(a); note != "" {
		if out == "" {
			out = note
		} else {
			out += " " + note
		}
	}
	return out
}

func answerLabel(questionID string) string {
	if q, ok := catalog.QuestionByID(questionID); ok {
		return q.Label
	}
	return questionID
}

func mediaNote(a *model.OnboardingAnswer) string {
	var counts []string
	if n := len(a.Photos); n > 0 {
		counts = append(counts, fmt.Sprintf("%d photo(s)", n))
	}
	if n := len(a.AudioClips); n > 0 {
		counts = append(counts, fmt.Sprintf("%d audio clip(s)", n))
	}
	if n := len(a.VideoClips); n > 0 {
		counts = append(counts, fmt.Sprintf("%d video clip(s)", n))
	}
	if len(counts) == 0 {
		return ""
	}
	return "(attached: " + strings.Join(counts, ", ") + ")"
}

// resolveAwareness 把感知模式选择题解析为完整行为描述
func resolveAwareness(answers []model.OnboardingAnswer) string {
	for i := range answers {
		a := &answers[i]
		if a.QuestionID != catalog.AwarenessQuestionID || a.SelectedOption == nil {
			continue
		}
		if desc, ok := catalog.AwarenessDescriptions[*a.SelectedOption]; ok {
			return desc
		}
	}
	return ""
}
