package prompt

import (
	"strings"
	"testing"

	"memoria_backend/internal/catalog"
	"memoria_backend/internal/model"
)

func strPtr(s string) *string { return &s }

func answer(questionID string, patch func(*model.OnboardingAnswer)) model.OnboardingAnswer {
	a := model.OnboardingAnswer{QuestionID: questionID}
	patch(&a)
	return a
}

func textAnswer(questionID, text string) model.OnboardingAnswer {
	return answer(questionID, func(a *model.OnboardingAnswer) { a.TextResponse = strPtr(text) })
}

func optionAnswer(questionID, value string) model.OnboardingAnswer {
	return answer(questionID, func(a *model.OnboardingAnswer) { a.SelectedOption = strPtr(value) })
}

func TestHydrateEmptyAnswersYieldsTemplateDefaults(t *testing.T) {
	res := Hydrate("p1", "", nil)

	if strings.Contains(res.Prompt, "{{SECTION_") {
		t.Errorf("prompt contains unresolved markers:\n%s", res.Prompt)
	}
	if !strings.Contains(res.Prompt, "## How to be") {
		t.Error("template default behavior block missing")
	}
	if len(res.Meta.InjectedSections) != 0 {
		t.Errorf("injected = %v, want none", res.Meta.InjectedSections)
	}
	if len(res.Meta.MissingSections) != len(catalog.TemplateKeys) {
		t.Errorf("missing = %d sections, want %d", len(res.Meta.MissingSections), len(catalog.TemplateKeys))
	}
}

func TestHydrateIdentityLine(t *testing.T) {
	res := Hydrate("p1", "Maria", nil)
	if !strings.HasPrefix(res.Prompt, "You are Maria. You speak as Maria would.\n\n") {
		t.Errorf("identity line missing or malformed:\n%s", res.Prompt[:min(len(res.Prompt), 120)])
	}

	anon := Hydrate("p1", "", nil)
	if strings.Contains(anon.Prompt, "You speak as") {
		t.Error("identity line must be omitted when persona has no name")
	}
}

// 对应产品场景：母亲人格 Maria，温和感知模式
func TestHydrateInjectsAwarenessDirective(t *testing.T) {
	answers := []model.OnboardingAnswer{
		textAnswer("q_rel_who", "She was my mother, we talked every single day."),
		optionAnswer(catalog.AwarenessQuestionID, "gently_aware"),
	}
	res := Hydrate("p1", "Maria", answers)

	if !strings.Contains(res.Prompt, "gently aware — indirect language") {
		t.Error("awareness behavioral description not injected")
	}
	if !strings.Contains(res.Prompt, "Hold to this:") {
		t.Error("awareness directive prefix missing")
	}
	if !strings.Contains(res.Prompt, "She was my mother") {
		t.Error("relationship answer not injected")
	}
}

func TestHydrateMissingSectionLeavesNoTrace(t *testing.T) {
	answers := []model.OnboardingAnswer{
		textAnswer("q_rel_who", "My grandfather."),
	}
	res := Hydrate("p1", "", answers)

	// 未作答分节的标记连同标题一起消失
	if strings.Contains(res.Prompt, "## Memories you carry") {
		t.Error("header for empty section should not appear")
	}
	if strings.Contains(res.Prompt, "{{SECTION_") {
		t.Error("unresolved marker left in prompt")
	}
	if !strings.Contains(res.Prompt, "## Your relationship with this person") {
		t.Error("answered section header missing")
	}
}

func TestHydrateDeterministic(t *testing.T) {
	answers := []model.OnboardingAnswer{
		textAnswer("q_rel_who", "My sister."),
		textAnswer("q_pers_traits", "Stubborn and kind."),
		optionAnswer("q_voice_length", "short"),
	}
	a := Hydrate("p1", "Ana", answers)
	b := Hydrate("p1", "Ana", answers)
	if a.Prompt != b.Prompt {
		t.Error("same inputs must produce identical prompts")
	}
}

// 创建者文本长得像标记也不会被二次替换
func TestHydrateDoesNotReprocessInjectedContent(t *testing.T) {
	answers := []model.OnboardingAnswer{
		textAnswer("q_rel_who", "He always wrote {{SECTION_BOUNDARIES}} as a joke."),
	}
	res := Hydrate("p1", "", answers)
	if !strings.Contains(res.Prompt, "{{SECTION_BOUNDARIES}} as a joke") {
		t.Error("creator text resembling a marker must survive verbatim")
	}
	// 真正的边界分节槽位仍被正常移除：只有创建者写的那一处
	if n := strings.Count(res.Prompt, "{{SECTION_BOUNDARIES}}"); n != 1 {
		t.Errorf("marker-like text occurs %d times, want exactly 1", n)
	}
}

func TestHydrateMetaCountsMeaningfulOnly(t *testing.T) {
	answers := []model.OnboardingAnswer{
		textAnswer("q_rel_who", "My father."),
		{QuestionID: "q_pers_traits"}, // 空记录不计
	}
	res := Hydrate("p1", "", answers)
	if res.Meta.TotalAnswers != 1 {
		t.Errorf("TotalAnswers = %d, want 1", res.Meta.TotalAnswers)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
