package prompt

import (
	"strings"
	"testing"

	"memoria_backend/internal/catalog"
	"memoria_backend/internal/model"
)

func TestFormatSectionNilWithoutMeaningfulAnswers(t *testing.T) {
	if got := FormatSection(catalog.SectionSharedMemories, nil); got != nil {
		t.Errorf("FormatSection(nil answers) = %v, want nil", got)
	}
	empty := []model.OnboardingAnswer{{QuestionID: "q_mem_favorite"}}
	if got := FormatSection(catalog.SectionSharedMemories, empty); got != nil {
		t.Errorf("FormatSection(empty answers) = %v, want nil", got)
	}
}

func TestFormatSectionCarriesOwnHeader(t *testing.T) {
	block := FormatSection(catalog.SectionSharedMemories, []model.OnboardingAnswer{
		textAnswer("q_mem_favorite", "The summer at the lake."),
	})
	if block == nil {
		t.Fatal("expected non-nil block")
	}
	if !strings.HasPrefix(block.Text, "## Memories you carry\n") {
		t.Errorf("block header missing:\n%s", block.Text)
	}
	if !strings.Contains(block.Text, "- A treasured memory: The summer at the lake.") {
		t.Errorf("answer line malformed:\n%s", block.Text)
	}
}

func TestExtractContentPrefersTranscript(t *testing.T) {
	a := answer("q_rel_who", func(a *model.OnboardingAnswer) {
		a.TextResponse = strPtr("typed version")
		a.VoiceTranscript = strPtr("spoken version")
	})
	got := extractContent(&a)
	if !strings.Contains(got, "spoken version") || strings.Contains(got, "typed version") {
		t.Errorf("extractContent = %q, transcript must win over typed text", got)
	}
}

func TestExtractContentResolvesOptionLabel(t *testing.T) {
	a := optionAnswer("q_voice_length", "short")
	got := extractContent(&a)
	if got == "short" || got == "" {
		// 必须解析为展示标签，不能注入原始值
		t.Errorf("extractContent = %q, want resolved label", got)
	}
}

func TestExtractContentMediaNote(t *testing.T) {
	a := answer("q_mem_favorite", func(a *model.OnboardingAnswer) {
		a.TextResponse = strPtr("Our trip.")
		a.Photos = model.MediaList{{ID: "m1"}, {ID: "m2"}}
		a.AudioClips = model.MediaList{{ID: "m3"}}
	})
	got := extractContent(&a)
	if !strings.Contains(got, "(attached: 2 photo(s), 1 audio clip(s))") {
		t.Errorf("extractContent = %q, media note malformed", got)
	}
}

func TestBoundariesBlockAlwaysCarriesOverride(t *testing.T) {
	block := FormatSection(catalog.SectionBoundaries, []model.OnboardingAnswer{
		textAnswer("q_bound_topics", "Never mention the accident."),
	})
	if block == nil {
		t.Fatal("expected non-nil block")
	}
	if !strings.Contains(block.Text, "These boundaries override all other behavior") {
		t.Errorf("override clause missing:\n%s", block.Text)
	}
}

func TestAwarenessAppendixOnlyWithRecognizedOption(t *testing.T) {
	unknown := FormatSection(catalog.SectionPresentAwareness, []model.OnboardingAnswer{
		optionAnswer(catalog.AwarenessQuestionID, "unrecognized"),
	})
	if unknown == nil {
		t.Fatal("expected non-nil block")
	}
	if strings.Contains(unknown.Text, "Hold to this:") {
		t.Error("unrecognized awareness value must not inject a directive")
	}
}
