package repository

import (
	"testing"

	"memoria_backend/internal/model"
)

func sp(s string) *string { return &s }

func TestApplyAnswerPatchMerges(t *testing.T) {
	cases := []struct {
		name       string
		existing   model.OnboardingAnswer
		patch      AnswerPatch
		wantText   *string
		wantVoice  *string
		wantOption *string
	}{
		{
			name:       "empty patch preserves everything",
			existing:   model.OnboardingAnswer{TextResponse: sp("old"), SelectedOption: sp("warm")},
			patch:      AnswerPatch{},
			wantText:   sp("old"),
			wantOption: sp("warm"),
		},
		{
			name:      "text update keeps transcript",
			existing:  model.OnboardingAnswer{VoiceTranscript: sp("spoken")},
			patch:     AnswerPatch{TextResponse: sp("typed")},
			wantText:  sp("typed"),
			wantVoice: sp("spoken"),
		},
		{
			name:     "explicit empty string clears the field",
			existing: model.OnboardingAnswer{TextResponse: sp("old")},
			patch:    AnswerPatch{TextResponse: sp("")},
			wantText: sp(""),
		},
		{
			name:       "all fields overwritten",
			existing:   model.OnboardingAnswer{TextResponse: sp("a"), VoiceTranscript: sp("b"), SelectedOption: sp("c")},
			patch:      AnswerPatch{TextResponse: sp("x"), VoiceTranscript: sp("y"), SelectedOption: sp("z")},
			wantText:   sp("x"),
			wantVoice:  sp("y"),
			wantOption: sp("z"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.existing
			applyAnswerPatch(&a, tc.patch)
			checkField(t, "TextResponse", a.TextResponse, tc.wantText)
			checkField(t, "VoiceTranscript", a.VoiceTranscript, tc.wantVoice)
			checkField(t, "SelectedOption", a.SelectedOption, tc.wantOption)
		})
	}
}

func checkField(t *testing.T, name string, got, want *string) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s = %q, want nil", name, *got)
	case want != nil && got == nil:
		t.Errorf("%s = nil, want %q", name, *want)
	case want != nil && got != nil && *got != *want:
		t.Errorf("%s = %q, want %q", name, *got, *want)
	}
}

// 补丁不得触碰媒体列表
func TestApplyAnswerPatchLeavesMediaAlone(t *testing.T) {
	a := model.OnboardingAnswer{Photos: model.MediaList{{ID: "m1", Path: "a.jpg"}}}
	applyAnswerPatch(&a, AnswerPatch{TextResponse: sp("hello")})
	if len(a.Photos) != 1 || a.Photos[0].ID != "m1" {
		t.Errorf("photos = %v, patch must not modify media", a.Photos)
	}
}
