package service

import (
	"reflect"
	"testing"

	"memoria_backend/internal/catalog"
	"memoria_backend/internal/model"
)

func strPtr(s string) *string { return &s }

func TestComputeProgressEmpty(t *testing.T) {
	p := ComputeProgress(nil)
	if p.AnsweredCount != 0 || p.PercentComplete != 0 {
		t.Errorf("progress = %+v, want zero", p)
	}
	if p.TotalQuestions != catalog.TotalQuestions {
		t.Errorf("total = %d, want %d", p.TotalQuestions, catalog.TotalQuestions)
	}
	if p.AnsweredQuestionIDs == nil || len(p.AnsweredQuestionIDs) != 0 {
		t.Errorf("answered IDs = %v, want empty non-nil slice", p.AnsweredQuestionIDs)
	}
}

// 只有实际携带内容的回答计入进度
func TestComputeProgressCountsMeaningfulOnly(t *testing.T) {
	answers := []model.OnboardingAnswer{
		{QuestionID: "q_full_name", TextResponse: strPtr("Maria")},
		{QuestionID: "q_nickname", TextResponse: strPtr("")},
		{QuestionID: "q_humor", SelectedOption: strPtr("warm")},
		{QuestionID: "q_voice_memory", VoiceTranscript: strPtr("She laughed a lot")},
		{QuestionID: "q_favorite_place"},
		{QuestionID: "q_photos", Photos: model.MediaList{{Path: "a.jpg"}}},
	}

	p := ComputeProgress(answers)
	if p.AnsweredCount != 4 {
		t.Fatalf("answered = %d, want 4", p.AnsweredCount)
	}
	wantIDs := []string{"q_full_name", "q_humor", "q_voice_memory", "q_photos"}
	if !reflect.DeepEqual(p.AnsweredQuestionIDs, wantIDs) {
		t.Errorf("IDs = %v, want %v", p.AnsweredQuestionIDs, wantIDs)
	}
	// 4/24 四舍五入
	if p.PercentComplete != 17 {
		t.Errorf("percent = %d, want 17", p.PercentComplete)
	}
}

// 新增一条有内容的回答后，计数与百分比都不得下降
func TestComputeProgressMonotonic(t *testing.T) {
	answers := []model.OnboardingAnswer{
		{QuestionID: "q_full_name", TextResponse: strPtr("Maria")},
		{QuestionID: "q_nickname"},
	}
	before := ComputeProgress(answers)

	for i, q := range []string{"q_humor", "q_voice_memory", "q_favorite_place"} {
		answers = append(answers, model.OnboardingAnswer{QuestionID: q, TextResponse: strPtr("x")})
		after := ComputeProgress(answers)
		if after.AnsweredCount < before.AnsweredCount {
			t.Errorf("step %d: answered %d -> %d, fell", i, before.AnsweredCount, after.AnsweredCount)
		}
		if after.PercentComplete < before.PercentComplete {
			t.Errorf("step %d: percent %d -> %d, fell", i, before.PercentComplete, after.PercentComplete)
		}
		if after.AnsweredCount != before.AnsweredCount+1 {
			t.Errorf("step %d: answered = %d, want %d", i, after.AnsweredCount, before.AnsweredCount+1)
		}
		before = after
	}
}

func TestComputeProgressPercentRounds(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 4},
		{12, 50},
		{23, 96},
		{24, 100},
	}
	for _, tc := range cases {
		answers := make([]model.OnboardingAnswer, tc.count)
		for i := range answers {
			answers[i] = model.OnboardingAnswer{QuestionID: "q", TextResponse: strPtr("x")}
		}
		if got := ComputeProgress(answers).PercentComplete; got != tc.want {
			t.Errorf("percent(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}
