package catalog

import "testing"

func TestQuestionCountMatchesContract(t *testing.T) {
	if got := len(Questions()); got != TotalQuestions {
		t.Fatalf("len(Questions()) = %d, want %d", got, TotalQuestions)
	}
}

func TestEveryQuestionResolvesToTemplateKey(t *testing.T) {
	known := make(map[TemplateKey]bool, len(TemplateKeys))
	for _, k := range TemplateKeys {
		known[k] = true
	}
	for _, q := range Questions() {
		key, ok := TemplateKeyFor(q.ID)
		if !ok {
			t.Errorf("question %s: no template key", q.ID)
			continue
		}
		if !known[key] {
			t.Errorf("question %s: unknown template key %q", q.ID, key)
		}
	}
}

func TestManySectionsMapToDailyLife(t *testing.T) {
	// 日常生活分节由多个访谈小节汇入
	var feeders []string
	for _, s := range Sections() {
		if s.TemplateKey == SectionDailyLife {
			feeders = append(feeders, s.ID)
		}
	}
	if len(feeders) < 2 {
		t.Fatalf("daily_life fed by %d section(s), want at least 2", len(feeders))
	}
}

func TestQuestionByID(t *testing.T) {
	q, ok := QuestionByID("q_rel_who")
	if !ok {
		t.Fatal("q_rel_who not found")
	}
	if q.SectionID != "s_relationship" {
		t.Errorf("q_rel_who section = %q, want s_relationship", q.SectionID)
	}
	if _, ok := QuestionByID("q_nonexistent"); ok {
		t.Error("lookup of unknown id should fail")
	}
}

func TestQuestionsInSectionOrdered(t *testing.T) {
	for _, s := range Sections() {
		qs := QuestionsInSection(s.ID)
		if len(qs) == 0 {
			t.Errorf("section %s has no questions", s.ID)
			continue
		}
		for i := 1; i < len(qs); i++ {
			if qs[i-1].Order >= qs[i].Order {
				t.Errorf("section %s: questions out of order at %d", s.ID, i)
			}
		}
	}
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
		value      string
		want       string
	}{
		{"known option", AwarenessQuestionID, "gently_aware", "gently aware"},
		{"unknown value falls back to raw", AwarenessQuestionID, "mystery_mode", "mystery_mode"},
		{"unknown question falls back to raw", "q_nonexistent", "x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OptionLabel(tt.questionID, tt.value); got != tt.want {
				t.Errorf("OptionLabel(%q, %q) = %q, want %q", tt.questionID, tt.value, got, tt.want)
			}
		})
	}
}

func TestAwarenessDescriptionsCoverAllOptions(t *testing.T) {
	q, ok := QuestionByID(AwarenessQuestionID)
	if !ok {
		t.Fatal("awareness question not found")
	}
	for _, opt := range q.Options {
		if _, ok := AwarenessDescriptions[opt.Value]; !ok {
			t.Errorf("option %q has no behavioral description", opt.Value)
		}
	}
}
