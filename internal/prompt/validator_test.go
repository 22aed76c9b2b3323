package prompt

import (
	"testing"

	"memoria_backend/internal/catalog"
)

func metaWithMissing(total int, missing ...catalog.TemplateKey) Meta {
	m := Meta{TotalAnswers: total}
	for _, k := range missing {
		m.MissingSections = append(m.MissingSections, string(k))
	}
	return m
}

func countLevel(ws []Warning, level WarningLevel) int {
	n := 0
	for _, w := range ws {
		if w.Level == level {
			n++
		}
	}
	return n
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		meta          Meta
		wantCritical  int
		wantWarnings  int
	}{
		{
			name:         "complete hydration",
			meta:         metaWithMissing(24),
			wantCritical: 0, wantWarnings: 0,
		},
		{
			name:         "missing boundaries is critical",
			meta:         metaWithMissing(20, catalog.SectionBoundaries),
			wantCritical: 1, wantWarnings: 0,
		},
		{
			name:         "missing awareness is critical",
			meta:         metaWithMissing(20, catalog.SectionPresentAwareness),
			wantCritical: 1, wantWarnings: 0,
		},
		{
			name:         "missing personality is advisory",
			meta:         metaWithMissing(20, catalog.SectionCorePersonality),
			wantCritical: 0, wantWarnings: 1,
		},
		{
			name:         "near-empty persona flagged",
			meta:         metaWithMissing(2),
			wantCritical: 0, wantWarnings: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := Validate(tt.meta)
			if got := countLevel(ws, LevelCritical); got != tt.wantCritical {
				t.Errorf("critical = %d, want %d (%v)", got, tt.wantCritical, ws)
			}
			if got := countLevel(ws, LevelWarning); got != tt.wantWarnings {
				t.Errorf("warning = %d, want %d (%v)", got, tt.wantWarnings, ws)
			}
		})
	}
}
