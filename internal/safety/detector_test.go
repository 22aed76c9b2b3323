package safety

import "testing"

func TestPatternDetector(t *testing.T) {
	d := NewPatternDetector()

	tests := []struct {
		name    string
		message string
		want    []Flag
	}{
		{"neutral message", "Tell me about the lake house again", nil},
		{"self harm", "sometimes I think about killing myself", []Flag{FlagSelfHarm}},
		{"no will to live", "I don't want to be here anymore", []Flag{FlagSelfHarm}},
		{"panic", "I'm scared, I can't breathe", []Flag{FlagPanic}},
		{"flooding", "I can't stop crying since the funeral", []Flag{FlagFlooding}},
		{"exclusivity", "you're the only one who understands me", []Flag{FlagExclusivity}},
		{"prefers persona to people", "I'd rather talk to you than real people", []Flag{FlagExclusivity}},
		{"attachment", "please don't ever leave me", []Flag{FlagAttachment}},
		{"case insensitive", "YOU'RE ALL I HAVE", []Flag{FlagExclusivity}},
		{"multiple families", "I can't breathe and you're all I have", []Flag{FlagPanic, FlagExclusivity}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.message)
			if len(got) != len(tt.want) {
				t.Fatalf("Detect(%q) = %v, want %v", tt.message, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Detect(%q)[%d] = %v, want %v", tt.message, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFlagClassification(t *testing.T) {
	distress := []Flag{FlagSelfHarm, FlagPanic, FlagFlooding}
	for _, f := range distress {
		if !f.IsDistress() || f.IsDependency() {
			t.Errorf("%s misclassified", f)
		}
	}
	dependency := []Flag{FlagExclusivity, FlagAttachment}
	for _, f := range dependency {
		if !f.IsDependency() || f.IsDistress() {
			t.Errorf("%s misclassified", f)
		}
	}
}
