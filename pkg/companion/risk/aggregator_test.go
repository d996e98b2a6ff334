package risk

import (
	"testing"

	"eldercare-assist-be/pkg/companion"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name string
		text string
		want companion.RiskLevel
	}{
		{
			name: "no indicators",
			text: "the garden looks nice this morning",
			want: companion.RiskLow,
		},
		{
			name: "positive words only",
			text: "I had a wonderful day, feeling great",
			want: companion.RiskLow,
		},
		{
			name: "one sad indicator",
			text: "I've been feeling lonely",
			want: companion.RiskMedium,
		},
		{
			name: "two mixed indicators",
			text: "I'm lonely and worried",
			want: companion.RiskMedium,
		},
		{
			name: "three indicators crosses high",
			text: "I'm sad and lonely, and the pain is getting worse",
			want: companion.RiskHigh,
		},
		{
			name: "anxious pile-up",
			text: "I'm so worried and scared, this stress is too much",
			want: companion.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assess(tt.text); got != tt.want {
				t.Errorf("Assess(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestScoreCounts(t *testing.T) {
	s := Score("I'm sad and lonely but my grandson makes me happy")
	if s.Sad != 2 {
		t.Errorf("Sad = %d, want 2", s.Sad)
	}
	if s.Anxious != 0 {
		t.Errorf("Anxious = %d, want 0", s.Anxious)
	}
	if s.Happy != 1 {
		t.Errorf("Happy = %d, want 1", s.Happy)
	}
}

func TestHappyDoesNotOffsetNegatives(t *testing.T) {
	// Positive keywords never subtract from the negative count.
	got := Assess("I'm happy sometimes but mostly sad, lonely and worried")
	if got != companion.RiskHigh {
		t.Errorf("risk = %q, want HIGH", got)
	}
}

func TestMaxRiskMonotonic(t *testing.T) {
	got := companion.MaxRisk(companion.RiskHigh, companion.RiskLow)
	if got != companion.RiskHigh {
		t.Errorf("MaxRisk(HIGH, LOW) = %q, want HIGH", got)
	}
	got = companion.MaxRisk(companion.RiskLow, companion.RiskMedium)
	if got != companion.RiskMedium {
		t.Errorf("MaxRisk(LOW, MEDIUM) = %q, want MEDIUM", got)
	}
}
