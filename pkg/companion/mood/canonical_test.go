package mood

import (
	"testing"

	"eldercare-assist-be/pkg/companion"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input string
		want  companion.Mood
	}{
		{"😊 feeling great", companion.MoodHappy},
		{"happy", companion.MoodHappy},
		{"GOOD", companion.MoodHappy},
		{"wonderful day", companion.MoodHappy},
		{"sad", companion.MoodSad},
		{"feeling a bit down", companion.MoodSad},
		{"😢", companion.MoodSad},
		{"loved", companion.MoodLoved},
		{"my family is so caring", companion.MoodLoved},
		{"❤️", companion.MoodLoved},
		{"meh", companion.MoodNeutral},
		{"", companion.MoodNeutral},
		{"   ", companion.MoodNeutral},
		{"the cat knocked over a vase", companion.MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Canonicalize(tt.input); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, m := range []companion.Mood{companion.MoodHappy, companion.MoodNeutral, companion.MoodSad, companion.MoodLoved} {
		if got := Canonicalize(string(m)); got != m {
			t.Errorf("Canonicalize(%q) = %q, want unchanged", m, got)
		}
	}
}

func TestCanonicalizeGroupOrder(t *testing.T) {
	// Happy keywords are checked before Sad: mixed input resolves to
	// the earlier group.
	if got := Canonicalize("happy but a little sad"); got != companion.MoodHappy {
		t.Errorf("mixed input = %q, want Happy", got)
	}
}
