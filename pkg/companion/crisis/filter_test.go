package crisis

import (
	"testing"

	"eldercare-assist-be/pkg/companion"
)

func TestScan(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		name        string
		text        string
		wantFound   bool
		wantPhrases []string
	}{
		{
			name:        "direct ideation",
			text:        "I want to end my life",
			wantFound:   true,
			wantPhrases: []string{"end my life"},
		},
		{
			name:        "embedded in longer sentence",
			text:        "sometimes I think about suicide when I'm alone",
			wantFound:   true,
			wantPhrases: []string{"suicide"},
		},
		{
			name:        "uppercase input",
			text:        "I WANT TO DIE",
			wantFound:   true,
			wantPhrases: []string{"want to die"},
		},
		{
			name:      "ordinary sadness is not a crisis",
			text:      "I'm feeling very sad and lonely today",
			wantFound: false,
		},
		{
			name:      "empty text",
			text:      "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phrases, found := f.Scan(tt.text)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if len(phrases) != len(tt.wantPhrases) {
				t.Fatalf("phrases = %v, want %v", phrases, tt.wantPhrases)
			}
			for i, p := range tt.wantPhrases {
				if phrases[i] != p {
					t.Errorf("phrases[%d] = %q, want %q", i, phrases[i], p)
				}
			}
		})
	}
}

func TestScanMultiplePhrases(t *testing.T) {
	f := NewFilter()

	phrases, found := f.Scan("I'm suicidal and I want to die")
	if !found {
		t.Fatal("expected crisis detection")
	}
	if len(phrases) != 2 {
		t.Errorf("phrases = %v, want [suicidal, want to die]", phrases)
	}
}

func TestEscalate(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		name     string
		in       companion.Signal
		wantConf float64
	}{
		{
			name:     "low confidence raised to floor",
			in:       companion.Signal{Kind: companion.SignalEmotion, Label: companion.EmotionSad, Confidence: 0.55, Source: companion.SourceText},
			wantConf: 0.90,
		},
		{
			name:     "higher confidence preserved",
			in:       companion.Signal{Kind: companion.SignalEmotion, Label: companion.EmotionStressed, Confidence: 0.94, Source: companion.SourceText},
			wantConf: 0.94,
		},
		{
			name:     "neutral signal rewritten",
			in:       companion.Signal{Kind: companion.SignalEmotion, Label: companion.EmotionNeutral, Confidence: 0.6, Source: companion.SourceAudio},
			wantConf: 0.90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := tt.in
			f.Escalate(&sig)

			if sig.Label != companion.EmotionStressed {
				t.Errorf("Label = %q, want Stressed", sig.Label)
			}
			if sig.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", sig.Confidence, tt.wantConf)
			}
			if !sig.Critical {
				t.Error("Critical must be set after escalation")
			}
			if sig.Source != tt.in.Source {
				t.Errorf("Source changed from %q to %q", tt.in.Source, sig.Source)
			}
		})
	}
}
