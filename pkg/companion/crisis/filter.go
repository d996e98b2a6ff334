package crisis

import (
	"strings"

	"eldercare-assist-be/pkg/companion"
)

// escalationFloor is the minimum confidence a crisis-escalated signal
// carries. Detection fails toward over-alerting.
const escalationFloor = 0.90

// Filter detects self-harm/suicidal-ideation phrases in raw utterance
// text and force-escalates the resulting signal. It always runs before
// any alerting decision and is never suppressed by cooldown logic.
type Filter struct {
	phrases []string
}

// NewFilter builds a filter over the fixed crisis phrase list.
func NewFilter() *Filter {
	return &Filter{phrases: companion.CrisisPhrases()}
}

// Scan reports the crisis phrases present in text, if any.
func (f *Filter) Scan(text string) ([]string, bool) {
	lower := strings.ToLower(text)
	var matched []string
	for _, p := range f.phrases {
		if strings.Contains(lower, p) {
			matched = append(matched, p)
		}
	}
	return matched, len(matched) > 0
}

// Escalate rewrites a signal into its crisis form: emotion Stressed,
// confidence at least 0.90, critical set.
func (f *Filter) Escalate(sig *companion.Signal) {
	sig.Kind = companion.SignalEmotion
	sig.Label = companion.EmotionStressed
	if sig.Confidence < escalationFloor {
		sig.Confidence = escalationFloor
	}
	sig.Critical = true
}
