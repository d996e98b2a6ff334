package classify

import "eldercare-assist-be/pkg/companion"

// safetyWeight is applied to safety-critical patterns so a single match
// dominates any pile-up of ordinary keywords.
const safetyWeight = 5

// defaultIntentSets orders sos before note: on a tie the emergency
// reading wins, because crisis handling prefers over-alerting.
func defaultIntentSets() []LabelSet {
	return []LabelSet{
		{
			Label: companion.IntentSOS,
			Patterns: []Pattern{
				{Phrase: "help", Weight: safetyWeight},
				{Phrase: "emergency", Weight: safetyWeight},
				{Phrase: "sos", Weight: safetyWeight},
				{Phrase: "call for help", Weight: safetyWeight},
				{Phrase: "call my caregiver", Weight: safetyWeight},
			},
		},
		{
			Label: companion.IntentNote,
			Patterns: []Pattern{
				{Phrase: "create a note", Weight: 1},
				{Phrase: "take a note", Weight: 1},
				{Phrase: "make a note", Weight: 1},
				{Phrase: "note that", Weight: 1},
				{Phrase: "write down", Weight: 1},
			},
		},
	}
}

// defaultEmotionSets orders Happy, Sad, Stressed; ties keep the earlier
// label, matching the original detector's precedence.
func defaultEmotionSets() []LabelSet {
	return []LabelSet{
		{
			Label: companion.EmotionHappy,
			Patterns: plain(
				"happy", "great", "wonderful", "excellent", "good",
				"love", "thank", "appreciate", "pleased", "delighted",
				"joy", "excited",
			),
		},
		{
			Label: companion.EmotionSad,
			Patterns: plain(
				"sad", "depressed", "unhappy", "miserable", "sorry",
				"upset", "disappointed", "lonely", "down", "blue",
				"crying", "miss",
			),
		},
		{
			Label: companion.EmotionStressed,
			Patterns: append(plain(
				"stressed", "anxious", "worried", "nervous", "panic",
				"afraid", "scared", "overwhelmed", "pressure", "tense",
				"frustrated", "angry", "no reason to live",
			), criticalPatterns()...),
		},
	}
}

// criticalPatterns is the fixed self-harm phrase list shared with the
// crisis filter. Any match forces escalation-band confidence.
func criticalPatterns() []Pattern {
	out := make([]Pattern, 0, len(companion.CrisisPhrases()))
	for _, phrase := range companion.CrisisPhrases() {
		out = append(out, Pattern{Phrase: phrase, Weight: safetyWeight, Critical: true})
	}
	return out
}

func plain(phrases ...string) []Pattern {
	out := make([]Pattern, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, Pattern{Phrase: p, Weight: 1})
	}
	return out
}
