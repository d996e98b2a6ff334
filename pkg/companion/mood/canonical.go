package mood

import (
	"strings"

	"eldercare-assist-be/pkg/companion"
)

// keywordGroup maps any member keyword onto one canonical mood.
type keywordGroup struct {
	mood     companion.Mood
	keywords []string
}

// groups are evaluated in order; the first matching group wins.
var groups = []keywordGroup{
	{
		mood: companion.MoodHappy,
		keywords: []string{
			"happy", "good", "great", "wonderful", "excellent", "joy",
			"😊", "🙂", "😄",
		},
	},
	{
		mood: companion.MoodSad,
		keywords: []string{
			"sad", "down", "unhappy", "depressed", "lonely",
			"😢", "☹️", "😞",
		},
	},
	{
		mood: companion.MoodLoved,
		keywords: []string{
			"loved", "love", "caring",
			"❤️", "💕", "💖",
		},
	},
}

// Canonicalize maps arbitrary mood input (free text, emoji, legacy
// label) onto the 4-value enum. Unmatched input is Neutral. The mapping
// is idempotent: every canonical value maps to itself.
func Canonicalize(input string) companion.Mood {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return companion.MoodNeutral
	}

	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(normalized, kw) {
				return g.mood
			}
		}
	}

	return companion.MoodNeutral
}
