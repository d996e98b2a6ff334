package risk

import (
	"strings"

	"eldercare-assist-be/pkg/companion"
)

// Keyword groups scored over a transcript. Happy keywords are counted
// but only the negative groups drive the risk level.
var (
	sadKeywords = []string{
		"sad", "unhappy", "depressed", "lonely", "upset",
		"crying", "hurt", "pain", "worse", "terrible",
	}
	anxiousKeywords = []string{
		"worried", "anxious", "scared", "afraid", "nervous",
		"stress", "panic",
	}
	happyKeywords = []string{
		"happy", "good", "great", "wonderful", "excited",
		"joy", "better", "well",
	}
)

// Scores holds the per-group counts for one transcript.
type Scores struct {
	Sad     int
	Anxious int
	Happy   int
}

// Score counts keyword-group hits over a transcript.
func Score(transcript string) Scores {
	lower := strings.ToLower(transcript)
	return Scores{
		Sad:     countHits(lower, sadKeywords),
		Anxious: countHits(lower, anxiousKeywords),
		Happy:   countHits(lower, happyKeywords),
	}
}

// Level maps scores onto a risk level: HIGH on three or more negative
// indicators, MEDIUM on at least one, LOW otherwise.
func (s Scores) Level() companion.RiskLevel {
	negative := s.Sad + s.Anxious
	switch {
	case negative >= 3:
		return companion.RiskHigh
	case negative >= 1:
		return companion.RiskMedium
	default:
		return companion.RiskLow
	}
}

// Assess is the one-shot transcript-to-level helper.
func Assess(transcript string) companion.RiskLevel {
	return Score(transcript).Level()
}

func countHits(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
