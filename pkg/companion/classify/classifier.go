package classify

import (
	"strings"

	"eldercare-assist-be/pkg/companion"
)

// Pattern is one entry in a data-driven label table.
// Critical marks self-harm phrases: they weigh heavier and push
// confidence into the escalation band.
type Pattern struct {
	Phrase   string
	Weight   int
	Critical bool
}

// LabelSet is an ordered pattern table for a single label. Order of the
// sets inside a space is the tie-break order: the first label to reach
// the top score wins.
type LabelSet struct {
	Label    string
	Patterns []Pattern
}

// Result carries the best label per independent space for one utterance.
type Result struct {
	Intent            string
	IntentMatches     int
	IntentConfidence  float64
	Emotion           string
	EmotionMatches    int
	EmotionConfidence float64
	Critical          bool
}

// Classifier scores utterance text against intent and emotion tables.
// It is a pure function of its tables; no side effects.
type Classifier struct {
	intents  []LabelSet
	emotions []LabelSet
}

// New builds a classifier with the default eldercare label tables.
func New() *Classifier {
	return &Classifier{
		intents:  defaultIntentSets(),
		emotions: defaultEmotionSets(),
	}
}

// NewWithTables builds a classifier over caller-supplied tables, used by
// property tests over arbitrary pattern sets.
func NewWithTables(intents, emotions []LabelSet) *Classifier {
	return &Classifier{intents: intents, emotions: emotions}
}

// Classify scores the utterance against both label spaces.
// All-zero scores fall back to intent=none and emotion=Neutral (0.6).
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	intent, intentMatches, _, _ := bestLabel(c.intents, lower)
	emotion, emotionMatches, _, emotionCritical := bestLabel(c.emotions, lower)

	res := Result{Critical: emotionCritical}

	if intentMatches == 0 {
		res.Intent = companion.IntentNone
		res.IntentConfidence = 0
	} else {
		res.Intent = intent
		res.IntentMatches = intentMatches
		res.IntentConfidence = confidence(intentMatches, false)
	}

	if emotionMatches == 0 {
		res.Emotion = companion.EmotionNeutral
		res.EmotionConfidence = 0.6
	} else {
		res.Emotion = emotion
		res.EmotionMatches = emotionMatches
		res.EmotionConfidence = confidence(emotionMatches, emotionCritical)
	}

	return res
}

// IntentSignal converts a result's intent side into a Signal.
func (r Result) IntentSignal() *companion.Signal {
	return &companion.Signal{
		Kind:       companion.SignalIntent,
		Label:      r.Intent,
		Confidence: companion.ClampConfidence(r.IntentConfidence),
		Source:     companion.SourceText,
	}
}

// EmotionSignal converts a result's emotion side into a Signal.
func (r Result) EmotionSignal() *companion.Signal {
	return &companion.Signal{
		Kind:       companion.SignalEmotion,
		Label:      r.Emotion,
		Confidence: companion.ClampConfidence(r.EmotionConfidence),
		Source:     companion.SourceText,
		Critical:   r.Critical,
	}
}

// bestLabel evaluates every set in order and returns the winning label,
// its distinct match count, its weighted score and whether a critical
// pattern matched on the winner. Ties keep the earlier label.
func bestLabel(sets []LabelSet, lower string) (label string, matches, score int, critical bool) {
	bestScore := 0
	for _, set := range sets {
		m, s, crit := scoreSet(set, lower)
		if s > bestScore {
			bestScore = s
			label = set.Label
			matches = m
			score = s
			critical = crit
		}
	}
	return label, matches, score, critical
}

func scoreSet(set LabelSet, lower string) (matches, score int, critical bool) {
	for _, p := range set.Patterns {
		if strings.Contains(lower, p.Phrase) {
			matches++
			score += p.Weight
			if p.Critical {
				critical = true
			}
		}
	}
	return matches, score, critical
}

// confidence maps a distinct-match count into [0,1].
// Ordinary matches sit in the 0.50-0.85 band, critical matches in the
// 0.90-0.98 escalation band.
func confidence(matchCount int, critical bool) float64 {
	if critical {
		c := 0.90 + float64(matchCount)*0.02
		if c > 0.98 {
			c = 0.98
		}
		return c
	}
	c := 0.5 + float64(matchCount)*0.1
	if c > 0.85 {
		c = 0.85
	}
	return c
}
