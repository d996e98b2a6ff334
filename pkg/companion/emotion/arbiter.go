package emotion

import (
	"context"
	"errors"
	"log"
	"time"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/classify"
	"eldercare-assist-be/pkg/speech"
)

const (
	// audioBudget is the hard latency limit for audio inference.
	// Exceeding it counts as a timeout and the result is discarded.
	audioBudget = 50 * time.Millisecond

	// acceptFloor is the minimum audio confidence worth keeping.
	acceptFloor = 0.4
)

// ErrNoSignal means both the audio and text paths failed. Callers must
// take no action on it; defaulting to Neutral would mask the failure as
// a benign mood.
var ErrNoSignal = errors.New("emotion: no usable source for utterance")

// Arbiter chooses between bounded-latency audio inference and the text
// classifier fallback, producing exactly one emotion Signal per
// utterance.
type Arbiter struct {
	classifier *classify.Classifier
	provider   speech.Provider
	logger     *log.Logger
}

func NewArbiter(classifier *classify.Classifier, provider speech.Provider, logger *log.Logger) *Arbiter {
	return &Arbiter{
		classifier: classifier,
		provider:   provider,
		logger:     logger,
	}
}

// Resolve derives the emotion signal for one utterance. Audio wins when
// it answers inside the budget with acceptable confidence; otherwise the
// text classifier is used. Both paths failing returns ErrNoSignal.
func (a *Arbiter) Resolve(ctx context.Context, utt companion.Utterance) (*companion.Signal, error) {
	if len(utt.Audio) > 0 && a.provider != nil {
		if sig := a.tryAudio(ctx, utt); sig != nil {
			return sig, nil
		}
	}

	if utt.Text == "" {
		return nil, ErrNoSignal
	}

	res := a.classifier.Classify(utt.Text)
	return res.EmotionSignal(), nil
}

func (a *Arbiter) tryAudio(ctx context.Context, utt companion.Utterance) *companion.Signal {
	budgetCtx, cancel := context.WithTimeout(ctx, audioBudget)
	defer cancel()

	type inference struct {
		res speech.EmotionResult
		err error
	}
	done := make(chan inference, 1)
	go func() {
		res, err := a.provider.InferAudioEmotion(budgetCtx, utt.Audio, utt.SampleRate)
		done <- inference{res: res, err: err}
	}()

	select {
	case <-budgetCtx.Done():
		a.logger.Printf("[EMOTION] audio inference exceeded %s budget, falling back to text", audioBudget)
		return nil
	case inf := <-done:
		if inf.err != nil {
			a.logger.Printf("[EMOTION] audio inference failed: %v", inf.err)
			return nil
		}
		if inf.res.Confidence < acceptFloor {
			a.logger.Printf("[EMOTION] audio confidence %.2f below %.2f floor, falling back to text", inf.res.Confidence, acceptFloor)
			return nil
		}
		return &companion.Signal{
			Kind:       companion.SignalEmotion,
			Label:      inf.res.Label,
			Confidence: companion.ClampConfidence(inf.res.Confidence),
			Source:     companion.SourceAudio,
		}
	}
}
