package speech

import (
	"context"
	"errors"
	"time"
)

// ErrNoAudio is returned when inference is attempted on an empty buffer.
var ErrNoAudio = errors.New("speech: empty audio buffer")

// SimulatedProvider is a deterministic stand-in for a real speech stack.
// Emotion inference derives its label from the mean sample energy, so
// the same buffer always yields the same result; Latency and Err make
// timeout and failure paths reproducible in tests.
type SimulatedProvider struct {
	Latency    time.Duration
	Err        error
	Transcript string // fixed transcript returned by Transcribe
}

// NewSimulatedProvider returns a provider with zero latency and no
// scripted failures.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

func (p *SimulatedProvider) Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	if p.Err != nil {
		return "", p.Err
	}
	return p.Transcript, nil
}

func (p *SimulatedProvider) Speak(ctx context.Context, text string) error {
	return p.wait(ctx)
}

func (p *SimulatedProvider) InferAudioEmotion(ctx context.Context, samples []float32, sampleRate int) (EmotionResult, error) {
	if err := p.wait(ctx); err != nil {
		return EmotionResult{}, err
	}
	if p.Err != nil {
		return EmotionResult{}, p.Err
	}
	if len(samples) == 0 {
		return EmotionResult{}, ErrNoAudio
	}

	var sum float64
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		sum += float64(s)
	}
	energy := sum / float64(len(samples))

	// Energy bands map to labels; confidence rises with distance from
	// the band edge so low-energy noise stays below the accept floor.
	switch {
	case energy < 0.1:
		return EmotionResult{Label: "Neutral", Confidence: 0.3}, nil
	case energy < 0.3:
		return EmotionResult{Label: "Neutral", Confidence: 0.55}, nil
	case energy < 0.6:
		return EmotionResult{Label: "Happy", Confidence: 0.7}, nil
	case energy < 0.8:
		return EmotionResult{Label: "Sad", Confidence: 0.75}, nil
	default:
		return EmotionResult{Label: "Stressed", Confidence: 0.85}, nil
	}
}

func (p *SimulatedProvider) wait(ctx context.Context) error {
	if p.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(p.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
