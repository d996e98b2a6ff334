package emotion

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/classify"
	"eldercare-assist-be/pkg/speech"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArbiter(provider speech.Provider) *Arbiter {
	return NewArbiter(classify.New(), provider, log.New(io.Discard, "", 0))
}

// stressedAudio sits in the highest energy band of the simulated
// provider (mean |sample| >= 0.8).
func stressedAudio() []float32 {
	samples := make([]float32, 160)
	for i := range samples {
		samples[i] = 0.9
	}
	return samples
}

// quietAudio stays below the provider's lowest band, which yields
// confidence under the accept floor.
func quietAudio() []float32 {
	return make([]float32, 160)
}

func TestResolveAudioWins(t *testing.T) {
	a := newTestArbiter(speech.NewSimulatedProvider())

	sig, err := a.Resolve(context.Background(), companion.Utterance{
		Text:       "I feel wonderful",
		Audio:      stressedAudio(),
		SampleRate: 16000,
	})

	require.NoError(t, err)
	assert.Equal(t, companion.SourceAudio, sig.Source)
	assert.Equal(t, companion.EmotionStressed, sig.Label)
	assert.Equal(t, 0.85, sig.Confidence)
}

func TestResolveAudioTimeoutFallsBackToText(t *testing.T) {
	provider := speech.NewSimulatedProvider()
	provider.Latency = 200 * time.Millisecond // well past the 50ms budget
	a := newTestArbiter(provider)

	start := time.Now()
	sig, err := a.Resolve(context.Background(), companion.Utterance{
		Text:       "I'm so sad and lonely",
		Audio:      stressedAudio(),
		SampleRate: 16000,
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, companion.SourceText, sig.Source)
	assert.Equal(t, companion.EmotionSad, sig.Label)
	assert.Less(t, elapsed, 150*time.Millisecond, "arbiter must not wait out a slow provider")
}

func TestResolveLowAudioConfidenceFallsBackToText(t *testing.T) {
	a := newTestArbiter(speech.NewSimulatedProvider())

	sig, err := a.Resolve(context.Background(), companion.Utterance{
		Text:       "I am happy today",
		Audio:      quietAudio(),
		SampleRate: 16000,
	})

	require.NoError(t, err)
	assert.Equal(t, companion.SourceText, sig.Source)
	assert.Equal(t, companion.EmotionHappy, sig.Label)
}

func TestResolveAudioErrorFallsBackToText(t *testing.T) {
	provider := speech.NewSimulatedProvider()
	provider.Err = errors.New("model unavailable")
	a := newTestArbiter(provider)

	sig, err := a.Resolve(context.Background(), companion.Utterance{
		Text:       "I'm worried about my medication",
		Audio:      stressedAudio(),
		SampleRate: 16000,
	})

	require.NoError(t, err)
	assert.Equal(t, companion.SourceText, sig.Source)
	assert.Equal(t, companion.EmotionStressed, sig.Label)
}

func TestResolveTextOnly(t *testing.T) {
	a := newTestArbiter(speech.NewSimulatedProvider())

	sig, err := a.Resolve(context.Background(), companion.Utterance{Text: "thank you, that was lovely"})

	require.NoError(t, err)
	assert.Equal(t, companion.SourceText, sig.Source)
	assert.Equal(t, companion.EmotionHappy, sig.Label)
}

func TestResolveNeutralTextIsNotAnError(t *testing.T) {
	a := newTestArbiter(speech.NewSimulatedProvider())

	sig, err := a.Resolve(context.Background(), companion.Utterance{Text: "the bus arrives at nine"})

	require.NoError(t, err)
	assert.Equal(t, companion.EmotionNeutral, sig.Label)
	assert.Equal(t, 0.6, sig.Confidence)
}

func TestResolveNoUsableSource(t *testing.T) {
	provider := speech.NewSimulatedProvider()
	provider.Err = errors.New("model unavailable")
	a := newTestArbiter(provider)

	sig, err := a.Resolve(context.Background(), companion.Utterance{Audio: stressedAudio(), SampleRate: 16000})

	assert.Nil(t, sig)
	assert.ErrorIs(t, err, ErrNoSignal)
}
