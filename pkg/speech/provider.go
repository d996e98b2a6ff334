package speech

import "context"

// EmotionResult is a raw audio-inference output before arbitration.
type EmotionResult struct {
	Label      string
	Confidence float64
}

// Provider defines the contract for any speech backend. Recognition and
// playback are external collaborators; the pipeline only consumes text
// and emits response strings through this boundary.
type Provider interface {
	// Transcribe converts raw audio samples into text.
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error)

	// Speak hands a plain response string to the playback collaborator.
	Speak(ctx context.Context, text string) error

	// InferAudioEmotion runs the audio emotion model over raw samples.
	// Callers enforce the latency budget via ctx.
	InferAudioEmotion(ctx context.Context, samples []float32, sampleRate int) (EmotionResult, error)
}
