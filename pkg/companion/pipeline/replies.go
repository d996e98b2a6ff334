package pipeline

import (
	"fmt"

	"eldercare-assist-be/pkg/companion"
)

const crisisReply = "I'm really concerned about what you just said. You matter, and help is available. I'm letting your caregiver know right now so someone can be with you."

// emotionReply returns a short spoken acknowledgement matched to the
// resolved emotion. Kept intentionally plain; the companion chat layer
// owns richer conversational replies.
func emotionReply(label string) string {
	switch label {
	case companion.EmotionHappy:
		return "I'm so glad to hear you're doing well!"
	case companion.EmotionSad:
		return "I'm sorry you're feeling down. I'm here with you, and I've let your caregiver know you could use some company."
	case companion.EmotionStressed:
		return "That sounds really hard. Take a slow breath with me. Your caregiver has been notified."
	default:
		return "Thanks for sharing that with me."
	}
}

func confirmationPrompt(actionType companion.ActionType, payload string) string {
	if actionType == companion.ActionSOS {
		return "It sounds like you need help. Should I alert your caregiver? Say yes or no."
	}
	return fmt.Sprintf("You'd like me to save a note: %q. Should I save it? Say yes or no.", payload)
}
