package confirm

import (
	"errors"
	"log"
	"strings"
	"time"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/store"
)

// DefaultTTL is how long a PendingAction waits for its answer before it
// expires back to Idle.
const DefaultTTL = 60 * time.Second

// ErrPendingExists guards the single confirmation slot: no second
// PendingAction can be created before the first resolves.
var ErrPendingExists = errors.New("confirm: a pending action is already awaiting confirmation")

// Answer is the parse of a confirmation reply.
type Answer int

const (
	AnswerUnclear Answer = iota
	AnswerYes
	AnswerNo
)

// Machine gates note-creation and SOS actions behind explicit yes/no.
// Transitions: Idle -> AwaitingConfirmation -> {Confirmed, Cancelled,
// Expired} -> Idle.
type Machine struct {
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

func NewMachine(ttl time.Duration, logger *log.Logger) *Machine {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Machine{ttl: ttl, logger: logger, now: time.Now}
}

// Begin captures a new PendingAction on an idle session.
func (m *Machine) Begin(sess *store.Session, actionType companion.ActionType, payload string) (*companion.PendingAction, error) {
	if sess.Pending != nil && sess.Pending.State == companion.StateAwaitingConfirmation {
		return nil, ErrPendingExists
	}

	pending := &companion.PendingAction{
		Type:      actionType,
		Payload:   payload,
		CreatedAt: m.now(),
		State:     companion.StateAwaitingConfirmation,
	}
	sess.Pending = pending
	sess.State = store.StateAwaitingConfirmation
	m.logger.Printf("[CONFIRM] awaiting confirmation: %s", actionType)
	return pending, nil
}

// Awaiting reports whether the session holds a live confirmation slot,
// expiring it first when its TTL has elapsed.
func (m *Machine) Awaiting(sess *store.Session) bool {
	if sess.Pending == nil || sess.Pending.State != companion.StateAwaitingConfirmation {
		return false
	}
	if m.now().Sub(sess.Pending.CreatedAt) > m.ttl {
		m.expire(sess)
		return false
	}
	return true
}

// Resolve interprets an utterance as the confirmation answer.
// The returned action carries the terminal state; AnswerUnclear leaves
// the slot occupied so the caller re-prompts instead of guessing.
func (m *Machine) Resolve(sess *store.Session, text string) (*companion.PendingAction, Answer) {
	pending := sess.Pending
	switch ParseAnswer(text) {
	case AnswerYes:
		pending.State = companion.StateConfirmed
		m.release(sess)
		m.logger.Printf("[CONFIRM] confirmed: %s", pending.Type)
		return pending, AnswerYes
	case AnswerNo:
		pending.State = companion.StateCancelled
		m.release(sess)
		m.logger.Printf("[CONFIRM] cancelled: %s", pending.Type)
		return pending, AnswerNo
	default:
		return pending, AnswerUnclear
	}
}

func (m *Machine) expire(sess *store.Session) {
	sess.Pending.State = companion.StateExpired
	m.release(sess)
	m.logger.Printf("[CONFIRM] expired after %s", m.ttl)
}

func (m *Machine) release(sess *store.Session) {
	sess.Pending = nil
	sess.State = store.StateIdle
}

var (
	yesWords = []string{"yes", "yeah", "yep", "sure", "confirm", "proceed", "okay", "ok", "go ahead", "do it"}
	noWords  = []string{"no", "nope", "cancel", "don't", "do not", "stop", "never mind", "nevermind"}
)

// ParseAnswer reads an explicit yes/no out of a reply. Anything that
// matches neither list, or both, is unclear.
func ParseAnswer(text string) Answer {
	lower := strings.ToLower(strings.TrimSpace(text))

	yes := containsAny(lower, yesWords)
	no := containsAny(lower, noWords)

	switch {
	case yes && !no:
		return AnswerYes
	case no && !yes:
		return AnswerNo
	default:
		return AnswerUnclear
	}
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if lower == w {
			return true
		}
		if strings.Contains(lower, w+" ") || strings.Contains(lower, " "+w) ||
			strings.HasPrefix(lower, w+",") || strings.HasSuffix(lower, " "+w) {
			return true
		}
	}
	return false
}

// notePrefixes are the fixed command prefixes stripped from a note
// utterance to recover its payload.
var notePrefixes = []string{
	"create a note that",
	"create a note saying",
	"create a note",
	"take a note that",
	"take a note",
	"make a note that",
	"make a note",
	"note that",
	"write down that",
	"write down",
}

// ExtractNotePayload strips the command prefix from a note utterance,
// leaving the content to store.
func ExtractNotePayload(text string) string {
	lower := strings.ToLower(text)
	for _, prefix := range notePrefixes {
		if idx := strings.Index(lower, prefix); idx >= 0 {
			payload := strings.TrimSpace(text[idx+len(prefix):])
			if payload != "" {
				return payload
			}
		}
	}
	return strings.TrimSpace(text)
}
