package confirm

import (
	"io"
	"log"
	"testing"
	"time"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func newTestMachine() *Machine {
	return NewMachine(DefaultTTL, log.New(io.Discard, "", 0))
}

func newSession() *store.Session {
	return &store.Session{ID: "s1", PatientID: "p1", State: store.StateIdle}
}

func TestBeginOccupiesSlot(t *testing.T) {
	m := newTestMachine()
	sess := newSession()

	pending, err := m.Begin(sess, companion.ActionSOS, "help, emergency")
	assert.NoError(t, err)
	assert.Equal(t, companion.StateAwaitingConfirmation, pending.State)
	assert.Equal(t, store.StateAwaitingConfirmation, sess.State)
	assert.True(t, m.Awaiting(sess))

	// Second Begin while the slot is occupied must fail.
	_, err = m.Begin(sess, companion.ActionNote, "remember the milk")
	assert.ErrorIs(t, err, ErrPendingExists)
	assert.Equal(t, companion.ActionSOS, sess.Pending.Type)
}

func TestResolveYes(t *testing.T) {
	m := newTestMachine()
	sess := newSession()

	m.Begin(sess, companion.ActionNote, "I'm feeling dizzy")
	pending, answer := m.Resolve(sess, "yes")

	assert.Equal(t, AnswerYes, answer)
	assert.Equal(t, companion.StateConfirmed, pending.State)
	assert.Equal(t, "I'm feeling dizzy", pending.Payload)
	assert.Nil(t, sess.Pending)
	assert.Equal(t, store.StateIdle, sess.State)
}

func TestResolveNo(t *testing.T) {
	m := newTestMachine()
	sess := newSession()

	m.Begin(sess, companion.ActionSOS, "help")
	pending, answer := m.Resolve(sess, "no, I'm fine")

	assert.Equal(t, AnswerNo, answer)
	assert.Equal(t, companion.StateCancelled, pending.State)
	assert.Nil(t, sess.Pending)
}

func TestResolveUnclearKeepsSlot(t *testing.T) {
	m := newTestMachine()
	sess := newSession()

	m.Begin(sess, companion.ActionNote, "milk")
	pending, answer := m.Resolve(sess, "what is the weather like")

	assert.Equal(t, AnswerUnclear, answer)
	assert.Equal(t, companion.StateAwaitingConfirmation, pending.State)
	assert.True(t, m.Awaiting(sess), "ambiguous answer must keep the slot occupied")
}

func TestExpiry(t *testing.T) {
	m := newTestMachine()
	sess := newSession()

	m.Begin(sess, companion.ActionSOS, "help")
	pending := sess.Pending

	// Advance the clock past the TTL.
	m.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Second) }

	assert.False(t, m.Awaiting(sess))
	assert.Equal(t, companion.StateExpired, pending.State)
	assert.Nil(t, sess.Pending)
	assert.Equal(t, store.StateIdle, sess.State)

	// The slot is free again.
	_, err := m.Begin(sess, companion.ActionNote, "later")
	assert.NoError(t, err)
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		text string
		want Answer
	}{
		{"yes", AnswerYes},
		{"Yes please", AnswerYes},
		{"yeah go ahead", AnswerYes},
		{"okay", AnswerYes},
		{"no", AnswerNo},
		{"no thanks", AnswerNo},
		{"never mind", AnswerNo},
		{"cancel that", AnswerNo},
		{"maybe", AnswerUnclear},
		{"what did you say", AnswerUnclear},
		{"", AnswerUnclear},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ParseAnswer(tt.text); got != tt.want {
				t.Errorf("ParseAnswer(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractNotePayload(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"create a note that I'm feeling dizzy", "I'm feeling dizzy"},
		{"Take a note: call the pharmacy", ": call the pharmacy"},
		{"write down that the nurse visits Tuesday", "the nurse visits Tuesday"},
		{"note that my knee hurts", "my knee hurts"},
		{"just some text", "just some text"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ExtractNotePayload(tt.text); got != tt.want {
				t.Errorf("ExtractNotePayload(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
