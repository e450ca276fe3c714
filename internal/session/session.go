// Package session holds the in-memory per-user dialog state. Nothing
// here is persisted: a restart drops every in-flight flow back to idle,
// which is acceptable for interactions that last seconds.
package session

import (
	"sync"

	"github.com/windoze95/speakify-bot/internal/models"
)

// State is the type for the dialog state enum.
type State string

// State enum values.
const (
	StateIdle                 State = "idle"
	StateAwaitingQuestionText State = "awaiting_question_text"
	StateAwaitingDeleteID     State = "awaiting_delete_id"
	StateAwaitingBroadcast    State = "awaiting_broadcast_text"
	StateAwaitingVoiceAnswer  State = "awaiting_voice_answer"
	StateAwaitingAdminMessage State = "awaiting_admin_message"
)

// Mode is the tagged dialog state for one user: the state plus whatever
// transient payload that state needs. Category is set for the add and
// delete flows; Question carries the question being answered for the
// voice flow.
type Mode struct {
	State    State
	Category models.QuestionCategory
	Question string
}

// Idle is the default mode for any user without an active flow.
var Idle = Mode{State: StateIdle}

// Table maps chat ids to their current dialog mode, plus the last
// question each user was served (which survives mode resets so a user
// can request an AI check after receiving a question while idle).
type Table struct {
	mu        sync.RWMutex
	modes     map[int64]Mode
	questions map[int64]string
}

// NewTable creates an empty session table.
func NewTable() *Table {
	return &Table{
		modes:     make(map[int64]Mode),
		questions: make(map[int64]string),
	}
}

// Get returns the current mode for a chat id. An absent entry is Idle,
// not a fault.
func (t *Table) Get(chatID int64) Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if mode, ok := t.modes[chatID]; ok {
		return mode
	}
	return Idle
}

// Set overwrites the mode for a chat id.
func (t *Table) Set(chatID int64, mode Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modes[chatID] = mode
}

// Clear resets a chat id back to Idle. Clearing an absent entry is a
// no-op.
func (t *Table) Clear(chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.modes, chatID)
}

// SetCurrentQuestion remembers the question most recently served to a
// user.
func (t *Table) SetCurrentQuestion(chatID int64, question string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.questions[chatID] = question
}

// CurrentQuestion returns the question most recently served to a user,
// or "" if none.
func (t *Table) CurrentQuestion(chatID int64) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.questions[chatID]
}

// ClearCurrentQuestion forgets a user's pending question.
func (t *Table) ClearCurrentQuestion(chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.questions, chatID)
}
