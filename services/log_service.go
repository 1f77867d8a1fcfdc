package services

import (
	"sync"
	"time"

	"platelog/models"
)

// DateLayout is the calendar-date key format for the day log.
const DateLayout = "2006-01-02"

// SubmissionStatus tracks the single in-flight estimation per session.
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"
	StatusPending SubmissionStatus = "pending"
	StatusFailed  SubmissionStatus = "failed"
)

// Session owns one user's day log and chat transcript. The day log is a
// date-keyed, append-only map held in process memory; totals are folded on
// every read rather than cached, so they can never drift from the entries.
type Session struct {
	mu           sync.Mutex
	days         map[string][]models.MealEntry
	transcript   []models.ChatMessage
	selectedDate string
	status       SubmissionStatus
}

func NewSession() *Session {
	return &Session{
		days:   make(map[string][]models.MealEntry),
		status: StatusIdle,
	}
}

// SelectDate switches the date new entries are logged under. An empty date
// means "the submission's reference day".
func (s *Session) SelectDate(date string) {
	s.mu.Lock()
	s.selectedDate = date
	s.mu.Unlock()
}

// EntryDate resolves the date a submission at ref should be logged under.
func (s *Session) EntryDate(ref time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedDate != "" {
		return s.selectedDate
	}
	return ref.Format(DateLayout)
}

func (s *Session) AppendEntry(date string, e models.MealEntry) {
	s.mu.Lock()
	s.days[date] = append(s.days[date], e)
	s.mu.Unlock()
}

// Entries returns a copy of the date's entries in insertion order.
func (s *Session) Entries(date string) []models.MealEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MealEntry, len(s.days[date]))
	copy(out, s.days[date])
	return out
}

// DayTotals folds the date's entries into one breakdown.
func (s *Session) DayTotals(date string) models.MacroBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total models.MacroBreakdown
	for _, e := range s.days[date] {
		total.Add(e.Macros)
	}
	return total
}

func (s *Session) AppendMessage(m models.ChatMessage) {
	s.mu.Lock()
	s.transcript = append(s.transcript, m)
	s.mu.Unlock()
}

// Transcript returns a copy of the chat transcript in order.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) Status() SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// beginSubmission flips the session to pending. It fails when a submission
// is already outstanding: only one may be pending per session.
func (s *Session) beginSubmission() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusPending {
		return false
	}
	s.status = StatusPending
	return true
}

func (s *Session) endSubmission(failed bool) {
	s.mu.Lock()
	if failed {
		s.status = StatusFailed
	} else {
		s.status = StatusIdle
	}
	s.mu.Unlock()
}

// SessionStore hands out sessions keyed by an opaque ID, creating them on
// first use. Sessions live for the life of the process; nothing persists.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := NewSession()
	st.sessions[id] = s
	return s
}
