// internal/game/session.go
//
// Session wraps a Controller with an identity, locking and a scoped event
// subscription. Subscribers receive the current view on subscribe and an
// Event after every accepted guess. All subscriptions are torn down when the
// session is closed, which also discards the round.

package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/phrase"
)

const subscriberBuffer = 16

// Session is one player's game, safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	ctrl      *Controller
	updatedAt time.Time
	subs      map[uint64]chan Event
	nextSub   uint64
	closed    bool
}

// NewSession starts a round with p under a fresh ID.
func NewSession(p string, opts Options) (*Session, error) {
	c := NewController(opts)
	if err := c.Start(p); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return newSession(uuid.NewString(), c, now, now), nil
}

func newSession(id string, c *Controller, created, updated time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: created,
		ctrl:      c,
		updatedAt: updated,
		subs:      make(map[uint64]chan Event),
	}
}

// Guess forwards input to the controller and notifies subscribers.
// The returned view is current whether or not the guess was accepted.
func (s *Session) Guess(input string) (Result, View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Result{}, View{}, ErrSessionClosed
	}
	res, err := s.ctrl.Guess(input)
	if err != nil {
		return Result{}, s.viewLocked(), err
	}
	s.updatedAt = time.Now().UTC()
	v := s.viewLocked()
	s.publishLocked(Event{Type: EventState, View: v})
	return res, v, nil
}

// View returns the current render model.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Status returns the current phase.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Status()
}

// LastActive is the time of the last accepted guess (or creation).
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Subscribe registers for events. The channel is closed when cancel is
// called or the session is closed, whichever comes first.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- Event{Type: EventState, View: s.viewLocked()}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Close discards the round and ends every subscription. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.ctrl.Restart()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Session) viewLocked() View {
	v := s.ctrl.View()
	v.GameID = s.ID
	return v
}

func (s *Session) publishLocked(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			log.Warn().Str("gameId", s.ID).Msg("subscriber buffer full, event dropped")
		}
	}
}

// Snapshot is the persisted form of a session.
type Snapshot struct {
	ID        string    `json:"id"`
	Phrase    string    `json:"phrase"`
	Revealed  []bool    `json:"revealed"`
	Incorrect string    `json:"incorrect"`
	Guesses   string    `json:"guesses"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot captures the session for a store.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Persist hands the current snapshot to save while holding the session
// lock, so saves happen in the order the state changed and none can land
// after Close. A closed session returns ErrSessionClosed without saving.
func (s *Session) Persist(save func(Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return save(s.snapshotLocked())
}

func (s *Session) snapshotLocked() Snapshot {
	st := s.ctrl.state
	snap := Snapshot{
		ID:        s.ID,
		Phrase:    st.Phrase.String(),
		Revealed:  make([]bool, len(st.Phrase)),
		Incorrect: string(st.Incorrect),
		Guesses:   string(s.ctrl.guesses),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
	for i, slot := range st.Phrase {
		snap.Revealed[i] = slot.Revealed
	}
	return snap
}

// Restore rebuilds a session from snap.
func Restore(snap Snapshot, opts Options) (*Session, error) {
	c := NewController(opts)
	if err := c.Start(snap.Phrase); err != nil {
		return nil, fmt.Errorf("restore %s: %w", snap.ID, err)
	}
	if len(snap.Revealed) != len(c.state.Phrase) {
		return nil, fmt.Errorf("restore %s: %w", snap.ID, ErrBadSnapshot)
	}
	for i, r := range snap.Revealed {
		c.state.Phrase[i].Revealed = r || c.state.Phrase[i].Char == phrase.Space
	}
	if snap.Incorrect != "" {
		c.state.Incorrect = []rune(snap.Incorrect)
	}
	if snap.Guesses != "" {
		c.guesses = []rune(snap.Guesses)
	}
	return newSession(snap.ID, c, snap.CreatedAt, snap.UpdatedAt), nil
}
