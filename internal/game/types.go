// internal/game/types.go
//
// Core type definitions for the hangman game controller.
// Defines:
//   - Status: coarse phase of a round (entry/playing/won/lost).
//   - Options: controller policy knobs.
//   - Result: what a single accepted guess did.
//   - Event: notification delivered to session subscribers.

package game

// Status is derived from the held state on demand; it is never stored.
type Status string

const (
	StatusEntry   Status = "entry"   // waiting for a phrase
	StatusPlaying Status = "playing" // guesses are forwarded to the reducer
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Finished reports whether the round is over.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

// Options configures a Controller.
type Options struct {
	// RejectRepeats refuses a letter that was already tried instead of
	// forwarding it. Off by default: a repeated miss counts again.
	RejectRepeats bool
}

// Result describes an accepted guess.
type Result struct {
	Guess    rune
	Matched  bool   // at least one slot matched
	Revealed int    // slots newly revealed by this guess
	Status   Status // status after the guess
}

// EventType names the kind of Event.
type EventType string

const (
	EventState EventType = "state" // the view changed
)

// Event is published to subscribers after every state change.
type Event struct {
	Type EventType `json:"type"`
	View View      `json:"view"`
}
