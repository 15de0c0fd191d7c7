// internal/game/engine.go
//
// Game state controller for a single hangman round.
// Responsibilities:
//   - Hold exactly one phrase.State while a round is in progress.
//   - Validate raw guesses and forward them to phrase.Apply.
//   - Stop forwarding once the round is won or lost.
//   - Restart: discard the state and return to phrase entry.
//
// Notes:
//   - The controller only replaces its state; all transitions live in
//     package phrase.
//   - Not safe for concurrent use; Session adds locking.
package game

import (
	"slices"

	"github.com/robalobadob/hangman/internal/phrase"
)

// Controller owns the state of one round.
type Controller struct {
	opts    Options
	started bool
	state   phrase.State
	guesses []rune // every forwarded guess, in order
}

// NewController returns a controller waiting for a phrase.
func NewController(opts Options) *Controller {
	return &Controller{opts: opts}
}

// Start begins a round with p. An empty or blank phrase is rejected and the
// controller is left as it was. Tabs, newlines and other whitespace become
// plain spaces so they are revealed like any gap between words.
func (c *Controller) Start(p string) error {
	if err := phrase.ValidatePhrase(p); err != nil {
		return err
	}
	c.state = phrase.NewState(phrase.NormalizeSpace(p))
	c.guesses = nil
	c.started = true
	return nil
}

// Guess validates input and, if the round is still open, applies it.
// On any error the held state is unchanged.
func (c *Controller) Guess(input string) (Result, error) {
	g, err := phrase.ParseGuess(input)
	if err != nil {
		return Result{}, err
	}
	switch st := c.Status(); {
	case st == StatusEntry:
		return Result{}, ErrNotStarted
	case st.Finished():
		return Result{}, ErrGameOver
	}
	if c.opts.RejectRepeats && c.Tried(g) {
		return Result{}, ErrAlreadyGuessed
	}

	prev := c.state
	c.state = phrase.Apply(prev, g)
	c.guesses = append(c.guesses, g)

	return Result{
		Guess:    g,
		Matched:  len(c.state.Incorrect) == len(prev.Incorrect),
		Revealed: revealedCount(c.state.Phrase) - revealedCount(prev.Phrase),
		Status:   c.Status(),
	}, nil
}

// Status computes the phase from the held state.
func (c *Controller) Status() Status {
	switch {
	case !c.started:
		return StatusEntry
	case c.state.Won():
		return StatusWon
	case c.state.Lost():
		return StatusLost
	default:
		return StatusPlaying
	}
}

// State returns a copy of the held state.
func (c *Controller) State() phrase.State { return c.state.Clone() }

// Guesses returns every forwarded guess in order.
func (c *Controller) Guesses() []rune { return slices.Clone(c.guesses) }

// Tried reports whether a letter equal to r (ignoring case) was forwarded.
func (c *Controller) Tried(r rune) bool {
	f := phrase.NewFolder()
	key := f.Key(r)
	for _, g := range c.guesses {
		if f.Key(g) == key {
			return true
		}
	}
	return false
}

// Restart discards the round and returns to phrase entry.
func (c *Controller) Restart() {
	c.started = false
	c.state = phrase.State{}
	c.guesses = nil
}

// View renders the held state for a UI.
func (c *Controller) View() View { return newView(c) }

func revealedCount(m phrase.Map) int {
	n := 0
	for _, s := range m {
		if s.Revealed {
			n++
		}
	}
	return n
}
