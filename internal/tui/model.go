package tui

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/phrase"
	"github.com/robalobadob/hangman/internal/phrasebook"
)

// Sounder plays short cues. Implementations must not block.
type Sounder interface {
	Hit()
	Miss()
	Win()
	Lose()
}

type nopSound struct{}

func (nopSound) Hit()  {}
func (nopSound) Miss() {}
func (nopSound) Win()  {}
func (nopSound) Lose() {}

// model is the client state without a screen: phrase entry, the round and
// the result screen.
type model struct {
	ctrl    *game.Controller
	keys    *keyRouter
	book    *phrasebook.Book
	sound   Sounder
	log     zerolog.Logger
	entry   []rune
	message string
	release func()
}

func newModel(opts Options) *model {
	m := &model{
		ctrl:  game.NewController(opts.Game),
		keys:  newKeyRouter(),
		book:  opts.Book,
		sound: opts.Sound,
		log:   opts.Logger,
	}
	if m.sound == nil {
		m.sound = nopSound{}
	}
	return m
}

// handle applies one key press and reports whether the client should quit.
func (m *model) handle(k key) bool {
	act := mapKey(k)
	if act == ActionQuit {
		return true
	}
	switch st := m.ctrl.Status(); {
	case st == game.StatusEntry:
		m.handleEntry(act, k.Rune)
	case st == game.StatusPlaying:
		if act == ActionRune {
			m.keys.Dispatch(k.Rune)
		}
	case st.Finished():
		if act == ActionSubmit {
			m.restart()
		}
	}
	return false
}

func (m *model) handleEntry(act Action, r rune) {
	switch act {
	case ActionRune:
		if len(m.entry) < phrasebook.MaxRunes {
			m.entry = append(m.entry, r)
		}
	case ActionBackspace:
		if n := len(m.entry); n > 0 {
			m.entry = m.entry[:n-1]
		}
	case ActionSubmit:
		m.start(string(m.entry))
	case ActionRandom:
		if m.book == nil || m.book.Len() == 0 {
			m.message = "no phrase book loaded"
			return
		}
		m.start(m.book.Random())
	}
}

// start begins a round and subscribes it to letter keys.
func (m *model) start(p string) {
	if err := m.ctrl.Start(p); err != nil {
		if errors.Is(err, phrase.ErrEmptyPhrase) {
			m.message = "type a phrase first"
		} else {
			m.message = err.Error()
		}
		return
	}
	m.entry = nil
	m.message = ""
	m.release = m.keys.Subscribe(m.guess)
	m.log.Debug().Int("slots", len(m.ctrl.State().Phrase)).Msg("round started")
}

func (m *model) guess(r rune) {
	res, err := m.ctrl.Guess(string(r))
	switch {
	case errors.Is(err, phrase.ErrInvalidGuess):
		m.message = "letters only"
		return
	case errors.Is(err, game.ErrAlreadyGuessed):
		m.message = "already tried " + string(r)
		return
	case err != nil:
		m.log.Warn().Err(err).Msg("guess rejected")
		return
	}
	m.message = ""
	if res.Matched {
		m.sound.Hit()
	} else {
		m.sound.Miss()
	}
	if !res.Status.Finished() {
		return
	}
	m.endRound()
	if res.Status == game.StatusWon {
		m.sound.Win()
	} else {
		m.sound.Lose()
	}
	m.log.Info().Str("status", string(res.Status)).Int("guesses", len(m.ctrl.Guesses())).Msg("round finished")
}

// endRound releases the key subscription.
func (m *model) endRound() {
	if m.release != nil {
		m.release()
		m.release = nil
	}
}

// restart discards the round and returns to phrase entry.
func (m *model) restart() {
	m.endRound()
	m.ctrl.Restart()
	m.entry = nil
	m.message = ""
}
