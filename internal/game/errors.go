package game

import "errors"

// Controller and session errors. Validation errors come from package phrase
// (phrase.ErrInvalidGuess, phrase.ErrEmptyPhrase).
var (
	ErrNotStarted     = errors.New("no round in progress")
	ErrGameOver       = errors.New("round is over")
	ErrAlreadyGuessed = errors.New("letter already guessed")
	ErrSessionClosed  = errors.New("session closed")
	ErrBadSnapshot    = errors.New("snapshot does not match phrase")
)
