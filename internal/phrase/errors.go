package phrase

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidGuess = errors.New("guess must be a single character")
	ErrEmptyPhrase  = errors.New("phrase cannot be empty")
)

// ParseGuess validates raw guess input. Surrounding whitespace is ignored;
// what remains must be exactly one printable, non-space character.
func ParseGuess(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) != 1 {
		return 0, ErrInvalidGuess
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return 0, ErrInvalidGuess
	}
	return r, nil
}

// ValidatePhrase rejects phrases with nothing to guess.
func ValidatePhrase(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyPhrase
	}
	return nil
}
