// internal/phrase/phrase.go
//
// Phrase map and guess reducer for a single hangman round.
// Responsibilities:
//   - Turn a raw phrase into an ordered sequence of reveal slots.
//   - Apply a single-character guess to a State, producing the next State.
//   - Derive win/loss, remaining misses and the gallows stage from a State.
//
// Notes:
//   - Slots are per rune, not per byte, so len(Build(p)) is the rune count of p.
//   - Space slots (' ') are revealed from the start and are never guessed.
//     Other whitespace is hidden like any character; NormalizeSpace turns it
//     into plain spaces before a phrase reaches Build.
//   - Matching uses Unicode case folding; the slot keeps its original casing.
//   - Apply never mutates the slices of the State it is given.
package phrase

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// MaxIncorrect is the number of incorrect guesses that loses a round.
const MaxIncorrect = 6

// Slot is one character position of the phrase.
type Slot struct {
	Char     rune
	Revealed bool
}

// Map is the ordered slot sequence of a phrase, left to right.
type Map []Slot

// State is everything a round needs to render and to decide the outcome.
type State struct {
	Phrase    Map
	Incorrect []rune // append-only, duplicates allowed
}

// Space is the only character revealed from the start.
const Space = ' '

// Build converts phrase into a Map. Spaces are revealed, everything else
// (letters, digits, punctuation, tabs) starts hidden.
func Build(phrase string) Map {
	m := make(Map, 0, utf8.RuneCountInString(phrase))
	for _, r := range phrase {
		m = append(m, Slot{Char: r, Revealed: r == Space})
	}
	return m
}

// NormalizeSpace replaces every Unicode whitespace rune (tabs, newlines,
// NBSP, ...) with a plain space so that it is revealed by Build.
func NormalizeSpace(p string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return Space
		}
		return r
	}, p)
}

// NewState returns the opening state for phrase.
func NewState(phrase string) State {
	return State{Phrase: Build(phrase)}
}

// Apply returns the state after guess.
//
// If no slot matches guess (case-insensitively), guess is appended to
// Incorrect and the map is unchanged. Otherwise every matching slot is
// revealed and Incorrect is unchanged. Re-guessing a revealed letter is a
// match and therefore a no-op; repeating a miss counts again.
func Apply(s State, guess rune) State {
	f := NewFolder()
	key := f.Key(guess)

	next := s.Clone()
	matched := false
	for i, slot := range next.Phrase {
		if f.Key(slot.Char) != key {
			continue
		}
		matched = true
		next.Phrase[i].Revealed = true
	}
	if !matched {
		next.Incorrect = append(next.Incorrect, guess)
	}
	return next
}

// SameLetter reports whether a and b are equal under Unicode case folding.
// Loops should hold a Folder instead.
func SameLetter(a, b rune) bool {
	if a == b {
		return true
	}
	f := NewFolder()
	return f.Key(a) == f.Key(b)
}

// Folder maps runes to case-insensitive keys. A Folder is not safe for
// concurrent use.
type Folder struct {
	c    cases.Caser
	keys map[rune]string
}

// NewFolder returns a Folder using Unicode full case folding.
func NewFolder() *Folder {
	return &Folder{c: cases.Fold(), keys: make(map[rune]string)}
}

// Key returns the folded form of r. Runes equal under folding share a key.
func (f *Folder) Key(r rune) string {
	if k, ok := f.keys[r]; ok {
		return k
	}
	k := f.c.String(string(r))
	f.keys[r] = k
	return k
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		Phrase:    slices.Clone(s.Phrase),
		Incorrect: slices.Clone(s.Incorrect),
	}
}

// Won reports whether every non-space slot is revealed.
func (s State) Won() bool {
	for _, slot := range s.Phrase {
		if !slot.Revealed && slot.Char != Space {
			return false
		}
	}
	return true
}

// Lost reports whether the miss threshold has been reached.
func (s State) Lost() bool { return len(s.Incorrect) >= MaxIncorrect }

// Stage is the gallows image index, 0 (empty) through MaxIncorrect (complete).
func (s State) Stage() int { return min(len(s.Incorrect), MaxIncorrect) }

// Remaining is the number of misses left before the round is lost.
func (s State) Remaining() int { return max(MaxIncorrect-len(s.Incorrect), 0) }

// Masked renders the map with every hidden slot replaced by hidden.
func (m Map) Masked(hidden rune) string {
	var b strings.Builder
	for _, slot := range m {
		if slot.Revealed {
			b.WriteRune(slot.Char)
		} else {
			b.WriteRune(hidden)
		}
	}
	return b.String()
}

// String returns the phrase the map was built from.
func (m Map) String() string {
	var b strings.Builder
	for _, slot := range m {
		b.WriteRune(slot.Char)
	}
	return b.String()
}
