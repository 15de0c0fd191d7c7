package game

import (
	"errors"
	"testing"

	"github.com/robalobadob/hangman/internal/phrase"
)

func started(t *testing.T, p string, opts Options) *Controller {
	t.Helper()
	c := NewController(opts)
	if err := c.Start(p); err != nil {
		t.Fatalf("Start(%q): %v", p, err)
	}
	return c
}

func TestControllerEntry(t *testing.T) {
	c := NewController(Options{})
	if c.Status() != StatusEntry {
		t.Fatalf("Status = %s, want entry", c.Status())
	}
	if _, err := c.Guess("a"); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Guess before Start: %v", err)
	}
	if err := c.Start(""); !errors.Is(err, phrase.ErrEmptyPhrase) {
		t.Fatalf("Start(\"\"): %v", err)
	}
	if c.Status() != StatusEntry {
		t.Fatal("failed Start left the entry phase")
	}
}

func TestControllerWin(t *testing.T) {
	c := started(t, "cat", Options{})
	for _, g := range []string{"C", "a"} {
		res, err := c.Guess(g)
		if err != nil {
			t.Fatalf("Guess(%s): %v", g, err)
		}
		if !res.Matched || res.Revealed != 1 || res.Status != StatusPlaying {
			t.Fatalf("Guess(%s) = %+v", g, res)
		}
	}
	res, err := c.Guess("t")
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusWon || c.Status() != StatusWon {
		t.Fatalf("want won, got %s", res.Status)
	}
	if _, err := c.Guess("x"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("guess after win: %v", err)
	}
	if n := len(c.State().Incorrect); n != 0 {
		t.Fatalf("guess after win was forwarded, misses = %d", n)
	}
}

func TestControllerLossOnSixthMiss(t *testing.T) {
	c := started(t, "dog", Options{})
	for i, g := range []string{"x", "y", "z", "q", "w"} {
		res, err := c.Guess(g)
		if err != nil {
			t.Fatal(err)
		}
		if res.Matched || res.Status != StatusPlaying {
			t.Fatalf("miss %d: %+v", i+1, res)
		}
	}
	res, err := c.Guess("r")
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusLost {
		t.Fatalf("6th miss: status %s, want lost", res.Status)
	}
	v := c.View()
	if v.Stage != phrase.MaxIncorrect || v.Image != "hangman-6.png" || v.Remaining != 0 {
		t.Fatalf("view = %+v", v)
	}
	if v.Phrase != "dog" {
		t.Fatalf("finished view should expose the phrase, got %q", v.Phrase)
	}
	if _, err := c.Guess("d"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("guess after loss: %v", err)
	}
}

func TestControllerInvalidGuessKeepsState(t *testing.T) {
	c := started(t, "dog", Options{})
	for _, in := range []string{"", "ab", " "} {
		if _, err := c.Guess(in); !errors.Is(err, phrase.ErrInvalidGuess) {
			t.Fatalf("Guess(%q): %v", in, err)
		}
	}
	if len(c.State().Incorrect) != 0 || len(c.Guesses()) != 0 {
		t.Fatal("invalid guess mutated state")
	}
}

func TestControllerRepeatedMissPolicy(t *testing.T) {
	c := started(t, "dog", Options{})
	c.Guess("x")
	c.Guess("X")
	if got := len(c.State().Incorrect); got != 2 {
		t.Fatalf("default policy: misses = %d, want 2", got)
	}

	c = started(t, "dog", Options{RejectRepeats: true})
	c.Guess("x")
	if _, err := c.Guess("X"); !errors.Is(err, ErrAlreadyGuessed) {
		t.Fatalf("RejectRepeats: %v", err)
	}
	c.Guess("d")
	if _, err := c.Guess("D"); !errors.Is(err, ErrAlreadyGuessed) {
		t.Fatalf("RejectRepeats on hit: %v", err)
	}
	if got := len(c.State().Incorrect); got != 1 {
		t.Fatalf("RejectRepeats: misses = %d, want 1", got)
	}
}

func TestControllerRestart(t *testing.T) {
	c := started(t, "dog", Options{})
	c.Guess("d")
	c.Restart()
	if c.Status() != StatusEntry {
		t.Fatalf("Status = %s after Restart", c.Status())
	}
	if len(c.Guesses()) != 0 || len(c.State().Phrase) != 0 {
		t.Fatal("Restart kept state")
	}
	if err := c.Start("cat"); err != nil {
		t.Fatal(err)
	}
	if c.Tried('d') {
		t.Fatal("tried letters survived Restart")
	}
}

func TestViewHidesUnrevealedWhilePlaying(t *testing.T) {
	c := started(t, "Hi There", Options{})
	c.Guess("h")
	c.Guess("z")
	c.Guess("H")
	v := c.View()
	if v.Masked != "H_ _h___" {
		t.Fatalf("Masked = %q", v.Masked)
	}
	if v.Slots[1].Char != "" || v.Slots[0].Char != "H" || !v.Slots[2].Space {
		t.Fatalf("Slots = %+v", v.Slots)
	}
	if v.Phrase != "" {
		t.Fatal("phrase leaked while playing")
	}
	if len(v.Incorrect) != 1 || v.Incorrect[0] != "z" {
		t.Fatalf("Incorrect = %v", v.Incorrect)
	}
	if len(v.Tried) != 2 || v.Tried[0] != "h" || v.Tried[1] != "z" {
		t.Fatalf("Tried = %v", v.Tried)
	}
	if v.Stage != 1 || v.Image != "hangman-1.png" || v.Remaining != 5 {
		t.Fatalf("Stage/Image/Remaining = %d/%s/%d", v.Stage, v.Image, v.Remaining)
	}
}

func TestControllerStartNormalizesWhitespace(t *testing.T) {
	c := started(t, "tab\tnew\nline", Options{})
	v := c.View()
	if v.Masked != "___ ___ ____" {
		t.Fatalf("Masked = %q", v.Masked)
	}
	if !v.Slots[3].Space || !v.Slots[3].Revealed || !v.Slots[7].Space {
		t.Fatalf("whitespace slots = %+v %+v", v.Slots[3], v.Slots[7])
	}
	var res Result
	for _, g := range []string{"t", "a", "b", "n", "e", "w", "l", "i"} {
		var err error
		if res, err = c.Guess(g); err != nil {
			t.Fatalf("Guess(%q): %v", g, err)
		}
	}
	if res.Status != StatusWon {
		t.Fatalf("status = %s, masked %q", res.Status, c.View().Masked)
	}
}

func TestTriedFoldsCase(t *testing.T) {
	c := started(t, "Straße", Options{RejectRepeats: true})
	c.Guess("S")
	if !c.Tried('s') || c.Tried('x') {
		t.Fatal("Tried should fold case")
	}
	if _, err := c.Guess("s"); !errors.Is(err, ErrAlreadyGuessed) {
		t.Fatalf("err = %v", err)
	}
	if v := c.View(); len(v.Tried) != 1 || v.Tried[0] != "S" {
		t.Fatalf("Tried = %v", v.Tried)
	}
}
