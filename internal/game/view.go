package game

import (
	"fmt"

	"github.com/robalobadob/hangman/internal/phrase"
)

// HiddenRune stands in for unrevealed slots in View.Masked.
const HiddenRune = '_'

// SlotView is one character as the guesser may see it. Char is empty while
// the slot is hidden and the round is open.
type SlotView struct {
	Char     string `json:"char"`
	Revealed bool   `json:"revealed"`
	Space    bool   `json:"space,omitempty"`
}

// View is the render model handed to a UI.
type View struct {
	GameID    string     `json:"gameId,omitempty"`
	Status    Status     `json:"status"`
	Slots     []SlotView `json:"slots"`
	Masked    string     `json:"masked"`
	Incorrect []string   `json:"incorrectGuesses"`
	Tried     []string   `json:"tried"`
	Remaining int        `json:"remaining"`
	Stage     int        `json:"stage"`
	Image     string     `json:"image"`
	Phrase    string     `json:"phrase,omitempty"` // set once the round is over
}

// ImageName is the gallows image for stage (0..phrase.MaxIncorrect).
func ImageName(stage int) string {
	return fmt.Sprintf("hangman-%d.png", stage)
}

func newView(c *Controller) View {
	st := c.Status()
	s := c.state
	v := View{
		Status:    st,
		Slots:     make([]SlotView, 0, len(s.Phrase)),
		Masked:    s.Phrase.Masked(HiddenRune),
		Incorrect: make([]string, 0, len(s.Incorrect)),
		Tried:     []string{},
		Remaining: s.Remaining(),
		Stage:     s.Stage(),
		Image:     ImageName(s.Stage()),
	}
	for _, slot := range s.Phrase {
		sv := SlotView{Revealed: slot.Revealed, Space: slot.Char == phrase.Space}
		if slot.Revealed || st.Finished() {
			sv.Char = string(slot.Char)
		}
		v.Slots = append(v.Slots, sv)
	}
	for _, r := range s.Incorrect {
		v.Incorrect = append(v.Incorrect, string(r))
	}
	f := phrase.NewFolder()
	seen := make(map[string]bool, len(c.guesses))
	for _, g := range c.guesses {
		if k := f.Key(g); !seen[k] {
			seen[k] = true
			v.Tried = append(v.Tried, string(g))
		}
	}
	if st.Finished() {
		v.Phrase = s.Phrase.String()
	}
	return v
}
