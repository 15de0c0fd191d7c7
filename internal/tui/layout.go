package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robalobadob/hangman/internal/game"
)

const title = "H A N G M A N"

// layout returns the lines of the current screen, top to bottom.
func (m *model) layout(frames []string) []string {
	v := m.ctrl.View()
	switch {
	case v.Status == game.StatusEntry:
		return []string{
			title,
			"",
			"Type a phrase for the other player, then press Enter.",
			"",
			"> " + strings.Repeat("*", len(m.entry)),
			"",
			m.message,
			"",
			"Enter: start   Tab: random phrase   Esc: quit",
		}
	case v.Status == game.StatusPlaying:
		out := frameLines(frames, v.Stage)
		return append(out,
			"",
			spacedMask(v),
			"",
			missLine(v),
			"Tried: "+strings.Join(v.Tried, " "),
			"",
			m.message,
			"",
			"Type a letter to guess   Esc: quit",
		)
	default:
		out := frameLines(frames, v.Stage)
		verdict := "You won!"
		if v.Status == game.StatusLost {
			verdict = "You lost."
		}
		return append(out,
			"",
			spacedMask(v),
			"",
			verdict,
			"The phrase was: "+v.Phrase,
			"",
			"Enter: new game   Esc: quit",
		)
	}
}

// frameLines returns the gallows frame for stage, clamped to what exists.
func frameLines(frames []string, stage int) []string {
	if len(frames) == 0 {
		return []string{fmt.Sprintf("[stage %d/%d]", stage, len(frames))}
	}
	if stage >= len(frames) {
		stage = len(frames) - 1
	}
	if stage < 0 {
		stage = 0
	}
	return strings.Split(frames[stage], "\n")
}

// spacedMask renders slots with a blank between them so underscores stay
// countable; whitespace slots become a wider gap.
func spacedMask(v game.View) string {
	parts := make([]string, 0, len(v.Slots))
	for _, s := range v.Slots {
		switch {
		case s.Space:
			parts = append(parts, " ")
		case s.Char != "":
			parts = append(parts, s.Char)
		default:
			parts = append(parts, string(game.HiddenRune))
		}
	}
	return strings.Join(parts, " ")
}

func missLine(v game.View) string {
	misses := strings.Join(v.Incorrect, " ")
	if misses == "" {
		misses = "-"
	}
	return fmt.Sprintf("Misses: %s   (%d left)", misses, v.Remaining)
}

// blockWidth is the display width of the widest line, used to left-align a
// block of lines (the gallows) as one unit.
func blockWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		if n := runewidth.StringWidth(l); n > w {
			w = n
		}
	}
	return w
}

// centerX returns the column that centers a text of width w on a screen of
// width screenW, never negative.
func centerX(screenW, w int) int {
	if w >= screenW {
		return 0
	}
	return (screenW - w) / 2
}
