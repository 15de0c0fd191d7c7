// internal/tui/app.go
//
// Terminal hangman for two players on one keyboard: the first types a
// secret phrase (echoed as stars), the second guesses letters. The round
// runs on the same game.Controller the server uses.

package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/phrasebook"
)

// Options configures an App. Zero values are usable.
type Options struct {
	Game   game.Options
	Book   *phrasebook.Book // enables Tab for a random phrase
	Sound  Sounder          // nil plays nothing
	Frames []string         // gallows art, one frame per stage
	Logger zerolog.Logger
}

// App drives a model on a tcell screen.
type App struct {
	screen tcell.Screen
	model  *model
	frames []string
	log    zerolog.Logger
}

// New returns an App drawing on screen. The caller owns screen: it must be
// initialised before Run and finalised after.
func New(screen tcell.Screen, opts Options) *App {
	return &App{
		screen: screen,
		model:  newModel(opts),
		frames: opts.Frames,
		log:    opts.Logger,
	}
}

// Run processes input until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			a.model.endRound()
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.model.handle(fromEvent(ev)) {
					a.model.endRound()
					a.log.Debug().Msg("quit")
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
			a.draw()
		}
	}
}

func (a *App) draw() {
	lines := a.model.layout(a.frames)
	a.screen.Clear()
	w, h := a.screen.Size()
	x0 := centerX(w, blockWidth(lines))
	y0 := centerX(h, len(lines))
	for i, l := range lines {
		style := tcell.StyleDefault
		if i == 0 && l == title {
			style = style.Bold(true)
		}
		x := x0
		for _, r := range l {
			a.screen.SetContent(x, y0+i, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
	a.screen.Show()
}
