// cmd/hangman-tui/main.go
//
// Terminal client. Reads PHRASES_FILE and REJECT_REPEATED_GUESSES like the
// server; logs go to the file named by HANGMAN_TUI_LOG, or nowhere.
//
// Flags:
//   -mute   disable sound cues

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/phrasebook"
	"github.com/robalobadob/hangman/internal/tui"
)

type tuiConfig struct {
	PhrasesFile           string `env:"PHRASES_FILE"`
	RejectRepeatedGuesses bool   `env:"REJECT_REPEATED_GUESSES" envDefault:"false"`
	LogFile               string `env:"HANGMAN_TUI_LOG"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	mute := flag.Bool("mute", false, "disable sound cues")
	flag.Parse()

	if err := run(*mute); err != nil {
		fmt.Fprintln(os.Stderr, "hangman:", err)
		os.Exit(1)
	}
}

func run(mute bool) error {
	_ = godotenv.Load()
	var cfg tuiConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	logger, closeLog, err := openLog(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	book, err := phrasebook.Load(cfg.PhrasesFile)
	if err != nil {
		return fmt.Errorf("load phrases: %w", err)
	}
	frames, err := assets.Gallows()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Game:   game.Options{RejectRepeats: cfg.RejectRepeatedGuesses},
		Book:   book,
		Frames: frames,
		Logger: logger,
	}
	if !mute {
		snd, err := tui.NewSound()
		if err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			defer snd.Close()
			opts.Sound = snd
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	logger.Info().Int("phrases", book.Len()).Msg("terminal client started")
	if err := tui.New(screen, opts).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// openLog returns a file logger, or a disabled one when path is empty.
func openLog(path, level string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(f).Level(lvl).With().Timestamp().Logger(), func() { _ = f.Close() }, nil
}
