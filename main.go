// main.go
//
// Entry point for the hangman HTTP server.
//   - Loads .env (optional) and the environment into config.Config.
//   - Configures the global zerolog logger.
//   - Opens the session store (SQLite when DATABASE_PATH is set, memory
//     otherwise), restores open games and starts the idle sweeper.
//   - Serves until SIGINT/SIGTERM, then shuts down gracefully.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/hub"
	"github.com/robalobadob/hangman/internal/phrasebook"
	"github.com/robalobadob/hangman/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg.Logging)

	book, err := phrasebook.Load(cfg.Game.PhrasesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Game.PhrasesFile).Msg("failed to load phrases")
	}

	var st store.Store = store.NewMemoryStore()
	if path := cfg.Storage.DatabasePath; path != "" {
		db, err := store.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to open database")
		}
		defer db.Close()
		st = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.New(st, game.Options{RejectRepeats: cfg.Game.RejectRepeatedGuesses}, cfg.Game.SessionTTL)
	defer h.Close()
	if n, err := h.Restore(ctx); err != nil {
		log.Error().Err(err).Msg("restore sessions")
	} else if n > 0 {
		log.Info().Int("sessions", n).Msg("restored sessions")
	}
	go h.Run(ctx, cfg.Game.SweepInterval)

	srv := httpserver.New(cfg, h, book)
	log.Info().
		Str("addr", cfg.Addr()).
		Str("env", cfg.Server.Env).
		Int("phrases", book.Len()).
		Msg("starting hangman server")

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server exited")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped")
}

// setupLogger applies LOG_LEVEL and LOG_FORMAT to the global logger.
func setupLogger(cfg config.LoggingConfig) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
