package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "5175" || cfg.Addr() != ":5175" {
		t.Fatalf("Port/Addr = %s/%s", cfg.Server.Port, cfg.Addr())
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Game.SessionTTL != 2*time.Hour {
		t.Fatalf("durations = %s/%s", cfg.Auth.TokenTTL, cfg.Game.SessionTTL)
	}
	if cfg.Game.RejectRepeatedGuesses {
		t.Fatal("repeated guesses should count by default")
	}
	if cfg.Storage.DatabasePath != "" || cfg.IsProduction() {
		t.Fatalf("unexpected storage/env: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REJECT_REPEATED_GUESSES", "true")
	t.Setenv("DATABASE_PATH", "./data/hangman.db")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != "127.0.0.1:9000" || !cfg.IsProduction() {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Game.SessionTTL != 30*time.Minute || !cfg.Game.RejectRepeatedGuesses {
		t.Fatalf("game = %+v", cfg.Game)
	}
	if cfg.Storage.DatabasePath != "./data/hangman.db" || cfg.Logging.Format != "json" {
		t.Fatalf("storage/logging = %+v %+v", cfg.Storage, cfg.Logging)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("want parse error")
	}
	t.Setenv("SESSION_TTL", "0s")
	if _, err := Load(); err == nil {
		t.Fatal("want non-positive error")
	}
}
