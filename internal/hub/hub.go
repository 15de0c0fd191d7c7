// internal/hub/hub.go
//
// Hub owns every live game session.
// Responsibilities:
//   - Create, look up, guess on and discard sessions.
//   - Persist a snapshot to the Store after every state change.
//   - Reload snapshots at startup (Restore).
//   - Evict sessions idle longer than the TTL (Sweep / Run).

package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Hub manages all active game sessions.
type Hub struct {
	store store.Store
	opts  game.Options
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// New creates a hub persisting to st. Sessions idle for longer than ttl are
// evicted by Sweep.
func New(st store.Store, opts game.Options, ttl time.Duration) *Hub {
	return &Hub{
		store:    st,
		opts:     opts,
		ttl:      ttl,
		sessions: make(map[string]*game.Session),
	}
}

// Create starts a session for phrase.
func (h *Hub) Create(ctx context.Context, phrase string) (*game.Session, error) {
	s, err := game.NewSession(phrase, h.opts)
	if err != nil {
		return nil, err
	}
	if err := h.store.Save(ctx, s.Snapshot()); err != nil {
		s.Close()
		return nil, fmt.Errorf("save game: %w", err)
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	log.Info().Str("gameId", s.ID).Int("slots", len(s.View().Slots)).Msg("game created")
	return s, nil
}

// Get returns the session for id. A session missing from memory but present
// in the store (saved by an earlier process) is loaded and registered.
func (h *Hub) Get(ctx context.Context, id string) (*game.Session, error) {
	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	if ok {
		return s, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		return s, nil
	}
	snap, err := h.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	s, err = game.Restore(snap, h.opts)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("dropping unreadable snapshot")
		_ = h.store.Delete(ctx, id)
		return nil, ErrNotFound
	}
	h.sessions[id] = s
	log.Info().Str("gameId", id).Msg("game loaded from store")
	return s, nil
}

// Guess applies input to session id and persists the result. Rejected
// guesses return the unchanged view alongside the error.
func (h *Hub) Guess(ctx context.Context, id, input string) (game.Result, game.View, error) {
	s, err := h.Get(ctx, id)
	if err != nil {
		return game.Result{}, game.View{}, err
	}
	res, v, err := s.Guess(input)
	if err != nil {
		return res, v, err
	}
	err = s.Persist(func(snap game.Snapshot) error { return h.store.Save(ctx, snap) })
	switch {
	case errors.Is(err, game.ErrSessionClosed):
		// discarded while the guess was in flight; nothing to keep
	case err != nil:
		// the in-memory session stays authoritative
		log.Warn().Err(err).Str("gameId", id).Msg("persist guess")
	}
	log.Debug().Str("gameId", id).Bool("matched", res.Matched).Str("status", string(res.Status)).Msg("guess applied")
	return res, v, nil
}

// Restart discards session id; the player returns to phrase entry. The hub
// lock is held until the snapshot is gone so Get cannot load it back.
func (h *Hub) Restart(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		delete(h.sessions, id)
		s.Close()
	} else if _, err := h.store.Get(ctx, id); err != nil {
		// neither live nor stored
		return ErrNotFound
	}
	if err := h.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	log.Info().Str("gameId", id).Msg("game discarded")
	return nil
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Restore loads every stored snapshot into the hub. Snapshots that cannot
// be rebuilt are deleted.
func (h *Hub) Restore(ctx context.Context) (int, error) {
	snaps, err := h.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list games: %w", err)
	}
	n := 0
	for _, snap := range snaps {
		s, err := game.Restore(snap, h.opts)
		if err != nil {
			log.Warn().Err(err).Str("gameId", snap.ID).Msg("dropping unreadable snapshot")
			_ = h.store.Delete(ctx, snap.ID)
			continue
		}
		h.mu.Lock()
		h.sessions[s.ID] = s
		h.mu.Unlock()
		n++
	}
	return n, nil
}

// Sweep evicts sessions whose last activity is older than the TTL at now.
func (h *Hub) Sweep(ctx context.Context, now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	var stale []*game.Session
	for id, s := range h.sessions {
		if now.Sub(s.LastActive()) > h.ttl {
			stale = append(stale, s)
			delete(h.sessions, id)
		}
	}

	for _, s := range stale {
		s.Close()
		if err := h.store.Delete(ctx, s.ID); err != nil {
			log.Warn().Err(err).Str("gameId", s.ID).Msg("delete stale game")
		}
		log.Info().Str("gameId", s.ID).Msg("stale game cleaned up")
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			h.Sweep(ctx, t)
		}
	}
}

// Close ends every session without deleting snapshots, so a restart can
// resume them.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.sessions {
		s.Close()
		delete(h.sessions, id)
	}
}
