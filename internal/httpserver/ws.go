// internal/httpserver/ws.go
//
// Websocket stream for one game.
//   - On connect the client receives the current view, then one "state"
//     message per accepted guess (from any client of the same game).
//   - The client may send {"type":"guess","guess":"a"}; rejected guesses are
//     answered with {"type":"error","error":"<code>"}.
//   - The subscription is scoped to the session: when the game is restarted
//     or evicted the server sends a close frame and drops the connection.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/hub"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// wsMessage is the envelope for both directions.
type wsMessage struct {
	Type  string     `json:"type"`
	Guess string     `json:"guess,omitempty"`
	View  *game.View `json:"view,omitempty"`
	Error string     `json:"error,omitempty"`
}

// checkOrigin accepts same-origin requests, the configured client origin,
// and anything outside production.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.cfg.Server.ClientOrigin || !s.cfg.IsProduction()
}

// handleWS upgrades the connection and streams the game's events.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims, err := s.parseToken(tokenFromRequest(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}
	if claims.GameID != id {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	sess, err := s.hub.Get(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	events, cancel := sess.Subscribe()
	c := &wsClient{
		conn:    conn,
		hub:     s.hub,
		gameID:  id,
		events:  events,
		cancel:  cancel,
		replies: make(chan wsMessage, 8),
		done:    make(chan struct{}),
		log:     hlog.FromRequest(r).With().Str("gameId", id).Logger(),
	}
	c.log.Info().Msg("websocket connected")
	c.run()
	c.log.Info().Msg("websocket disconnected")
}

// wsClient pumps one connection. Only writePump writes to conn.
type wsClient struct {
	conn    *websocket.Conn
	hub     *hub.Hub
	gameID  string
	events  <-chan game.Event
	cancel  func()
	replies chan wsMessage
	done    chan struct{} // closed when writePump exits
	log     zerolog.Logger
}

func (c *wsClient) run() {
	go c.writePump()
	c.readPump()
	<-c.done
}

// readPump reads guesses until the connection fails, then releases the
// subscription, which in turn stops writePump.
func (c *wsClient) readPump() {
	defer c.cancel()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
		c.handle(data)
	}
}

func (c *wsClient) handle(data []byte) {
	var msg wsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reply(wsMessage{Type: "error", Error: "bad_json"})
		return
	}
	switch msg.Type {
	case "guess":
		// the resulting state arrives through the subscription
		if _, _, err := c.hub.Guess(context.Background(), c.gameID, msg.Guess); err != nil {
			_, code := errorCode(err)
			c.reply(wsMessage{Type: "error", Error: code})
		}
	case "ping":
		c.reply(wsMessage{Type: "pong"})
	default:
		c.reply(wsMessage{Type: "error", Error: "unknown_type"})
	}
}

func (c *wsClient) reply(m wsMessage) {
	select {
	case c.replies <- m:
	case <-c.done:
	default:
		c.log.Warn().Str("type", m.Type).Msg("reply buffer full, message dropped")
	}
}

// writePump forwards events and replies, and pings the peer.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.events:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game ended"))
				return
			}
			v := ev.View
			if err := c.conn.WriteJSON(wsMessage{Type: string(ev.Type), View: &v}); err != nil {
				return
			}
		case m := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(m); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
