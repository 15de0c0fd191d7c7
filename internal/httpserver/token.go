package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenCookieName = "hangman_token"

// gameClaims binds a token to a single game.
type gameClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// ctxGameKey is the context key for the game ID taken from a valid token.
type ctxGameKey struct{}

// signToken creates an HS256 JWT for gameID, valid for TOKEN_TTL.
func (s *Server) signToken(gameID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.Auth.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.Auth.JWTSecret))
	return ss, exp, err
}

// parseToken verifies tok and returns its claims.
func (s *Server) parseToken(tok string) (*gameClaims, error) {
	claims := &gameClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !t.Valid || claims.GameID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// tokenFromRequest extracts a token from the Authorization header, the token
// cookie, or the "token" query parameter (browsers cannot set headers on
// websocket upgrades).
func tokenFromRequest(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(tokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// requireGameToken enforces a valid token and puts its game ID into the
// request context. Handlers still check the ID against the game they touch.
func (s *Server) requireGameToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFromRequest(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := s.parseToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxGameKey{}, claims.GameID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authorizedFor reports whether the request's token unlocks gameID.
func authorizedFor(r *http.Request, gameID string) bool {
	id, _ := r.Context().Value(ctxGameKey{}).(string)
	return id != "" && id == gameID
}

// setTokenCookie writes the token cookie with appropriate security attributes.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := s.cfg.IsProduction()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearTokenCookie deletes the token cookie.
func (s *Server) clearTokenCookie(w http.ResponseWriter) {
	secure := s.cfg.IsProduction()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   -1,
	})
}
