// internal/httpserver/routes_daily.go
//
// Phrase selection for POST /game/new.
//   - daily:  the phrase of the day, the same for every player on a UTC date,
//             chosen by a keyed hash of the date and DAILY_SALT.
//   - random: a random phrase from the phrase book.
//   - otherwise the phrase supplied by the player.
//
// Daily rounds are ordinary sessions; no results are recorded.

package httpserver

import (
	"github.com/robalobadob/hangman/internal/daily"
)

// choosePhrase returns the phrase for req and, for daily rounds, its date key.
func (s *Server) choosePhrase(req newGameReq) (text, date string) {
	switch {
	case req.Daily:
		now := s.now().UTC()
		idx := daily.Index(now, s.cfg.Game.DailySalt, s.book.Len())
		return s.book.At(idx), daily.DateKey(now)
	case req.Random:
		return s.book.Random(), ""
	default:
		return req.Phrase, ""
	}
}
