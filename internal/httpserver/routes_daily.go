// internal/httpserver/routes_daily.go
//
// Daily game: POST /daily/new starts a session whose codes come from
// seed.Daily(today, DailySalt), so every player faces the same sequence of
// codes on the same UTC date. The session then uses the ordinary /game
// endpoints.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/mastermind/internal/seed"
)

type dailyReq struct {
	TutorialMode bool `json:"tutorialMode"`
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

// handleDailyNew starts a date-seeded game. Test mode is never applied:
// it would replace the shared code with the player's first row.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req dailyReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	now := s.opt.Now()
	w.Header().Set("X-Daily-Date", seed.DateKey(now))
	s.startSession(w, r, s.newController(seed.Daily(now, s.opt.DailySalt), false, req.TutorialMode))
}
