// internal/httpserver/routes_game.go
//
// Game command endpoints. Every handler below /game (except /game/new) runs
// behind requireSession and talks to the controller only inside Session.Do.
// Rejected commands answer 200 with accepted=false; out-of-range indices and
// unknown colors answer 400.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/store"
)

// newGameReq is the optional body of POST /game/new.
type newGameReq struct {
	TestMode     *bool `json:"testMode"`
	TutorialMode bool  `json:"tutorialMode"`
}

type newGameRes struct {
	GameID string              `json:"gameId"`
	Game   controller.Snapshot `json:"game"`
}

// commandRes is returned by every command endpoint.
type commandRes struct {
	Accepted   bool                   `json:"accepted"`
	Submission *controller.Submission `json:"submission,omitempty"`
	Game       controller.Snapshot    `json:"game"`
}

type selectReq struct {
	// Color nil or -1 clears the selection.
	Color *game.Color `json:"color"`
}

type cellReq struct {
	Row  int `json:"row"`
	Slot int `json:"slot"`
	// Color nil means "use the armed selection".
	Color *game.Color `json:"color,omitempty"`
}

type moveReq struct {
	Row  int `json:"row"`
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body is fine

	testMode := s.opt.TestMode
	if req.TestMode != nil {
		testMode = *req.TestMode
	}
	s.startSession(w, r, s.newController(nil, testMode, req.TutorialMode))
}

// startSession saves a session for ctrl, sets the cookie and writes the
// initial snapshot.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, ctrl *controller.Controller) {
	sess := store.NewSession(ctrl)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signSession(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeErr(w, http.StatusInternalServerError, "token_failed")
		return
	}
	setSessionCookie(w, tok, exp)

	var snap controller.Snapshot
	_ = sess.Do(func(c *controller.Controller) error {
		snap = c.Snapshot()
		return nil
	})
	log.Debug().Str("gameId", sess.ID).Bool("testMode", snap.TestMode).Msg("new game")
	writeJSON(w, newGameRes{GameID: sess.ID, Game: snap})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, func(c *controller.Controller) (commandRes, error) {
		return commandRes{Accepted: true}, nil
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if !decode(w, r, &req) {
		return
	}
	s.run(w, r, func(c *controller.Controller) (commandRes, error) {
		if req.Color == nil || *req.Color == game.NoColor {
			c.Deselect()
			return commandRes{Accepted: true}, nil
		}
		if err := c.SelectColor(*req.Color); err != nil {
			return commandRes{}, err
		}
		return commandRes{Accepted: true}, nil
	})
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	if !decode(w, r, &req) {
		return
	}
	s.run(w, r, func(c *controller.Controller) (commandRes, error) {
		var (
			ok  bool
			err error
		)
		if req.Color == nil {
			ok, err = c.PlaceSelected(req.Row, req.Slot)
		} else {
			ok, err = c.PlaceColor(req.Row, req.Slot, *req.Color)
		}
		return commandRes{Accepted: ok}, err
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	if !decode(w, r, &req) {
		return
	}
	s.run(w, r, func(c *controller.Controller) (commandRes, error) {
		ok, err := c.ClearSlot(req.Row, req.Slot)
		return commandRes{Accepted: ok}, err
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if !decode(w, r, &req) {
		return
	}
	s.run(w, r, func(c *controller.Controller) (commandRes, error) {
		ok, err := c.MovePeg(req.Row, req.From, req.To)
		return commandRes{Accepted: ok}, err
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, func(c *controller.Controller) (commandRes, error) {
		sub := c.SubmitRow()
		return commandRes{Accepted: sub.Accepted, Submission: &sub}, nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, func(c *controller.Controller) (commandRes, error) {
		c.Reset()
		return commandRes{Accepted: true}, nil
	})
}

// run executes cmd under the session lock and writes the result with a
// fresh snapshot taken under the same lock.
func (s *Server) run(w http.ResponseWriter, r *http.Request, cmd func(*controller.Controller) (commandRes, error)) {
	sess := sessionFrom(r)
	var res commandRes
	err := sess.Do(func(c *controller.Controller) error {
		var err error
		if res, err = cmd(c); err != nil {
			return err
		}
		res.Game = c.Snapshot()
		return nil
	})
	if err != nil {
		if game.IsPrecondition(err) {
			writeErrDetail(w, http.StatusBadRequest, "precondition", err.Error())
			return
		}
		log.Error().Err(err).Str("gameId", sess.ID).Msg("command failed")
		writeErr(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, res)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}
