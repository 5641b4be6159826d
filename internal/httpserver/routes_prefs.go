package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/prefs"
)

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	p, err := s.prefs.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load prefs")
		writeErr(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, p)
}

// handlePutPrefs replaces the stored pair. Both fields are required.
func (s *Server) handlePutPrefs(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Entry    *prefs.EntryMode `json:"entry"`
		Language *prefs.Language  `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrDetail(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if body.Entry == nil || body.Language == nil {
		writeErr(w, http.StatusBadRequest, "entry_and_language_required")
		return
	}
	p := prefs.Preferences{Entry: *body.Entry, Language: *body.Language}
	if err := s.prefs.Save(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("save prefs")
		writeErr(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, p)
}
