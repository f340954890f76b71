// internal/httpserver/routes_game.go
//
// JSON routes for the player's game:
//   - GET  /game        → full view of the current session
//   - POST /game/new    → start over (optional size)
//   - POST /game/guess  → pick a number
//   - POST /game/size   → change size before the first guess
//
// Every accepted operation returns a session.Outcome. Rejected guesses and
// resizes are silent: 204 No Content, nothing published.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/robalobadob/pokeguess/internal/game"
	"github.com/robalobadob/pokeguess/internal/session"
)

// newGameReq is the payload for POST /game/new. Max 0 keeps the current size.
type newGameReq struct {
	Max int `json:"max"`
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	Number int `json:"number"`
}

// sizeReq is the payload for POST /game/size. A missing max falls back
// to the default size.
type sizeReq struct {
	Max *int `json:"max"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, session.Outcome{View: playerFrom(r).View()})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means "same size"
	writeJSON(w, http.StatusOK, playerFrom(r).NewGame(req.Max))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	out, ok := playerFrom(r).Guess(req.Number)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	var req sizeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	out, ok := playerFrom(r).Resize(sizeOrDefault(req.Max))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDebugTarget reveals the target. Only mounted with DEBUG_TARGET set.
func (s *Server) handleDebugTarget(w http.ResponseWriter, r *http.Request) {
	snap := playerFrom(r).Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"target": snap.Target, "max": snap.Max, "state": snap.State})
}

func sizeOrDefault(n *int) int {
	if n == nil {
		return game.DefaultMax
	}
	return *n
}
