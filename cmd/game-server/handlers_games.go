package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stackduel/internal/app/games"
	"stackduel/internal/auth"
)

func createGameHandler(svc *games.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := svc.Create(r.Context(), auth.PlayerID(r.Context()))
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"match_id": matchID})
	}
}

func joinGameHandler(svc *games.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := chi.URLParam(r, "matchID")
		err := svc.Join(r.Context(), matchID, auth.PlayerID(r.Context()))
		if err != nil {
			switch {
			case errors.Is(err, games.ErrMatchNotFound):
				writeHTTPError(w, http.StatusNotFound, "match_not_found")
			case errors.Is(err, games.ErrMatchUnavailable):
				writeHTTPError(w, http.StatusConflict, "match_unavailable")
			case errors.Is(err, games.ErrOwnMatch):
				writeHTTPError(w, http.StatusBadRequest, "own_match")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, map[string]any{"match_id": matchID})
	}
}

func gameByPlayerHandler(svc *games.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := svc.FindWaiting(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			if errors.Is(err, games.ErrMatchNotFound) {
				writeHTTPError(w, http.StatusNotFound, "match_not_found")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"match_id": matchID})
	}
}
