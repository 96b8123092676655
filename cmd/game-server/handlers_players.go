package main

import (
	"errors"
	"net/http"

	"stackduel/internal/app/players"
	"stackduel/internal/auth"
	"stackduel/internal/coordinator"
	"stackduel/internal/store"
)

func registerHandler(svc *players.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req players.RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		resp, err := svc.Register(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, players.ErrInvalidRequest):
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, players.ErrEmailTaken):
				writeHTTPError(w, http.StatusConflict, "email_taken")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, resp)
	}
}

func loginHandler(svc *players.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req players.LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			if errors.Is(err, players.ErrInvalidCredentials) {
				writeHTTPError(w, http.StatusUnauthorized, "invalid_credentials")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, resp)
	}
}

func lobbyHandler(svc *players.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobby, err := svc.Lobby(r.Context(), auth.PlayerID(r.Context()))
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"players": lobby})
	}
}

func statusHandler(coord *coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		err := coord.UpdateStatus(r.Context(), auth.PlayerID(r.Context()), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, coordinator.ErrInvalidStatus):
				writeHTTPError(w, http.StatusBadRequest, "invalid_status")
			case errors.Is(err, coordinator.ErrStoreUnavailable):
				writeHTTPError(w, http.StatusServiceUnavailable, "store_unavailable")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, map[string]any{"status": req.Status})
	}
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			writeHTTPError(w, http.StatusServiceUnavailable, "db_unreachable")
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}
