package main

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"stackduel/internal/app/games"
	"stackduel/internal/app/players"
	"stackduel/internal/auth"
	"stackduel/internal/config"
	"stackduel/internal/coordinator"
	"stackduel/internal/store"
	"stackduel/internal/ws"
)

func newRouter(
	st *store.Store,
	cfg config.ServerConfig,
	signer *auth.Signer,
	coord *coordinator.Coordinator,
	wsrv *ws.Server,
	playersSvc *players.Service,
	gamesSvc *games.Service,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(apiLogMiddleware())
	r.Use(corsMiddleware(cfg.CORSOrigin))

	r.Get("/healthz", healthHandler(st))
	r.Get("/ws", wsrv.HandleWS)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", registerHandler(playersSvc))
		r.Post("/login", loginHandler(playersSvc))

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(signer))
			r.Get("/lobby", lobbyHandler(playersSvc))
			r.Put("/player/status", statusHandler(coord))
			r.Post("/game/create", createGameHandler(gamesSvc))
			r.Post("/game/join/{matchID}", joinGameHandler(gamesSvc))
			r.Get("/game/by-player/{playerID}", gameByPlayerHandler(gamesSvc))
		})
	})

	return r
}
