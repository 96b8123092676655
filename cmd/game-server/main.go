package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"stackduel/internal/app/games"
	"stackduel/internal/app/players"
	"stackduel/internal/auth"
	"stackduel/internal/config"
	"stackduel/internal/coordinator"
	"stackduel/internal/logging"
	"stackduel/internal/store"
	"stackduel/internal/ws"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}

	signer := auth.NewSigner(cfg.Server.JWTSecret, time.Duration(cfg.Server.JWTTTLMins)*time.Minute)
	coord := coordinator.New(st, coordinator.Options{
		Countdown:       time.Duration(cfg.Coordinator.CountdownSeconds) * time.Second,
		DestroyFinished: cfg.Coordinator.DestroyFinished,
	})
	wsrv := ws.NewServer(coord, signer, cfg.Coordinator.SendBuffer)
	playersSvc := players.NewService(st, signer)
	gamesSvc := games.NewService(st, coord)

	router := newRouter(st, cfg.Server, signer, coord, wsrv, playersSvc, gamesSvc)
	srv := &http.Server{Addr: cfg.Server.HTTPAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("game server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
