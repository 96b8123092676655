// Package games implements the match CRUD flow: creating an open match,
// joining it as the second player, and finding one's own open match. The
// realtime lifecycle past this point belongs to the coordinator.
package games

import (
	"context"
	"errors"

	"stackduel/internal/store"
)

type Store interface {
	CreateMatch(ctx context.Context, player1ID string) (string, error)
	GetMatch(ctx context.Context, id string) (*store.Match, error)
	AttachOpponent(ctx context.Context, matchID, player2ID string) error
	SetPlayerStatus(ctx context.Context, id, status string) error
	FindWaitingMatchByOwner(ctx context.Context, ownerID string) (string, error)
}

// Notifier pushes realtime side effects of the CRUD flow.
type Notifier interface {
	BroadcastLobby(ctx context.Context)
	AnnounceJoin(matchID, playerID string)
}

type Service struct {
	store    Store
	notifier Notifier
}

func NewService(st Store, notifier Notifier) *Service {
	return &Service{store: st, notifier: notifier}
}

// Create opens a new match owned by ownerID and marks the owner as
// waiting for an opponent.
func (s *Service) Create(ctx context.Context, ownerID string) (string, error) {
	matchID, err := s.store.CreateMatch(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if err := s.store.SetPlayerStatus(ctx, ownerID, store.StatusWaiting); err != nil {
		return "", err
	}
	s.notifier.BroadcastLobby(ctx)
	return matchID, nil
}

// Join attaches playerID as the second participant of an open match.
func (s *Service) Join(ctx context.Context, matchID, playerID string) error {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	if m.Status != store.MatchWaiting {
		return ErrMatchUnavailable
	}
	if m.Player1ID == playerID {
		return ErrOwnMatch
	}
	if err := s.store.AttachOpponent(ctx, matchID, playerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost the race against another joiner.
			return ErrMatchUnavailable
		}
		return err
	}
	if err := s.store.SetPlayerStatus(ctx, playerID, store.StatusWaiting); err != nil {
		return err
	}
	s.notifier.BroadcastLobby(ctx)
	s.notifier.AnnounceJoin(matchID, playerID)
	return nil
}

// FindWaiting returns ownerID's open match, if any.
func (s *Service) FindWaiting(ctx context.Context, ownerID string) (string, error) {
	id, err := s.store.FindWaitingMatchByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrMatchNotFound
		}
		return "", err
	}
	return id, nil
}
