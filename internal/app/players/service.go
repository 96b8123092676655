package players

import (
	"context"
	"errors"
	"strings"

	"stackduel/internal/auth"
	"stackduel/internal/store"
)

// Store is the slice of the durable store this service needs.
type Store interface {
	CreatePlayer(ctx context.Context, email, username, passwordHash string) (string, error)
	GetPlayerByEmail(ctx context.Context, email string) (*store.Player, error)
	GetPlayer(ctx context.Context, id string) (*store.Player, error)
	ListLobbyPlayers(ctx context.Context, excludeID string) ([]store.Player, error)
}

type Service struct {
	store  Store
	signer *auth.Signer
}

func NewService(st Store, signer *auth.Signer) *Service {
	return &Service{store: st, signer: signer}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || len(req.Password) < 6 {
		return nil, ErrInvalidRequest
	}
	if _, err := s.store.GetPlayerByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	id, err := s.store.CreatePlayer(ctx, email, username, hash)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{PlayerID: id}, nil
}

// Login verifies the credentials and returns a signed token together with
// the lobby as the player will first see it.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	p, err := s.store.GetPlayerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(p.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(p.ID)
	if err != nil {
		return nil, err
	}
	lobby, err := s.Lobby(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token: token,
		User: UserInfo{
			ID:       p.ID,
			Username: p.Username,
			Email:    p.Email,
			Status:   p.Status,
			Wins:     p.Wins,
			Losses:   p.Losses,
		},
		Lobby: lobby,
	}, nil
}

// Lobby lists players available for matchmaking, excluding the viewer.
func (s *Service) Lobby(ctx context.Context, viewerID string) ([]LobbyPlayer, error) {
	items, err := s.store.ListLobbyPlayers(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	out := make([]LobbyPlayer, 0, len(items))
	for _, p := range items {
		out = append(out, LobbyPlayer{ID: p.ID, Username: p.Username, Status: p.Status})
	}
	return out, nil
}
