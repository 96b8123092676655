package players

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stackduel/internal/auth"
	"stackduel/internal/store"
)

type fakeStore struct {
	mu      sync.Mutex
	byID    map[string]*store.Player
	byEmail map[string]*store.Player
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:    make(map[string]*store.Player),
		byEmail: make(map[string]*store.Player),
	}
}

func (f *fakeStore) CreatePlayer(_ context.Context, email, username, passwordHash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &store.Player{ID: store.NewID(), Email: email, Username: username, PasswordHash: passwordHash, Status: store.StatusIdle}
	f.byID[p.ID] = p
	f.byEmail[email] = p
	return p.ID, nil
}

func (f *fakeStore) GetPlayerByEmail(_ context.Context, email string) (*store.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) GetPlayer(_ context.Context, id string) (*store.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ListLobbyPlayers(_ context.Context, excludeID string) ([]store.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Player
	for _, p := range f.byID {
		if p.Status == store.StatusPlaying || p.ID == excludeID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func newTestService() (*Service, *fakeStore, *auth.Signer) {
	st := newFakeStore()
	signer := auth.NewSigner("test-secret", time.Hour)
	return NewService(st, signer), st, signer
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, signer := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{Email: "Alice@Example.com", Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, reg.PlayerID)

	resp, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.User.Username)
	require.Empty(t, resp.Lobby)

	id, err := signer.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, reg.PlayerID, id)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "", Username: "x", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Username: "x", Password: "short"})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Username: "x", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Username: "y", Password: "secret2"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Username: "x", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, LoginRequest{Email: "a@b.c", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLobbyExcludesViewerAndPlaying(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterRequest{Email: "a@b.c", Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Email: "b@b.c", Username: "bob", Password: "secret1"})
	require.NoError(t, err)
	c, err := svc.Register(ctx, RegisterRequest{Email: "c@b.c", Username: "carol", Password: "secret1"})
	require.NoError(t, err)
	st.mu.Lock()
	st.byID[c.PlayerID].Status = store.StatusPlaying
	st.mu.Unlock()

	lobby, err := svc.Lobby(ctx, a.PlayerID)
	require.NoError(t, err)
	require.Len(t, lobby, 1)
	require.Equal(t, "bob", lobby[0].Username)
}
