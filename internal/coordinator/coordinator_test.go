package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"stackduel/internal/protocol"
	"stackduel/internal/store"
)

// fakeStore is an in-memory stand-in for the durable record store.
type fakeStore struct {
	mu      sync.Mutex
	players map[string]*store.Player
	matches map[string]*store.Match

	failSetStatus bool
	failList      bool

	winLossCalls []string // "winner/loser"
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players: make(map[string]*store.Player),
		matches: make(map[string]*store.Match),
	}
}

func (f *fakeStore) addPlayer(id, username, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players[id] = &store.Player{ID: id, Username: username, Status: status}
}

func (f *fakeStore) addMatch(id, player1 string, player2 *string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[id] = &store.Match{ID: id, Player1ID: player1, Player2ID: player2, Status: store.MatchReady}
}

func (f *fakeStore) GetMatch(_ context.Context, id string) (*store.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) SetParticipantReady(_ context.Context, matchID string, slot int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[matchID]
	if !ok {
		return store.ErrNotFound
	}
	if slot == 1 {
		m.Player1Ready = true
	} else {
		m.Player2Ready = true
	}
	return nil
}

func (f *fakeStore) SetMatchStatus(_ context.Context, matchID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[matchID]
	if !ok {
		return store.ErrNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeStore) ListLobbyPlayers(_ context.Context, excludeID string) ([]store.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errors.New("store down")
	}
	var out []store.Player
	for _, p := range f.players {
		if p.Status == store.StatusPlaying || p.ID == excludeID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) SetPlayerStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSetStatus {
		return errors.New("store down")
	}
	p, ok := f.players[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeStore) IncrementWinLoss(_ context.Context, winnerID, loserID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.winLossCalls = append(f.winLossCalls, winnerID+"/"+loserID)
	if p, ok := f.players[winnerID]; ok {
		p.Wins++
	}
	if p, ok := f.players[loserID]; ok {
		p.Losses++
	}
	return nil
}

func (f *fakeStore) matchStatus(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matches[id].Status
}

func (f *fakeStore) playerStatus(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.players[id].Status
}

// fakeConn records everything delivered to it.
type fakeConn struct {
	mu     sync.Mutex
	events []any
}

func (c *fakeConn) Deliver(v any) {
	c.mu.Lock()
	c.events = append(c.events, v)
	c.mu.Unlock()
}

func (c *fakeConn) all() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.events...)
}

func (c *fakeConn) count(match func(any) bool) int {
	n := 0
	for _, e := range c.all() {
		if match(e) {
			n++
		}
	}
	return n
}

func isMatchStart(e any) bool {
	_, ok := e.(protocol.MatchStart)
	return ok
}

func isOpponentLeft(e any) bool {
	_, ok := e.(protocol.OpponentLeft)
	return ok
}

func isOpponentState(e any) bool {
	_, ok := e.(protocol.OpponentState)
	return ok
}

// twoPlayerRoom wires the common scenario: players a and b joined match
// "m1" on their own connections.
func twoPlayerRoom(c *Coordinator, st *fakeStore) (*fakeConn, *fakeConn) {
	st.addPlayer("a", "alice", store.StatusWaiting)
	st.addPlayer("b", "bob", store.StatusWaiting)
	p2 := "b"
	st.addMatch("m1", "a", &p2)

	ca := &fakeConn{}
	cb := &fakeConn{}
	c.Connect(ca)
	c.Connect(cb)
	ctx := context.Background()
	_, _ = c.JoinRoom(ctx, ca, "m1", "a")
	_, _ = c.JoinRoom(ctx, cb, "m1", "b")
	return ca, cb
}

const testCountdown = 20 * time.Millisecond

func newTestCoordinator(st *fakeStore, opts Options) *Coordinator {
	if opts.Countdown == 0 {
		opts.Countdown = testCountdown
	}
	return New(st, opts)
}
