package coordinator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"stackduel/internal/protocol"
	"stackduel/internal/store"
)

func TestRelayMoveForwardsToOpponentOnly(t *testing.T) {
	st := newFakeStore()
	c := newTestCoordinator(st, Options{})
	ca, cb := twoPlayerRoom(c, st)

	payload := json.RawMessage(`{"arena":[[0,1]],"pos":{"x":3,"y":0}}`)
	c.RelayMove("m1", 1, payload)

	require.Equal(t, 0, ca.count(isOpponentState))
	require.Equal(t, 1, cb.count(func(e any) bool {
		s, ok := e.(protocol.OpponentState)
		return ok && s.Slot == 1 && string(s.Payload) == string(payload)
	}))
}

func TestRelayMoveWithoutOpponentIsSilent(t *testing.T) {
	st := newFakeStore()
	c := newTestCoordinator(st, Options{})
	st.addPlayer("a", "alice", store.StatusWaiting)
	st.addMatch("m1", "a", nil)

	ca := &fakeConn{}
	c.Connect(ca)
	_, err := c.JoinRoom(context.Background(), ca, "m1", "a")
	require.NoError(t, err)

	c.RelayMove("m1", 1, json.RawMessage(`{}`))
	c.RelayMove("unknown", 1, json.RawMessage(`{}`))
	require.Equal(t, 0, ca.count(isOpponentState))
}

func TestRelayScoreReachesWholeRoom(t *testing.T) {
	st := newFakeStore()
	c := newTestCoordinator(st, Options{})
	ca, cb := twoPlayerRoom(c, st)

	c.RelayScore("m1", "a", 1200)

	for _, conn := range []*fakeConn{ca, cb} {
		require.Equal(t, 1, conn.count(func(e any) bool {
			s, ok := e.(protocol.ScoreUpdate)
			return ok && s.PlayerID == "a" && s.Score == 1200
		}))
	}
}

func TestGameOverResolvesOtherParticipantAsWinner(t *testing.T) {
	st := newFakeStore()
	c := newTestCoordinator(st, Options{})
	ca, cb := twoPlayerRoom(c, st)
	ctx := context.Background()

	require.NoError(t, c.GameOver(ctx, "m1", "a"))

	for _, conn := range []*fakeConn{ca, cb} {
		require.Equal(t, 1, conn.count(func(e any) bool {
			r, ok := e.(protocol.MatchResult)
			return ok && r.WinnerID == "b" && r.LoserID == "a"
		}))
	}
	require.Equal(t, []string{"b/a"}, st.winLossCalls)
	require.Equal(t, store.MatchFinished, st.matchStatus("m1"))
	require.Equal(t, store.StatusIdle, st.playerStatus("a"))
	require.Equal(t, store.StatusIdle, st.playerStatus("b"))

	// Default policy: the finished room lingers until disconnect.
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotNil(t, c.rooms["m1"])
}

func TestGameOverAloneIsAmbiguous(t *testing.T) {
	st := newFakeStore()
	c := newTestCoordinator(st, Options{})
	st.addPlayer("a", "alice", store.StatusWaiting)
	st.addMatch("m1", "a", nil)

	ca := &fakeConn{}
	c.Connect(ca)
	ctx := context.Background()
	_, err := c.JoinRoom(ctx, ca, "m1", "a")
	require.NoError(t, err)

	require.ErrorIs(t, c.GameOver(ctx, "m1", "a"), ErrAmbiguousWinner)
	require.ErrorIs(t, c.GameOver(ctx, "unknown", "a"), ErrMatchNotFound)
	require.Empty(t, st.winLossCalls)
}

func TestGameOverDestroyFinishedPolicy(t *testing.T) {
	st := newFakeStore()
	c := newTestCoordinator(st, Options{DestroyFinished: true})
	_, _ = twoPlayerRoom(c, st)

	require.NoError(t, c.GameOver(context.Background(), "m1", "a"))

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Nil(t, c.rooms["m1"])
	require.Empty(t, c.byPlayer)
}
