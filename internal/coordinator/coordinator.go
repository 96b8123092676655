// Package coordinator turns independent socket connections into a
// consistent notion of lobby, room and match lifecycle. It owns the
// in-memory room table and connection registry; durable player and match
// records live behind the Store interface and every read of them is
// treated as possibly stale.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"stackduel/internal/protocol"
	"stackduel/internal/store"
)

// Conn is the transport-side handle for one connected client. Deliver is
// best-effort and must not block.
type Conn interface {
	Deliver(v any)
}

// Store is the narrow durable-store surface the coordinator consumes.
// *store.Store satisfies it.
type Store interface {
	GetMatch(ctx context.Context, id string) (*store.Match, error)
	SetParticipantReady(ctx context.Context, matchID string, slot int) error
	SetMatchStatus(ctx context.Context, matchID, status string) error
	ListLobbyPlayers(ctx context.Context, excludeID string) ([]store.Player, error)
	SetPlayerStatus(ctx context.Context, id, status string) error
	IncrementWinLoss(ctx context.Context, winnerID, loserID string) error
}

type Options struct {
	// Countdown is the delay between both players signalling ready and
	// the start broadcast.
	Countdown time.Duration

	// DestroyFinished tears a room down right after the match result
	// broadcast. When false the room lingers until its participants
	// disconnect.
	DestroyFinished bool
}

// session is one connection-registry entry.
type session struct {
	playerID string
}

type Coordinator struct {
	store           Store
	countdown       time.Duration
	destroyFinished bool

	mu       sync.Mutex
	rooms    map[string]*room
	conns    map[Conn]*session
	byPlayer map[string]*room
}

func New(st Store, opts Options) *Coordinator {
	countdown := opts.Countdown
	if countdown <= 0 {
		countdown = 5 * time.Second
	}
	return &Coordinator{
		store:           st,
		countdown:       countdown,
		destroyFinished: opts.DestroyFinished,
		rooms:           make(map[string]*room),
		conns:           make(map[Conn]*session),
		byPlayer:        make(map[string]*room),
	}
}

// Connect registers a live transport connection with no identity bound
// yet.
func (c *Coordinator) Connect(conn Conn) {
	c.mu.Lock()
	c.conns[conn] = &session{}
	c.mu.Unlock()
}

// Login binds a pre-validated identity to the connection and recomputes
// the lobby for everyone.
func (c *Coordinator) Login(ctx context.Context, conn Conn, playerID string) {
	c.mu.Lock()
	sess := c.conns[conn]
	if sess == nil {
		sess = &session{}
		c.conns[conn] = sess
	}
	sess.playerID = playerID
	c.mu.Unlock()

	log.Info().Str("player_id", playerID).Msg("player_login")
	c.BroadcastLobby(ctx)
}

// JoinRoom validates playerID against the durable match record, binds the
// connection into the match's room (creating it on first join) and
// notifies the opposing slot. Rejoining overwrites the previous binding,
// which is how a reconnecting client rebuilds its room entry after a
// server restart or a dropped socket.
func (c *Coordinator) JoinRoom(ctx context.Context, conn Conn, matchID, playerID string) (int, error) {
	m, err := c.store.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrMatchNotFound
		}
		return 0, wrapStoreErr(err)
	}
	slot := m.Slot(playerID)
	if slot == 0 {
		return 0, ErrNotAParticipant
	}

	c.mu.Lock()
	// A player occupies at most one room; moving to another match
	// unbinds the previous room first.
	if prev := c.byPlayer[playerID]; prev != nil && prev.matchID != matchID {
		c.unbindLocked(prev, playerID)
	}
	rm := c.rooms[matchID]
	if rm == nil {
		rm = newRoom(matchID)
		c.rooms[matchID] = rm
	}
	rm.participants[playerID] = &participant{conn: conn, slot: slot}
	c.byPlayer[playerID] = rm

	sess := c.conns[conn]
	if sess == nil {
		sess = &session{}
		c.conns[conn] = sess
	}
	sess.playerID = playerID

	rm.broadcastExcept(slot, protocol.OpponentJoined{
		Type:     "opponent_joined",
		MatchID:  matchID,
		PlayerID: playerID,
		Slot:     slot,
	})
	c.mu.Unlock()

	log.Info().Str("match_id", matchID).Str("player_id", playerID).Int("slot", slot).Msg("room_join")
	return slot, nil
}

// AnnounceJoin tells a match's room that playerID has been attached as
// the second participant. Called from the HTTP join flow, where the
// opponent may already be sitting in the room waiting.
func (c *Coordinator) AnnounceJoin(matchID, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rm := c.rooms[matchID]
	if rm == nil {
		return
	}
	rm.broadcast(protocol.OpponentJoined{
		Type:     "opponent_joined",
		MatchID:  matchID,
		PlayerID: playerID,
		Slot:     2,
	})
}

// Disconnect reconciles transport loss: it removes the registry entry,
// unbinds the player from its room, notifies the remaining participant
// and destroys the room when it empties. In-memory cleanup never waits on
// the durable store; the status reset afterwards is best-effort.
func (c *Coordinator) Disconnect(conn Conn) {
	c.mu.Lock()
	sess := c.conns[conn]
	delete(c.conns, conn)
	if sess == nil || sess.playerID == "" {
		c.mu.Unlock()
		return
	}
	playerID := sess.playerID

	rm := c.byPlayer[playerID]
	var vacated int
	if rm != nil {
		p := rm.participants[playerID]
		// A reconnect may have rebound the slot to a newer connection;
		// only the binding's own socket may remove it.
		if p != nil && p.conn == conn {
			vacated = p.slot
			c.unbindLocked(rm, playerID)
		}
	}
	c.mu.Unlock()

	if vacated != 0 {
		log.Info().Str("player_id", playerID).Int("slot", vacated).Msg("room_leave")
	}

	ctx := context.Background()
	if err := c.store.SetPlayerStatus(ctx, playerID, store.StatusIdle); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("status reset on disconnect failed")
	}
	c.BroadcastLobby(ctx)
}

// BroadcastLobby recomputes the lobby and fans it out to every logged-in
// connection, excluding each recipient's own row. Delivery is at-most-once
// best-effort; a store failure is logged and swallowed.
func (c *Coordinator) BroadcastLobby(ctx context.Context) {
	players, err := c.store.ListLobbyPlayers(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("lobby recompute failed")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for conn, sess := range c.conns {
		if sess.playerID == "" {
			continue
		}
		visible := make([]protocol.LobbyPlayer, 0, len(players))
		for _, p := range players {
			if p.ID == sess.playerID {
				continue
			}
			visible = append(visible, protocol.LobbyPlayer{ID: p.ID, Username: p.Username, Status: p.Status})
		}
		conn.Deliver(protocol.LobbyUpdate{Type: "lobby_update", Players: visible})
	}
}

// LobbyFor returns the lobby as seen by one viewer, same exclusion rule
// as the broadcast path.
func (c *Coordinator) LobbyFor(ctx context.Context, viewerID string) ([]protocol.LobbyPlayer, error) {
	players, err := c.store.ListLobbyPlayers(ctx, viewerID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	out := make([]protocol.LobbyPlayer, 0, len(players))
	for _, p := range players {
		out = append(out, protocol.LobbyPlayer{ID: p.ID, Username: p.Username, Status: p.Status})
	}
	return out, nil
}

// UpdateStatus applies a player-initiated status change and recomputes
// the lobby.
func (c *Coordinator) UpdateStatus(ctx context.Context, playerID, status string) error {
	if !store.ValidPlayerStatus(status) {
		return ErrInvalidStatus
	}
	if err := c.store.SetPlayerStatus(ctx, playerID, status); err != nil {
		return wrapStoreErr(err)
	}
	c.BroadcastLobby(ctx)
	return nil
}

// unbindLocked removes playerID's binding from rm, notifying the
// remaining participant or destroying the room when it empties. Caller
// holds c.mu.
func (c *Coordinator) unbindLocked(rm *room, playerID string) {
	p := rm.participants[playerID]
	if p == nil {
		return
	}
	delete(rm.participants, playerID)
	delete(c.byPlayer, playerID)
	if len(rm.participants) == 0 {
		rm.stopCountdown()
		delete(c.rooms, rm.matchID)
		return
	}
	rm.broadcast(protocol.OpponentLeft{
		Type:     "opponent_left",
		MatchID:  rm.matchID,
		PlayerID: playerID,
		Slot:     p.slot,
	})
}

func (c *Coordinator) destroyRoomLocked(rm *room) {
	rm.stopCountdown()
	for id := range rm.participants {
		delete(c.byPlayer, id)
	}
	rm.participants = make(map[string]*participant)
	delete(c.rooms, rm.matchID)
}

func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
