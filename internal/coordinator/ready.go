package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"stackduel/internal/protocol"
	"stackduel/internal/store"
)

// SetReady persists the caller's ready flag, re-reads both flags from the
// durable record (the CRUD layer writes these rows too, so the pre-write
// snapshot cannot be trusted) and broadcasts the per-slot change. The
// first transition to all-ready arms a single countdown; later calls find
// the room already armed and do nothing more.
func (c *Coordinator) SetReady(ctx context.Context, matchID, playerID string) (int, bool, error) {
	c.mu.Lock()
	rm := c.rooms[matchID]
	c.mu.Unlock()
	if rm != nil {
		rm.readyMu.Lock()
		defer rm.readyMu.Unlock()
	}

	m, err := c.store.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, false, ErrMatchNotFound
		}
		return 0, false, wrapStoreErr(err)
	}
	slot := m.Slot(playerID)
	if slot == 0 {
		return 0, false, ErrNotAParticipant
	}

	if err := c.store.SetParticipantReady(ctx, matchID, slot); err != nil {
		return 0, false, wrapStoreErr(err)
	}

	// Authoritative re-read: the opposing flag may have flipped while the
	// write above was in flight.
	m, err = c.store.GetMatch(ctx, matchID)
	if err != nil {
		return 0, false, wrapStoreErr(err)
	}
	allReady := m.Player1Ready && m.Player2Ready

	c.mu.Lock()
	if rm := c.rooms[matchID]; rm != nil {
		rm.broadcast(protocol.ReadyChanged{
			Type:     "ready_changed",
			MatchID:  matchID,
			Slot:     slot,
			AllReady: allReady,
		})
		if allReady && !rm.countdownArmed {
			rm.countdownArmed = true
			rm.broadcast(protocol.AllReady{Type: "all_ready", MatchID: matchID})
			rm.countdown = time.AfterFunc(c.countdown, func() { c.startMatch(matchID) })
			log.Info().Str("match_id", matchID).Dur("countdown", c.countdown).Msg("countdown_armed")
		}
	}
	c.mu.Unlock()

	return slot, allReady, nil
}

// startMatch fires when the countdown expires. The room may have been
// destroyed in the meantime; that makes this a no-op.
func (c *Coordinator) startMatch(matchID string) {
	c.mu.Lock()
	rm := c.rooms[matchID]
	if rm == nil {
		c.mu.Unlock()
		return
	}
	ids := make([]string, 0, len(rm.participants))
	for id := range rm.participants {
		ids = append(ids, id)
	}
	rm.broadcast(protocol.MatchStart{Type: "match_start", MatchID: matchID})
	c.mu.Unlock()

	log.Info().Str("match_id", matchID).Msg("match_start")

	ctx := context.Background()
	if err := c.store.SetMatchStatus(ctx, matchID, store.MatchInProgress); err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("mark match in progress failed")
	}
	for _, id := range ids {
		if err := c.store.SetPlayerStatus(ctx, id, store.StatusPlaying); err != nil {
			log.Error().Err(err).Str("player_id", id).Msg("mark player playing failed")
		}
	}
	c.BroadcastLobby(ctx)
}
