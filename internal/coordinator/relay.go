package coordinator

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"stackduel/internal/protocol"
	"stackduel/internal/store"
)

// RelayMove forwards an opaque simulation payload to everyone in the room
// except the sender. No room, or no other bound participant, is not an
// error: the opponent may simply not have joined yet.
func (c *Coordinator) RelayMove(matchID string, senderSlot int, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rm := c.rooms[matchID]
	if rm == nil {
		return
	}
	rm.broadcastExcept(senderSlot, protocol.OpponentState{
		Type:    "opponent_state",
		MatchID: matchID,
		Slot:    senderSlot,
		Payload: payload,
	})
}

// RelayScore broadcasts a score update to the whole room, sender included,
// tagged with the sender's identity.
func (c *Coordinator) RelayScore(matchID, senderID string, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rm := c.rooms[matchID]
	if rm == nil {
		return
	}
	rm.broadcast(protocol.ScoreUpdate{
		Type:     "score_update",
		MatchID:  matchID,
		PlayerID: senderID,
		Score:    score,
	})
}

// GameOver resolves an end-of-match signal: the sender loses, the other
// bound participant wins. Win/loss bookkeeping is best-effort; the result
// broadcast goes out regardless. Room teardown follows the configured
// cleanup policy.
func (c *Coordinator) GameOver(ctx context.Context, matchID, senderID string) error {
	c.mu.Lock()
	rm := c.rooms[matchID]
	if rm == nil {
		c.mu.Unlock()
		return ErrMatchNotFound
	}
	winnerID, _ := rm.other(senderID)
	if winnerID == "" {
		c.mu.Unlock()
		return ErrAmbiguousWinner
	}
	rm.broadcast(protocol.MatchResult{
		Type:     "match_result",
		MatchID:  matchID,
		WinnerID: winnerID,
		LoserID:  senderID,
	})
	ids := make([]string, 0, len(rm.participants))
	for id := range rm.participants {
		ids = append(ids, id)
	}
	if c.destroyFinished {
		c.destroyRoomLocked(rm)
	}
	c.mu.Unlock()

	log.Info().Str("match_id", matchID).Str("winner_id", winnerID).Str("loser_id", senderID).Msg("match_result")

	if err := c.store.IncrementWinLoss(ctx, winnerID, senderID); err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("win/loss increment failed")
	}
	if err := c.store.SetMatchStatus(ctx, matchID, store.MatchFinished); err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("mark match finished failed")
	}
	for _, id := range ids {
		if err := c.store.SetPlayerStatus(ctx, id, store.StatusIdle); err != nil {
			log.Error().Err(err).Str("player_id", id).Msg("status reset after match failed")
		}
	}
	c.BroadcastLobby(ctx)
	return nil
}
