package coordinator

import (
	"sync"
	"time"
)

type participant struct {
	conn Conn
	slot int
}

// room is the ephemeral per-match state. It exists from the first
// successful join until the last participant leaves.
type room struct {
	matchID      string
	participants map[string]*participant

	// readyMu serializes the readiness write + authoritative re-read for
	// this match so two concurrent ready calls cannot interleave their
	// start decisions.
	readyMu sync.Mutex

	countdownArmed bool
	countdown      *time.Timer
}

func newRoom(matchID string) *room {
	return &room{
		matchID:      matchID,
		participants: make(map[string]*participant),
	}
}

func (r *room) broadcast(v any) {
	for _, p := range r.participants {
		p.conn.Deliver(v)
	}
}

func (r *room) broadcastExcept(slot int, v any) {
	for _, p := range r.participants {
		if p.slot == slot {
			continue
		}
		p.conn.Deliver(v)
	}
}

// other returns the identity and participant of the peer that is not
// playerID, if one is bound.
func (r *room) other(playerID string) (string, *participant) {
	for id, p := range r.participants {
		if id != playerID {
			return id, p
		}
	}
	return "", nil
}

func (r *room) stopCountdown() {
	if r.countdown != nil {
		r.countdown.Stop()
		r.countdown = nil
	}
}
