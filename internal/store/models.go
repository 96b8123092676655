package store

import "time"

// Player statuses. The CRUD layer owns the idle/looking transitions; the
// coordinator owns the transitions adjacent to an active room.
const (
	StatusIdle    = "idle"
	StatusLooking = "looking"
	StatusWaiting = "waiting"
	StatusPlaying = "playing"
)

// Match statuses.
const (
	MatchWaiting    = "waiting"
	MatchReady      = "ready"
	MatchInProgress = "in_progress"
	MatchFinished   = "finished"
)

type Player struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Status       string
	Wins         int
	Losses       int
	CreatedAt    time.Time
}

type Match struct {
	ID           string
	Player1ID    string
	Player2ID    *string
	Status       string
	Player1Ready bool
	Player2Ready bool
	CreatedAt    time.Time
}

// Slot returns the participant slot (1 or 2) playerID occupies in m, or 0
// when playerID is not a participant.
func (m *Match) Slot(playerID string) int {
	if m.Player1ID == playerID {
		return 1
	}
	if m.Player2ID != nil && *m.Player2ID == playerID {
		return 2
	}
	return 0
}

func ValidPlayerStatus(status string) bool {
	switch status {
	case StatusIdle, StatusLooking, StatusWaiting, StatusPlaying:
		return true
	}
	return false
}
