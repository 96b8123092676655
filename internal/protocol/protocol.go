// Package protocol defines the JSON messages exchanged over the realtime
// socket. The coordinator builds outbound notifications as these structs;
// the transport layer serializes them.
package protocol

import "encoding/json"

// Inbound message types.
const (
	TypeLogin    = "login"
	TypeJoinRoom = "join_room"
	TypeReady    = "ready"
	TypeMove     = "move"
	TypeScore    = "score"
	TypeGameOver = "game_over"
	TypeStatus   = "status"
)

// login carries no body beyond its type: the identity comes from the
// verified upgrade credential.

type JoinRoomMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
}

type ReadyMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
}

// MoveMessage carries an opaque simulation payload. The server never
// inspects Payload.
type MoveMessage struct {
	Type    string          `json:"type"`
	MatchID string          `json:"match_id"`
	Slot    int             `json:"slot"`
	Payload json.RawMessage `json:"payload"`
}

type ScoreMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
	Score   int    `json:"score"`
}

type GameOverMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
}

type StatusMessage struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Acks.

type JoinResult struct {
	Type    string `json:"type"`
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	MatchID string `json:"match_id"`
	Slot    int    `json:"slot,omitempty"`
}

type ReadyResult struct {
	Type     string `json:"type"`
	Ok       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	MatchID  string `json:"match_id"`
	Slot     int    `json:"slot,omitempty"`
	AllReady bool   `json:"all_ready"`
}

// Notifications.

type LobbyPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type LobbyUpdate struct {
	Type    string        `json:"type"`
	Players []LobbyPlayer `json:"players"`
}

type OpponentJoined struct {
	Type     string `json:"type"`
	MatchID  string `json:"match_id"`
	PlayerID string `json:"player_id"`
	Slot     int    `json:"slot"`
}

type ReadyChanged struct {
	Type     string `json:"type"`
	MatchID  string `json:"match_id"`
	Slot     int    `json:"slot"`
	AllReady bool   `json:"all_ready"`
}

type AllReady struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
}

type MatchStart struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
}

type OpponentState struct {
	Type    string          `json:"type"`
	MatchID string          `json:"match_id"`
	Slot    int             `json:"slot"`
	Payload json.RawMessage `json:"payload"`
}

type ScoreUpdate struct {
	Type     string `json:"type"`
	MatchID  string `json:"match_id"`
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"`
}

type MatchResult struct {
	Type     string `json:"type"`
	MatchID  string `json:"match_id"`
	WinnerID string `json:"winner_id"`
	LoserID  string `json:"loser_id"`
}

type OpponentLeft struct {
	Type     string `json:"type"`
	MatchID  string `json:"match_id"`
	PlayerID string `json:"player_id"`
	Slot     int    `json:"slot"`
}
