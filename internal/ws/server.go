// Package ws is the WebSocket transport in front of the match
// coordinator. It authenticates the upgrade, decodes inbound intents and
// hands them to the coordinator; outbound notifications flow back through
// each client's buffered send channel.
package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"stackduel/internal/auth"
	"stackduel/internal/coordinator"
	"stackduel/internal/protocol"
)

type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	playerID string
}

// Deliver implements coordinator.Conn. Delivery is at-most-once: when the
// client's buffer is full the message is dropped, and the client is
// expected to re-fetch authoritative state.
func (c *Client) Deliver(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		return
	}
	defer func() { _ = recover() }()
	select {
	case c.send <- msg:
	default:
		log.Debug().Str("player_id", c.playerID).Msg("send buffer full, message dropped")
	}
}

type Server struct {
	coord      *coordinator.Coordinator
	signer     *auth.Signer
	upgrader   websocket.Upgrader
	sendBuffer int
}

func NewServer(coord *coordinator.Coordinator, signer *auth.Signer, sendBuffer int) *Server {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	return &Server{
		coord:      coord,
		signer:     signer,
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		sendBuffer: sendBuffer,
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	playerID, err := s.signer.Verify(auth.BearerToken(r))
	if err != nil {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{conn: conn, send: make(chan []byte, s.sendBuffer), playerID: playerID}
	s.coord.Connect(client)

	go s.writeLoop(client)
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.coord.Disconnect(c)
		safeClose(c.send)
		_ = c.conn.Close()
	}()

	ctx := context.Background()
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeLogin:
			// The identity comes from the verified credential, not the
			// message body.
			s.coord.Login(ctx, c, c.playerID)

		case protocol.TypeJoinRoom:
			var join protocol.JoinRoomMessage
			if err := json.Unmarshal(msg, &join); err != nil {
				continue
			}
			slot, err := s.coord.JoinRoom(ctx, c, join.MatchID, c.playerID)
			c.Deliver(protocol.JoinResult{
				Type:    "join_result",
				Ok:      err == nil,
				Error:   coordinator.ErrorCode(err),
				MatchID: join.MatchID,
				Slot:    slot,
			})

		case protocol.TypeReady:
			var ready protocol.ReadyMessage
			if err := json.Unmarshal(msg, &ready); err != nil {
				continue
			}
			slot, allReady, err := s.coord.SetReady(ctx, ready.MatchID, c.playerID)
			c.Deliver(protocol.ReadyResult{
				Type:     "ready_result",
				Ok:       err == nil,
				Error:    coordinator.ErrorCode(err),
				MatchID:  ready.MatchID,
				Slot:     slot,
				AllReady: allReady,
			})

		case protocol.TypeMove:
			var move protocol.MoveMessage
			if err := json.Unmarshal(msg, &move); err != nil {
				continue
			}
			s.coord.RelayMove(move.MatchID, move.Slot, move.Payload)

		case protocol.TypeScore:
			var score protocol.ScoreMessage
			if err := json.Unmarshal(msg, &score); err != nil {
				continue
			}
			s.coord.RelayScore(score.MatchID, c.playerID, score.Score)

		case protocol.TypeGameOver:
			var over protocol.GameOverMessage
			if err := json.Unmarshal(msg, &over); err != nil {
				continue
			}
			if err := s.coord.GameOver(ctx, over.MatchID, c.playerID); err != nil {
				log.Warn().Err(err).Str("match_id", over.MatchID).Str("player_id", c.playerID).Msg("game over not resolved")
			}

		case protocol.TypeStatus:
			var status protocol.StatusMessage
			if err := json.Unmarshal(msg, &status); err != nil {
				continue
			}
			if err := s.coord.UpdateStatus(ctx, c.playerID, status.Status); err != nil {
				log.Warn().Err(err).Str("player_id", c.playerID).Msg("status update rejected")
			}
		}
	}
}

func (s *Server) writeLoop(c *Client) {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

func safeClose(ch chan []byte) {
	defer func() { _ = recover() }()
	close(ch)
}
