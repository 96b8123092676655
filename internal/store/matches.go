package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateMatch(ctx context.Context, player1ID string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO matches (id, player1_id, status) VALUES ($1,$2,$3)`,
		id, player1ID, MatchWaiting)
	return id, err
}

func (s *Store) GetMatch(ctx context.Context, id string) (*Match, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, player1_id, player2_id, status, player1_ready, player2_ready, created_at
		 FROM matches WHERE id = $1`, id)
	var m Match
	err := row.Scan(&m.ID, &m.Player1ID, &m.Player2ID, &m.Status, &m.Player1Ready, &m.Player2Ready, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// AttachOpponent binds player2 to a waiting match and flips it to ready.
func (s *Store) AttachOpponent(ctx context.Context, matchID, player2ID string) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE matches SET player2_id = $1, status = $2 WHERE id = $3 AND status = $4`,
		player2ID, MatchReady, matchID, MatchWaiting)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetParticipantReady(ctx context.Context, matchID string, slot int) error {
	var column string
	switch slot {
	case 1:
		column = "player1_ready"
	case 2:
		column = "player2_ready"
	default:
		return fmt.Errorf("invalid slot %d", slot)
	}
	tag, err := s.Pool.Exec(ctx,
		`UPDATE matches SET `+column+` = TRUE WHERE id = $1`, matchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetMatchStatus(ctx context.Context, matchID, status string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE matches SET status = $1 WHERE id = $2`, status, matchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindWaitingMatchByOwner returns the id of ownerID's open match, if any.
func (s *Store) FindWaitingMatchByOwner(ctx context.Context, ownerID string) (string, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id FROM matches WHERE player1_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 1`,
		ownerID, MatchWaiting)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return id, nil
}
