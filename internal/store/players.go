package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreatePlayer(ctx context.Context, email, username, passwordHash string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO players (id, email, username, password_hash, status) VALUES ($1,$2,$3,$4,$5)`,
		id, email, username, passwordHash, StatusIdle)
	return id, err
}

func (s *Store) GetPlayer(ctx context.Context, id string) (*Player, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, email, username, password_hash, status, wins, losses, created_at FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (s *Store) GetPlayerByEmail(ctx context.Context, email string) (*Player, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT id, email, username, password_hash, status, wins, losses, created_at FROM players WHERE email = $1`, email)
	return scanPlayer(row)
}

func (s *Store) SetPlayerStatus(ctx context.Context, id, status string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE players SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLobbyPlayers returns every player visible in the lobby: anyone whose
// status is not "playing", excluding excludeID when non-empty.
func (s *Store) ListLobbyPlayers(ctx context.Context, excludeID string) ([]Player, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, email, username, password_hash, status, wins, losses, created_at
		 FROM players WHERE status <> $1 AND id <> $2 ORDER BY username`,
		StatusPlaying, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Email, &p.Username, &p.PasswordHash, &p.Status, &p.Wins, &p.Losses, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// IncrementWinLoss bumps both counters in one transaction so a crash
// between the two updates cannot skew the tallies against each other.
func (s *Store) IncrementWinLoss(ctx context.Context, winnerID, loserID string) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE players SET wins = wins + 1 WHERE id = $1`, winnerID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE players SET losses = losses + 1 WHERE id = $1`, loserID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanPlayer(row pgx.Row) (*Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.Email, &p.Username, &p.PasswordHash, &p.Status, &p.Wins, &p.Losses, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
