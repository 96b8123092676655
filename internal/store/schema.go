package store

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'idle',
	wins          INT  NOT NULL DEFAULT 0,
	losses        INT  NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS matches (
	id            TEXT PRIMARY KEY,
	player1_id    TEXT NOT NULL REFERENCES players(id),
	player2_id    TEXT REFERENCES players(id),
	status        TEXT NOT NULL DEFAULT 'waiting',
	player1_ready BOOLEAN NOT NULL DEFAULT FALSE,
	player2_ready BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS matches_player1_status_idx ON matches (player1_id, status);
`

// EnsureSchema creates the tables on boot when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}
