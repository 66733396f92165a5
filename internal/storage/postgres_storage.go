package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
)

type PostgresStorage struct {
	Pool *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, connStr string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	s := &PostgresStorage{Pool: pool}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

var _ ports.Storage = (*PostgresStorage)(nil)

func (s *PostgresStorage) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tokens (backend TEXT PRIMARY KEY, token TEXT NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			backend TEXT NOT NULL,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, q := range queries {
		if _, err := s.Pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to init schema: %v", err)
		}
	}
	return nil
}

func (s *PostgresStorage) SaveToken(backend, token string) error {
	_, err := s.Pool.Exec(context.Background(),
		"INSERT INTO tokens (backend, token) VALUES ($1, $2) ON CONFLICT (backend) DO UPDATE SET token = $2",
		backend, token)
	return err
}

func (s *PostgresStorage) LoadToken(backend string) (string, error) {
	var token string
	err := s.Pool.QueryRow(context.Background(), "SELECT token FROM tokens WHERE backend = $1", backend).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *PostgresStorage) ClearToken(backend string) error {
	_, err := s.Pool.Exec(context.Background(), "DELETE FROM tokens WHERE backend = $1", backend)
	return err
}

func (s *PostgresStorage) SaveMessage(ctx context.Context, backend string, msg domain.Message) error {
	_, err := s.Pool.Exec(ctx,
		"INSERT INTO messages (id, backend, sender, text, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING",
		msg.ID, backend, msg.From, msg.Text, msg.CreatedAt)
	return err
}

func (s *PostgresStorage) RecentMessages(ctx context.Context, backend string, limit int) ([]domain.Message, error) {
	// limit <= 0 means no limit, matching the file store.
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := s.Pool.Query(ctx,
		"SELECT id, sender, text, created_at FROM messages WHERE backend = $1 ORDER BY created_at DESC LIMIT $2",
		backend, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.From, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	// Oldest first, like the transcript itself.
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res, rows.Err()
}
