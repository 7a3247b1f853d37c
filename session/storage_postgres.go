package session

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed sql/setup.sql
var setupSQL string

// DB is satisfied by *pgx.Conn and *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStorage notifies subscribers of its own saves only; writes from
// other processes are seen on the next Load.
type PostgresStorage struct {
	watchers

	db DB
}

func NewPostgresStorage(db DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Setup creates the storage table when it does not exist yet.
func (p *PostgresStorage) Setup(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, setupSQL); err != nil {
		return fmt.Errorf("failed to initialize session storage table: %w", err)
	}

	return nil
}

func (p *PostgresStorage) Load(ctx context.Context, name string) ([]byte, error) {
	sql := `SELECT data FROM session_storage WHERE name=$1;`

	var data []byte
	err := p.db.QueryRow(ctx, sql, name).Scan(&data)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry '%v': %w", name, err)
	}

	return data, nil
}

func (p *PostgresStorage) Save(ctx context.Context, name string, data []byte) error {
	sql := `
			INSERT INTO session_storage(name, data, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (name) DO UPDATE
			SET data=EXCLUDED.data, updated_at=now();
		`

	if _, err := p.db.Exec(ctx, sql, name, data); err != nil {
		return fmt.Errorf("failed to save entry '%v': %w", name, err)
	}

	p.publish(name, data)

	return nil
}
