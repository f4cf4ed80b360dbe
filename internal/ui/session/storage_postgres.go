package session

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStorage keeps the entry in the session_entries table (see migrations/)
type PostgresStorage struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgresStorage(pool *pgxpool.Pool, prefix string) *PostgresStorage {
	return &PostgresStorage{
		pool: pool,
		key:  prefix + StorageKey,
	}
}

// OpenPostgres creates a connection pool and checks the database is reachable
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return pool, nil
}

// Migrate applies the pending goose migrations for the session_entries table
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// goose expects a database/sql handle
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Load(ctx context.Context) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM session_entries WHERE key = $1`, p.key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("loading session entry: %w", err)
	}
	return value, nil
}

// Save upserts the entry. data must be a JSON document
func (p *PostgresStorage) Save(ctx context.Context, data []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO session_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		p.key, string(data))
	if err != nil {
		return fmt.Errorf("saving session entry: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Remove(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM session_entries WHERE key = $1`, p.key); err != nil {
		return fmt.Errorf("removing session entry: %w", err)
	}
	return nil
}
