package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/nikogura/cvforge/pkg/profile"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// Postgres keeps profiles in a hosted PostgreSQL database.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool to databaseURL and ensures the schema exists.
func OpenPostgres(ctx context.Context, databaseURL string) (s *Postgres, err error) {
	if databaseURL == "" {
		err = errors.New("postgres database URL is required")
		return s, err
	}

	var poolConfig *pgxpool.Config
	poolConfig, err = pgxpool.ParseConfig(databaseURL)
	if err != nil {
		err = errors.Wrap(err, "failed to parse database URL")
		return s, err
	}
	poolConfig.MaxConns = 10
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.HealthCheckPeriod = 30 * time.Second

	var pool *pgxpool.Pool
	pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		err = errors.Wrap(err, "failed to open postgres pool")
		return s, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		err = errors.Wrap(err, "failed to ping postgres")
		return s, err
	}

	_, err = pool.Exec(ctx, postgresSchema)
	if err != nil {
		pool.Close()
		err = errors.Wrap(err, "failed to create profiles table")
		return s, err
	}

	s = &Postgres{pool: pool}
	return s, err
}

// Load returns the snapshot stored for userID.
func (s *Postgres) Load(ctx context.Context, userID string) (doc profile.Document, err error) {
	var data []byte
	err = s.pool.QueryRow(ctx, `SELECT document FROM profiles WHERE user_id = $1`, userID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		err = errors.Wrapf(ErrNotFound, "user %s", userID)
		return doc, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to load profile for user %s", userID)
		return doc, err
	}

	doc, err = restore(data)
	return doc, err
}

// Save replaces the snapshot for doc.UserID.
func (s *Postgres) Save(ctx context.Context, doc profile.Document) (saved profile.Document, err error) {
	var data []byte
	saved, data, err = snapshot(doc)
	if err != nil {
		return saved, err
	}

	_, err = s.pool.Exec(ctx, `INSERT INTO profiles (user_id, document, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		saved.UserID, string(data), saved.UpdatedAt)
	if err != nil {
		err = errors.Wrapf(err, "failed to save profile for user %s", saved.UserID)
		return saved, err
	}

	return saved, err
}

// Delete removes the snapshot for userID.
func (s *Postgres) Delete(ctx context.Context, userID string) (err error) {
	var tag pgconn.CommandTag
	tag, err = s.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		err = errors.Wrapf(err, "failed to delete profile for user %s", userID)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = errors.Wrapf(ErrNotFound, "user %s", userID)
		return err
	}
	return err
}

// Close releases the pool.
func (s *Postgres) Close() (err error) {
	s.pool.Close()
	return err
}
