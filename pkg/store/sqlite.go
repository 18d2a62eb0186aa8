package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/nikogura/cvforge/pkg/profile"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLite keeps profiles in a local SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(ctx context.Context, path string) (s *SQLite, err error) {
	if path == "" {
		err = errors.New("sqlite store path is required")
		return s, err
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create store directory: %s", dir)
		return s, err
	}

	var db *sql.DB
	db, err = sql.Open("sqlite", path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open sqlite store: %s", path)
		return s, err
	}
	// SQLite: single writer
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, sqliteSchema)
	if err != nil {
		_ = db.Close()
		err = errors.Wrap(err, "failed to create profiles table")
		return s, err
	}

	s = &SQLite{db: db}
	return s, err
}

// Load returns the snapshot stored for userID.
func (s *SQLite) Load(ctx context.Context, userID string) (doc profile.Document, err error) {
	var data string
	err = s.db.QueryRowContext(ctx, `SELECT document FROM profiles WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		err = errors.Wrapf(ErrNotFound, "user %s", userID)
		return doc, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to load profile for user %s", userID)
		return doc, err
	}

	doc, err = restore([]byte(data))
	return doc, err
}

// Save replaces the snapshot for doc.UserID.
func (s *SQLite) Save(ctx context.Context, doc profile.Document) (saved profile.Document, err error) {
	var data []byte
	saved, data, err = snapshot(doc)
	if err != nil {
		return saved, err
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO profiles (user_id, document, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		saved.UserID, string(data), saved.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		err = errors.Wrapf(err, "failed to save profile for user %s", saved.UserID)
		return saved, err
	}

	return saved, err
}

// Delete removes the snapshot for userID.
func (s *SQLite) Delete(ctx context.Context, userID string) (err error) {
	var res sql.Result
	res, err = s.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		err = errors.Wrapf(err, "failed to delete profile for user %s", userID)
		return err
	}

	var n int64
	n, err = res.RowsAffected()
	if err != nil {
		err = errors.Wrap(err, "failed to count deleted profiles")
		return err
	}
	if n == 0 {
		err = errors.Wrapf(ErrNotFound, "user %s", userID)
		return err
	}

	return err
}

// Close closes the database.
func (s *SQLite) Close() (err error) {
	err = s.db.Close()
	return err
}
