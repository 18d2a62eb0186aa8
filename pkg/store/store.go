// Package store persists profile documents as whole JSON snapshots keyed by
// user.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nikogura/cvforge/pkg/config"
	"github.com/nikogura/cvforge/pkg/profile"
)

// ErrNotFound is returned when a user has no stored profile.
var ErrNotFound = errors.New("profile not found")

// Store loads and saves profile snapshots.
type Store interface {
	Load(ctx context.Context, userID string) (doc profile.Document, err error)
	Save(ctx context.Context, doc profile.Document) (saved profile.Document, err error)
	Delete(ctx context.Context, userID string) (err error)
	Close() (err error)
}

// Open connects to the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (s Store, err error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		s, err = OpenSQLite(ctx, cfg.Path)
	case config.DriverPostgres:
		s, err = OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		err = errors.Errorf("unknown store driver: %s", cfg.Driver)
	}
	return s, err
}

// snapshot prepares doc for writing: it stamps UpdatedAt and marshals the
// whole document.
func snapshot(doc profile.Document) (stamped profile.Document, data []byte, err error) {
	if strings.TrimSpace(doc.UserID) == "" {
		err = errors.New("profile has no user id")
		return stamped, data, err
	}

	stamped = doc
	if stamped.ID == "" {
		stamped.ID = profile.NewItemID()
	}
	stamped.UpdatedAt = time.Now().UTC()

	data, err = json.Marshal(stamped)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal profile snapshot")
		return stamped, data, err
	}

	return stamped, data, err
}

// restore decodes a stored snapshot.
func restore(data []byte) (doc profile.Document, err error) {
	err = json.Unmarshal(data, &doc)
	if err != nil {
		err = errors.Wrap(err, "failed to parse stored profile snapshot")
		return doc, err
	}
	return doc, err
}
