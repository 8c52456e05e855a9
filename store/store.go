// Package store persists trained models in a local SQLite database.
// Models are stored as opaque serialized blobs keyed by name, together
// with enough metadata to tell runs apart.
package store

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema embed.FS

// ErrNotFound is returned when no model with the requested name exists.
var ErrNotFound = errors.New("model not found")

// Model is one stored model: an opaque blob plus its metadata. List
// returns models without their blobs.
type Model struct {
	Name       string
	RunID      uuid.UUID
	Reduced    bool
	Iterations uint64
	Blob       []byte
	CreatedAt  time.Time
}

// DB wraps the SQLite handle.
type DB struct{ *sql.DB }

// Open opens (creating if necessary) the model database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open model store")
	}
	return &DB{db}, nil
}

// Migrate applies the embedded schema.
func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(sqlBytes))
	return errors.Wrap(err, "migrate model store")
}

// SaveModel inserts the model, replacing any existing model of the same
// name.
func (db *DB) SaveModel(ctx context.Context, m Model) error {
	_, err := db.ExecContext(ctx, `
        INSERT INTO models(name, run_id, reduced, iterations, blob, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT (name) DO UPDATE
          SET run_id     = excluded.run_id,
              reduced    = excluded.reduced,
              iterations = excluded.iterations,
              blob       = excluded.blob,
              created_at = excluded.created_at
    `, m.Name, m.RunID.String(), m.Reduced, m.Iterations, m.Blob, time.Now().UTC())
	return errors.Wrapf(err, "save model %q", m.Name)
}

// LoadModel fetches the named model including its blob.
func (db *DB) LoadModel(ctx context.Context, name string) (Model, error) {
	var (
		m     Model
		runID string
	)
	err := db.QueryRowContext(ctx, `
        SELECT name, run_id, reduced, iterations, blob, created_at
          FROM models WHERE name = ?
    `, name).Scan(&m.Name, &runID, &m.Reduced, &m.Iterations, &m.Blob, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Model{}, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return Model{}, errors.Wrapf(err, "load model %q", name)
	}
	m.RunID, err = uuid.Parse(runID)
	if err != nil {
		return Model{}, errors.Wrapf(err, "load model %q: bad run id", name)
	}
	return m, nil
}

// ListModels returns every stored model's metadata, newest first. Blobs
// are not loaded.
func (db *DB) ListModels(ctx context.Context) ([]Model, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT name, run_id, reduced, iterations, created_at
          FROM models ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, errors.Wrap(err, "list models")
	}
	defer rows.Close()

	var models []Model
	for rows.Next() {
		var (
			m     Model
			runID string
		)
		if err := rows.Scan(&m.Name, &runID, &m.Reduced, &m.Iterations, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "list models")
		}
		if m.RunID, err = uuid.Parse(runID); err != nil {
			return nil, errors.Wrapf(err, "list models: bad run id for %q", m.Name)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// DeleteModel removes the named model. Deleting a missing model returns
// ErrNotFound.
func (db *DB) DeleteModel(ctx context.Context, name string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM models WHERE name = ?`, name)
	if err != nil {
		return errors.Wrapf(err, "delete model %q", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	return nil
}
