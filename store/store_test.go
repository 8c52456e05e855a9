package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	in := Model{
		Name:       "baseline",
		RunID:      uuid.New(),
		Reduced:    true,
		Iterations: 1_000_000,
		Blob:       []byte{0x01, 0x02, 0x03},
	}
	require.NoError(t, db.SaveModel(ctx, in))

	out, err := db.LoadModel(ctx, "baseline")
	require.NoError(t, err)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.RunID, out.RunID)
	assert.Equal(t, in.Reduced, out.Reduced)
	assert.Equal(t, in.Iterations, out.Iterations)
	assert.Equal(t, in.Blob, out.Blob)
	assert.WithinDuration(t, time.Now().UTC(), out.CreatedAt, time.Minute)
}

func TestLoadMissingModel(t *testing.T) {
	db := openTestDB(t)

	_, err := db.LoadModel(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveOverwritesByName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := Model{Name: "m", RunID: uuid.New(), Iterations: 10, Blob: []byte("old")}
	require.NoError(t, db.SaveModel(ctx, first))

	second := Model{Name: "m", RunID: uuid.New(), Iterations: 20, Blob: []byte("new")}
	require.NoError(t, db.SaveModel(ctx, second))

	out, err := db.LoadModel(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, second.RunID, out.RunID)
	assert.Equal(t, uint64(20), out.Iterations)
	assert.Equal(t, []byte("new"), out.Blob)

	models, err := db.ListModels(ctx)
	require.NoError(t, err)
	assert.Len(t, models, 1)
}

func TestListModels(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b"} {
		require.NoError(t, db.SaveModel(ctx, Model{
			Name:  name,
			RunID: uuid.New(),
			Blob:  []byte(name),
		}))
	}

	models, err := db.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, models, 2)
	for _, m := range models {
		assert.Empty(t, m.Blob, "listing skips blobs")
		assert.NotEqual(t, uuid.Nil, m.RunID)
	}
}

func TestDeleteModel(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveModel(ctx, Model{Name: "m", RunID: uuid.New(), Blob: []byte("x")}))
	require.NoError(t, db.DeleteModel(ctx, "m"))

	err := db.DeleteModel(ctx, "m")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
