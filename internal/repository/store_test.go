package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/db"
	"github.com/alexanderramin/effortplan/internal/domain"
)

func newSQLiteStore(t *testing.T) *SQLiteProjectStore {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewSQLiteProjectStore(database)
}

// stores runs the same behaviour checks against both backends.
func stores(t *testing.T) map[string]ProjectStore {
	return map[string]ProjectStore{
		"file":   NewFileProjectStore(t.TempDir()),
		"sqlite": newSQLiteStore(t),
	}
}

func TestProjectStore_PutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			body := []byte("{\n  \"projectName\": \"Shop\"\n}\n")
			require.NoError(t, store.Put(ctx, &ProjectRecord{Code: "shop", Name: "Shop", Kind: domain.ModelEstimation, Body: body}))

			rec, err := store.Get(ctx, "shop")
			require.NoError(t, err)
			assert.Equal(t, "shop", rec.Code)
			assert.Equal(t, body, rec.Body)
			assert.False(t, rec.UpdatedAt.IsZero())
		})
	}
}

func TestProjectStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, &ProjectRecord{Code: "a", Kind: domain.ModelPlan, Body: []byte(`{"v":1}`)}))
			require.NoError(t, store.Put(ctx, &ProjectRecord{Code: "a", Kind: domain.ModelPlan, Body: []byte(`{"v":2}`)}))
			rec, err := store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, `{"v":2}`, string(rec.Body))

			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestProjectStore_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.ErrorIs(t, store.Delete(ctx, "missing"), ErrNotFound)
		})
	}
}

func TestProjectStore_InvalidCodes(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, code := range []string{"", "../etc/passwd", "a/b", "a.b", "-lead"} {
				_, err := store.Get(ctx, code)
				assert.ErrorIs(t, err, ErrNotFound, code)
				assert.Error(t, store.Put(ctx, &ProjectRecord{Code: code, Kind: domain.ModelPlan, Body: []byte("{}")}), code)
			}
		})
	}
}

func TestProjectStore_ListOrderedAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, code := range []string{"zeta", "alpha", "mid"} {
				require.NoError(t, store.Put(ctx, &ProjectRecord{Code: code, Kind: domain.ModelPlan, Body: []byte("{}")}))
			}
			require.NoError(t, store.Delete(ctx, "mid"))

			list, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "alpha", list[0].Code)
			assert.Equal(t, "zeta", list[1].Code)
			assert.Empty(t, list[0].Body)
		})
	}
}

func TestFileProjectStore_ListMissingDir(t *testing.T) {
	list, err := NewFileProjectStore(t.TempDir() + "/absent").List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteProjectStore_KeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	first := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	orig := nowUTC
	t.Cleanup(func() { nowUTC = orig })

	nowUTC = func() time.Time { return first }
	require.NoError(t, store.Put(ctx, &ProjectRecord{Code: "a", Name: "A", Kind: domain.ModelPlan, Body: []byte("{}")}))
	nowUTC = func() time.Time { return second }
	require.NoError(t, store.Put(ctx, &ProjectRecord{Code: "a", Name: "A2", Kind: domain.ModelPlan, Body: []byte("{}"), Source: "a.json"}))

	rec, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first, rec.CreatedAt)
	assert.Equal(t, second, rec.UpdatedAt)
	assert.Equal(t, "A2", rec.Name)
	assert.Equal(t, "a.json", rec.Source)
	assert.Equal(t, domain.ModelPlan, rec.Kind)
}
