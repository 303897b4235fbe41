package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/db"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/repository"
	"github.com/alexanderramin/effortplan/internal/repository/mocks"
	"github.com/alexanderramin/effortplan/internal/testutil"
)

const shopJSON = `{
  "projectName": "Shop",
  "screenGroups": [{"id": 1, "name": "Auth", "screens": [{"id": 2, "name": "Login", "complexity": "normal", "effortDays": 3}]}],
  "taskGroups": [],
  "bufferPercentage": 10,
  "teamSize": 1,
  "holidays": [],
  "startDate": "2024-01-01"
}`

const planYAML = `name: Release
tasks:
  - id: t1
    name: Build
    subTasks:
      - id: s1
        name: API
        teams:
          - id: a
            name: Backend
            startDate: "2024-01-01"
            effort: 2
`

func newLibrary(t *testing.T) (LibraryService, *repository.SQLiteProjectStore) {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteProjectStore(database)
	lib := NewLibraryService(store, domain.DefaultSettings(),
		WithUnitOfWork(testutil.NewTestUoW(database), func(tx db.DBTX) repository.ProjectStore {
			return repository.NewSQLiteProjectStore(tx)
		}),
		WithClock(testutil.FixedClock(testutil.Monday)),
	)
	return lib, store
}

func TestLibrary_PublishJSONStoresVerbatim(t *testing.T) {
	ctx := context.Background()
	lib, _ := newLibrary(t)

	rec, err := lib.Publish(ctx, "shop", []byte(shopJSON), "")
	require.NoError(t, err)
	assert.Equal(t, "Shop", rec.Name)
	assert.Equal(t, domain.ModelEstimation, rec.Kind)

	got, err := lib.Lookup(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, shopJSON, string(got.Body))
}

func TestLibrary_PublishYAMLConvertsToJSON(t *testing.T) {
	ctx := context.Background()
	lib, _ := newLibrary(t)

	_, err := lib.Publish(ctx, "release", []byte(planYAML), "release.yaml")
	require.NoError(t, err)

	got, err := lib.Lookup(ctx, "release")
	require.NoError(t, err)
	assert.Contains(t, string(got.Body), `"subTasks"`)
	assert.Equal(t, domain.ModelPlan, got.Kind)
}

func TestLibrary_PublishRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	lib, _ := newLibrary(t)

	_, err := lib.Publish(ctx, "bad code", []byte(shopJSON), "")
	assert.Error(t, err)
	_, err = lib.Publish(ctx, "shop", []byte(`{"projectName": 5}`), "")
	assert.Error(t, err)
}

func TestLibrary_LookupView(t *testing.T) {
	ctx := context.Background()
	lib, _ := newLibrary(t)
	_, err := lib.Publish(ctx, "shop", []byte(shopJSON), "")
	require.NoError(t, err)

	v, err := lib.LookupView(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, 4, v.Totals.EstimatedDurationDays)
	assert.Equal(t, "2024-01-04", v.Timeline.End.String())

	again, err := lib.LookupView(ctx, "shop")
	require.NoError(t, err)
	assert.Same(t, v, again)

	_, err = lib.LookupView(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLibrary_ListAndRemove(t *testing.T) {
	ctx := context.Background()
	lib, _ := newLibrary(t)
	_, err := lib.Publish(ctx, "shop", []byte(shopJSON), "")
	require.NoError(t, err)
	_, err = lib.Publish(ctx, "release", []byte(planYAML), "release.yml")
	require.NoError(t, err)

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	for i := range entries {
		assert.False(t, entries[i].UpdatedAt.IsZero())
		entries[i].UpdatedAt = time.Time{}
	}
	assert.Equal(t, []LibraryEntry{
		{Code: "release", Name: "Release", Kind: domain.ModelPlan},
		{Code: "shop", Name: "Shop", Kind: domain.ModelEstimation},
	}, entries)

	require.NoError(t, lib.Remove(ctx, "shop"))
	assert.ErrorIs(t, lib.Remove(ctx, "shop"), repository.ErrNotFound)
}

func TestLibrary_ListDerivesNamesForFileBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "shop.json", shopJSON)
	lib := NewLibraryService(repository.NewFileProjectStore(dir), domain.DefaultSettings())

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Shop", entries[0].Name)
	assert.Equal(t, domain.ModelEstimation, entries[0].Kind)
}

func TestLibrary_Sync(t *testing.T) {
	ctx := context.Background()
	lib, store := newLibrary(t)
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "shop.json", shopJSON)
	testutil.WriteFile(t, dir, "release.yaml", planYAML)
	testutil.WriteFile(t, dir, "notes.txt", "ignored")
	testutil.WriteFile(t, dir, "bad name.json", shopJSON)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	res, err := lib.Sync(ctx, dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"shop", "release"}, res.Published)
	assert.Equal(t, []string{"bad name.json"}, res.Skipped)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestLibrary_SyncValidatesEverythingFirst(t *testing.T) {
	ctx := context.Background()
	lib, store := newLibrary(t)
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.json", shopJSON)
	testutil.WriteFile(t, dir, "b.json", `{"projectName": `)

	_, err := lib.Sync(ctx, dir)
	require.Error(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLibrary_SyncRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteProjectStore(database)
	boom := errors.New("disk full")
	lib := NewLibraryService(store, domain.DefaultSettings(),
		WithUnitOfWork(&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}, func(tx db.DBTX) repository.ProjectStore {
			return repository.NewSQLiteProjectStore(tx)
		}),
	)
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.json", shopJSON)
	testutil.WriteFile(t, dir, "b.json", shopJSON)

	_, err := lib.Sync(ctx, dir)
	assert.ErrorIs(t, err, boom)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "first write must be rolled back")
}

func TestLibrary_StoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	store := &mocks.ProjectStore{}
	boom := errors.New("store down")
	store.On("Put", mock.Anything, mock.MatchedBy(func(r *repository.ProjectRecord) bool { return r.Code == "shop" })).Return(boom)
	store.On("Get", mock.Anything, "gone").Return(nil, repository.ErrNotFound)

	obs := &recordingObserver{}
	lib := NewLibraryService(store, domain.DefaultSettings(), WithObserver(obs))

	_, err := lib.Publish(ctx, "shop", []byte(shopJSON), "")
	assert.ErrorIs(t, err, boom)
	_, err = lib.LookupView(ctx, "gone")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	store.AssertExpectations(t)
	require.Len(t, obs.events, 2)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "library-publish", obs.events[0].Name)
}
