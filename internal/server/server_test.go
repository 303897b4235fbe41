package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortplan/internal/contract"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/repository"
	"github.com/alexanderramin/effortplan/internal/repository/mocks"
	"github.com/alexanderramin/effortplan/internal/service"
	"github.com/alexanderramin/effortplan/internal/testutil"
)

const shopJSON = `{"projectName":"Shop","screenGroups":[{"id":1,"name":"Auth","screens":[{"id":2,"name":"Login","complexity":"normal","effortDays":3}]}],"taskGroups":[],"bufferPercentage":10,"teamSize":1,"holidays":[],"startDate":"2024-01-01"}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "shop.json", shopJSON)
	testutil.WriteFile(t, dir, "broken.json", `{"projectName": `)

	lib := service.NewLibraryService(repository.NewFileProjectStore(dir), domain.DefaultSettings(),
		service.WithClock(testutil.FixedClock(testutil.Monday)))
	srv := httptest.NewServer(NewRouter(lib, nil))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestServer_ProjectServedVerbatim(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/projects/shop")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, shopJSON, string(body))
}

func TestServer_UnknownProject(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/projects/nope", "/api/projects/..%2Fetc", "/api/projects/nope/estimate"} {
		resp, body := get(t, srv.URL+path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)

		var e contract.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &e))
		assert.Contains(t, e.Error, "Project not found. Error message:")
	}
}

func TestServer_Estimate(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/projects/shop/estimate")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v contract.ProjectView
	require.NoError(t, json.Unmarshal(body, &v))
	assert.Equal(t, "shop", v.Code)
	assert.Equal(t, "estimation", v.Kind)
	assert.InDelta(t, 3.3, v.Totals.FinalEffort, 1e-9)
	assert.Equal(t, 4, v.Totals.EstimatedDurationDays)
	assert.Equal(t, "2024-01-01", v.Start)
	require.Len(t, v.Timeline, 1)
	assert.Equal(t, "Auth - Login", v.Timeline[0].Name)
}

func TestServer_EstimateOfMalformedFile(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/api/projects/broken/estimate")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_ListAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/projects")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []contract.ProjectListEntry
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Contains(t, entries, contract.ProjectListEntry{Code: "shop", Name: "Shop", Kind: "estimation"})

	resp, body = get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestServer_StoreFailureIs500(t *testing.T) {
	store := new(mocks.ProjectStore)
	store.On("Get", mock.Anything, "shop").Return(nil, errors.New("disk gone"))
	lib := service.NewLibraryService(store, domain.DefaultSettings())
	srv := httptest.NewServer(NewRouter(lib, nil))
	t.Cleanup(srv.Close)

	resp, body := get(t, srv.URL+"/api/projects/shop")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "disk gone")
}

func TestServer_SharedLookupIgnoresCallerCancel(t *testing.T) {
	store := new(mocks.ProjectStore)
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	store.On("Get", live, "shop").Return(&repository.ProjectRecord{Code: "shop", Body: []byte(shopJSON)}, nil)
	lib := service.NewLibraryService(store, domain.DefaultSettings(),
		service.WithClock(testutil.FixedClock(testutil.Monday)))
	router := NewRouter(lib, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, path := range []string{"/api/projects/shop", "/api/projects/shop/estimate"} {
		req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	store.AssertNumberOfCalls(t, "Get", 2)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler(), testLogger())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * ShutdownTimeout):
		t.Fatal("Run did not return after cancel")
	}
}
