package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/storage/in_mem"
)

type stubSyncer struct {
	synced []domain.DiscoverySource
}

func (s *stubSyncer) SyncAll(_ context.Context, sources []domain.DiscoverySource) domain.SyncReport {
	s.synced = sources

	var report domain.SyncReport
	for _, src := range sources {
		report.Results = append(report.Results, domain.SourceSyncResult{
			SourceID:    src.ID,
			SourceLabel: src.Label(),
			SourceURL:   src.URL,
		})
	}
	return report
}

func newSyncTestServer(t *testing.T) (*echo.Echo, *in_mem.InMemStore, *stubSyncer) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	store := in_mem.NewInMemStore()
	syncer := &stubSyncer{}
	r := &SyncRouter{e: e, sources: store, syncer: syncer}
	r.Bind()

	return e, store, syncer
}

func TestSyncHandlerRunsAllSourcesByDefault(t *testing.T) {
	e, store, syncer := newSyncTestServer(t)

	for _, url := range []string{"https://a.example/feed", "https://b.example/feed"} {
		_, err := store.UpsertSource(context.Background(), domain.DiscoverySource{ID: uuid.New(), URL: url})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/sync-sources", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, syncer.synced, 2)

	var report domain.SyncReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Results, 2)
	assert.Empty(t, report.Failures)
}

func TestSyncHandlerHonorsSourceSelection(t *testing.T) {
	e, store, syncer := newSyncTestServer(t)

	wanted := uuid.New()
	_, err := store.UpsertSource(context.Background(), domain.DiscoverySource{ID: wanted, URL: "https://a.example/feed"})
	require.NoError(t, err)
	_, err = store.UpsertSource(context.Background(), domain.DiscoverySource{ID: uuid.New(), URL: "https://b.example/feed"})
	require.NoError(t, err)

	body := `{"sourceIds": ["` + wanted.String() + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/sync-sources", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, syncer.synced, 1)
	assert.Equal(t, wanted, syncer.synced[0].ID)
}

func TestSyncHandlerRejectsUnknownSource(t *testing.T) {
	e, _, syncer := newSyncTestServer(t)

	body := `{"sourceIds": ["` + uuid.NewString() + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/sync-sources", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, syncer.synced)
}
