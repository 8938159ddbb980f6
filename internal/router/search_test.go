package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/search"
	"github.com/mvasilj/content-scout/internal/storage/in_mem"
)

func newSearchTestServer(t *testing.T) (*echo.Echo, *in_mem.InMemStore) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	store := in_mem.NewInMemStore()
	engine := search.NewEngine(store, store, search.Config{})
	NewSearchRouter(e, engine).Bind()

	return e, store
}

func TestSearchHandlerReturnsRankedResults(t *testing.T) {
	e, store := newSearchTestServer(t)

	_, err := store.UpsertFromURL(context.Background(), "https://example.org/release", nil,
		domain.ItemFields{Title: "Platform release notes"}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/search?query=release", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Platform release notes", result.Items[0].Title)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Page)
}

func TestSearchHandlerBlankQueryReturnsEmptyPage(t *testing.T) {
	e, store := newSearchTestServer(t)

	_, err := store.UpsertFromURL(context.Background(), "https://example.org/a", nil,
		domain.ItemFields{Title: "anything"}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/search?query=", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Total)
}

func TestSearchHandlerRejectsBadSite(t *testing.T) {
	e, _ := newSearchTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/search?query=x&site=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandlerClampsPagination(t *testing.T) {
	e, store := newSearchTestServer(t)

	_, err := store.UpsertFromURL(context.Background(), "https://example.org/a", nil,
		domain.ItemFields{Title: "clamp check"}, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/search?query=clamp&page=0&size=9999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result search.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 100, result.Size)
}
