package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/ingest"
	"github.com/mvasilj/content-scout/internal/storage"
)

// SourceSyncer runs sync passes over discovery sources.
type SourceSyncer interface {
	SyncAll(ctx context.Context, sources []domain.DiscoverySource) domain.SyncReport
}

type SyncRouter struct {
	e       *echo.Echo
	sources storage.SourceStore
	syncer  SourceSyncer
}

func NewSyncRouter(e *echo.Echo, sources storage.SourceStore, syncer *ingest.Syncer) *SyncRouter {
	return &SyncRouter{
		e:       e,
		sources: sources,
		syncer:  syncer,
	}
}

func (r *SyncRouter) Bind() {
	r.e.POST("/sync-sources", r.syncHandler)
}

type syncRequest struct {
	// SourceIDs restricts the run to the named sources. Empty means all
	// registered sources.
	SourceIDs []uuid.UUID `json:"sourceIds"`
}

// syncHandler godoc
// @Summary Sync discovery sources
// @Description Fetches and ingests every registered source, or only the ones named in the body. Per-source failures are reported in the response, never as an HTTP error.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body syncRequest false "optional source selection"
// @Success 200 {object} domain.SyncReport
// @Failure 400 {object} map[string]string
// @Router /sync-sources [post]
func (r *SyncRouter) syncHandler(c echo.Context) error {
	var req syncRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidation("sourceIds must be a list of UUIDs")
	}

	ctx := c.Request().Context()

	sources, err := r.sources.ListSources(ctx)
	if err != nil {
		return err
	}

	if len(req.SourceIDs) > 0 {
		byID := make(map[uuid.UUID]domain.DiscoverySource, len(sources))
		for _, src := range sources {
			byID[src.ID] = src
		}

		selected := make([]domain.DiscoverySource, 0, len(req.SourceIDs))
		for _, id := range req.SourceIDs {
			src, ok := byID[id]
			if !ok {
				return apperr.NewValidation(fmt.Sprintf("unknown source id: %s", id))
			}
			selected = append(selected, src)
		}
		sources = selected
	}

	report := r.syncer.SyncAll(ctx, sources)
	return c.JSON(http.StatusOK, report)
}
