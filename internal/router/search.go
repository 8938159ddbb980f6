package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/search"
	"github.com/mvasilj/content-scout/internal/storage"
	"github.com/mvasilj/content-scout/pkg/pagination"
)

type SearchRouter struct {
	e      *echo.Echo
	engine *search.Engine
}

func NewSearchRouter(e *echo.Echo, engine *search.Engine) *SearchRouter {
	return &SearchRouter{
		e:      e,
		engine: engine,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/search", r.searchHandler)
}

// searchHandler godoc
// @Summary Federated search over pages and discovered content
// @Description Runs the query against every collection and returns one merged, ranked page of results. A blank query returns an empty page.
// @Tags search
// @Produce json
// @Param query query string false "search query"
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "page size" default(15) maximum(100)
// @Param site query string false "site UUID to scope page and item results to"
// @Success 200 {object} search.Result
// @Failure 400 {object} map[string]string
// @Router /search [get]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidation("page and size must be integers")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	var filters storage.Filters
	if site := c.QueryParam("site"); site != "" {
		siteID, err := uuid.Parse(site)
		if err != nil {
			return apperr.NewValidation("site must be a valid UUID")
		}
		filters.SiteID = &siteID
	}

	result, err := r.engine.Search(c.Request().Context(), c.QueryParam("query"), filters, req.Page, req.Size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
