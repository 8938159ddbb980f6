package search

import (
	"context"
	"strings"
	"time"

	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/storage"
	"github.com/mvasilj/content-scout/pkg/pagination"
)

// ItemMirror is an optional native-ranking retrieval path for external
// items, served by the Elasticsearch mirror when one is configured.
type ItemMirror interface {
	SearchItems(ctx context.Context, query string, size int) ([]domain.RankedItem, error)
}

// mirrorCandidateLimit bounds how many mirror hits feed the merger; the
// merger re-scores and paginates, so it only needs a generous candidate set.
const mirrorCandidateLimit = 200

type Config struct {
	// PageSize defaults to the shared pagination default.
	PageSize int
	Weights  Weights
}

// Engine runs the five candidate generators and merges their output into
// one ranked, paginated list. The search path performs no network I/O
// beyond its stores and surfaces no error kinds beyond the empty-query
// short circuit.
type Engine struct {
	pages  storage.PageStore
	items  storage.ItemStore
	mirror ItemMirror
	scorer *Scorer
	cfg    Config

	now func() time.Time
}

func NewEngine(pages storage.PageStore, items storage.ItemStore, cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = pagination.PageDefaultSize
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	return &Engine{
		pages:  pages,
		items:  items,
		scorer: NewScorer(),
		cfg:    cfg,
		now:    time.Now,
	}
}

// UseMirror routes external-item retrieval through a native-ranking mirror
// for unscoped searches. Site-scoped searches stay on the primary store,
// which knows source-site ownership.
func (e *Engine) UseMirror(mirror ItemMirror) {
	e.mirror = mirror
}

// Result is one page of ranked hits plus pagination metadata.
type Result struct {
	Items       []domain.SearchResultItem `json:"items"`
	Total       int                       `json:"total"`
	Page        int                       `json:"page"`
	Size        int                       `json:"size"`
	HasNext     bool                      `json:"hasNext"`
	HasPrevious bool                      `json:"hasPrevious"`
}

// Search runs all generators for a query and returns the requested 1-based
// page. A blank or whitespace-only query returns an empty result without
// invoking any generator.
func (e *Engine) Search(ctx context.Context, query string, f storage.Filters, page, size int) (*Result, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = e.cfg.PageSize
	}
	if size > pagination.PageMaxSize {
		size = pagination.PageMaxSize
	}

	if strings.TrimSpace(query) == "" {
		return paginate(nil, page, size), nil
	}

	generators := []func(context.Context, string, storage.Filters) ([]domain.SearchResultItem, error){
		e.pageCandidates,
		e.heroCandidates,
		e.cardCandidates,
		e.tagCandidates,
		e.externalCandidates,
	}

	var candidates []domain.SearchResultItem
	for _, generate := range generators {
		items, err := generate(ctx, query, f)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, items...)
	}

	return paginate(Merge(candidates), page, size), nil
}

func paginate(items []domain.SearchResultItem, page, size int) *Result {
	sliced := pagination.Slice(items, page, size)
	return &Result{
		Items:       sliced.Items,
		Total:       int(sliced.Total),
		Page:        sliced.Page,
		Size:        sliced.Size,
		HasNext:     sliced.HasMore,
		HasPrevious: sliced.Page > 1 && (sliced.Page-1)*sliced.Size < int(sliced.Total),
	}
}
