package storage

import (
	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/domain"
)

// Filters scopes page retrieval. Nil Live/Public mean the defaults: only
// live, only public.
type Filters struct {
	Live        *bool
	Public      *bool
	SiteID      *uuid.UUID
	RootPath    string
	IncludeRoot bool
	ExcludeIDs  []uuid.UUID
}

func (f Filters) WantLive() bool {
	return f.Live == nil || *f.Live
}

func (f Filters) WantPublic() bool {
	return f.Public == nil || *f.Public
}

func (f Filters) Excludes(id uuid.UUID) bool {
	for _, ex := range f.ExcludeIDs {
		if ex == id {
			return true
		}
	}
	return false
}

// Matches applies every filter to one page; backends without query pushdown
// use it as their scan predicate.
func (f Filters) Matches(p domain.Page) bool {
	if f.WantLive() && !p.Live {
		return false
	}
	if f.WantPublic() && !p.Public {
		return false
	}
	if f.SiteID != nil && p.SiteID != *f.SiteID {
		return false
	}
	if f.RootPath != "" && !p.IsDescendantOf(f.RootPath, f.IncludeRoot) {
		return false
	}
	if f.Excludes(p.ID) {
		return false
	}
	return true
}
