package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestFiltersDefaults(t *testing.T) {
	var f Filters
	if !f.WantLive() || !f.WantPublic() {
		t.Fatal("zero-value filters must default to live-only and public-only")
	}

	draft := domain.Page{Live: false, Public: true}
	if f.Matches(draft) {
		t.Error("draft page should be filtered out by default")
	}

	f.Live = boolPtr(false)
	if !f.Matches(draft) {
		t.Error("explicit Live=false should admit draft pages")
	}
}

func TestFiltersTreeScoping(t *testing.T) {
	root := domain.Page{Live: true, Public: true, TreePath: "0001/0003/"}
	child := domain.Page{Live: true, Public: true, TreePath: "0001/0003/0007/"}
	sibling := domain.Page{Live: true, Public: true, TreePath: "0001/0004/"}

	f := Filters{RootPath: "0001/0003/"}
	if f.Matches(root) {
		t.Error("root page excluded unless IncludeRoot is set")
	}
	if !f.Matches(child) {
		t.Error("descendant page should match")
	}
	if f.Matches(sibling) {
		t.Error("sibling subtree should not match")
	}

	f.IncludeRoot = true
	if !f.Matches(root) {
		t.Error("IncludeRoot should admit the root page")
	}
}

func TestFiltersSiteAndExclusions(t *testing.T) {
	siteA := uuid.New()
	page := domain.Page{ID: uuid.New(), SiteID: siteA, Live: true, Public: true}

	f := Filters{SiteID: &siteA}
	if !f.Matches(page) {
		t.Fatal("page of the scoped site should match")
	}

	siteB := uuid.New()
	f.SiteID = &siteB
	if f.Matches(page) {
		t.Error("page of another site should not match")
	}

	f = Filters{ExcludeIDs: []uuid.UUID{page.ID}}
	if f.Matches(page) {
		t.Error("excluded ID should not match")
	}
}
