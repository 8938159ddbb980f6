package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card is a structured, repeatable content block embedded inside a page's
// row sections.
type Card struct {
	Title    string   `json:"title,omitempty"`
	Text     string   `json:"text,omitempty"`
	LinkText string   `json:"linkText,omitempty"`
	LinkURL  string   `json:"linkUrl,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Row is one row section of a section page.
type Row struct {
	Cards []Card `json:"cards,omitempty"`
}

// Page is an editorial page as exposed to the search engine. Section pages
// carry Rows; both page kinds may carry hero fields and tags.
type Page struct {
	ID     uuid.UUID `json:"id"`
	SiteID uuid.UUID `json:"siteId"`
	// Materialized tree path ("0001/0003/0007/"); descendant scoping is a
	// prefix match on it.
	TreePath          string     `json:"treePath"`
	Live              bool       `json:"live"`
	Public            bool       `json:"public"`
	Title             string     `json:"title"`
	SEOTitle          string     `json:"seoTitle,omitempty"`
	SearchDescription string     `json:"searchDescription,omitempty"`
	HeroTitle         string     `json:"heroTitle,omitempty"`
	HeroIntro         string     `json:"heroIntro,omitempty"`
	Rows              []Row      `json:"rows,omitempty"`
	Tags              []Tag      `json:"tags,omitempty"`
	URL               string     `json:"url"`
	Breadcrumbs       []string   `json:"breadcrumbs,omitempty"`
	FirstPublishedAt  *time.Time `json:"firstPublishedAt,omitempty"`
}

// IsDescendantOf reports whether the page lives under rootPath. With
// inclusive set, the root itself qualifies too.
func (p Page) IsDescendantOf(rootPath string, inclusive bool) bool {
	if rootPath == "" {
		return true
	}
	if p.TreePath == rootPath {
		return inclusive
	}
	return strings.HasPrefix(p.TreePath, rootPath)
}
