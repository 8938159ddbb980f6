package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/storage"
)

// Ranking boosts of the page and hero vectors, matching the search engine's
// collection weights.
var (
	pageSearchBoosts = []FieldWeight{
		{Field: "title", Weight: 3.0},
		{Field: "seo_title", Weight: 2.0},
		{Field: "search_description", Weight: 1.0},
		{Field: "tags", Weight: 1.5},
	}
	heroSearchBoosts = []FieldWeight{
		{Field: "hero_title", Weight: 3.0},
		{Field: "hero_intro", Weight: 2.0},
	}
)

const pageColumns = `
	id, site_id, tree_path, live, public, title, seo_title, search_description,
	hero_title, hero_intro, rows, tags, url, breadcrumbs, first_published_at`

// SavePage stores or replaces a page, refreshing the denormalized tag and
// card text the vectors and substring filters are built from. Pages are
// authored in an external editorial system and loaded here.
func (s *Store) SavePage(ctx context.Context, page domain.Page) (uuid.UUID, error) {
	if page.ID == uuid.Nil {
		page.ID = uuid.New()
	}

	rowsJSON, err := marshalArray(page.Rows)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to marshal page rows: %w", err)
	}
	tagsJSON, err := marshalArray(page.Tags)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to marshal page tags: %w", err)
	}
	breadcrumbsJSON, err := marshalArray(page.Breadcrumbs)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to marshal page breadcrumbs: %w", err)
	}

	cmd := `
		INSERT INTO pages (
			id, site_id, tree_path, live, public, title, seo_title,
			search_description, hero_title, hero_intro, rows, tags,
			tags_text, card_text, url, breadcrumbs, first_published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			site_id = EXCLUDED.site_id,
			tree_path = EXCLUDED.tree_path,
			live = EXCLUDED.live,
			public = EXCLUDED.public,
			title = EXCLUDED.title,
			seo_title = EXCLUDED.seo_title,
			search_description = EXCLUDED.search_description,
			hero_title = EXCLUDED.hero_title,
			hero_intro = EXCLUDED.hero_intro,
			rows = EXCLUDED.rows,
			tags = EXCLUDED.tags,
			tags_text = EXCLUDED.tags_text,
			card_text = EXCLUDED.card_text,
			url = EXCLUDED.url,
			breadcrumbs = EXCLUDED.breadcrumbs,
			first_published_at = EXCLUDED.first_published_at
		RETURNING id;
	`
	var id uuid.UUID
	err = s.db.QueryRow(ctx, cmd,
		page.ID, page.SiteID, page.TreePath, page.Live, page.Public,
		page.Title, page.SEOTitle, page.SearchDescription,
		page.HeroTitle, page.HeroIntro, rowsJSON, tagsJSON,
		domain.TagsText(page.Tags), pageCardText(page),
		page.URL, breadcrumbsJSON, page.FirstPublishedAt,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to upsert page: %w", err)
	}

	return id, nil
}

func (s *Store) SearchPages(ctx context.Context, query string, f storage.Filters) ([]domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	args := []any{query}
	rankExpr := buildRankExpression("page_vector", pageFieldToLabel, pageSearchBoosts, 1)
	where, args := buildPageFilterClauses(f, args)
	where = append([]string{buildMatchClause("page_vector", 1), rankExpr + " > 0"}, where...)

	searchSQL := fmt.Sprintf(`
		SELECT %s FROM pages
		WHERE %s
		ORDER BY %s DESC, tree_path
	`, pageColumns, strings.Join(where, " AND "), rankExpr)

	return s.queryPages(ctx, searchSQL, args...)
}

func (s *Store) SearchHero(ctx context.Context, query string, f storage.Filters) ([]domain.RankedPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	args := []any{query}
	rankExpr := buildRankExpression("hero_vector", heroFieldToLabel, heroSearchBoosts, 1)
	where, args := buildPageFilterClauses(f, args)
	where = append([]string{buildMatchClause("hero_vector", 1)}, where...)

	searchSQL := fmt.Sprintf(`
		SELECT %s, %s AS rank FROM pages
		WHERE %s
		ORDER BY rank DESC, tree_path
	`, pageColumns, rankExpr, strings.Join(where, " AND "))

	rows, err := s.db.Query(ctx, searchSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute hero search: %w", err)
	}
	defer rows.Close()

	var ranked []domain.RankedPage
	for rows.Next() {
		page, rank, err := scanPage(rows, true)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, domain.RankedPage{Page: page, Rank: rank})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hero rows: %w", err)
	}

	return ranked, nil
}

func (s *Store) SearchSections(ctx context.Context, query string, f storage.Filters) ([]domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	args := []any{query}
	where, args := buildPageFilterClauses(f, args)
	where = append([]string{
		"jsonb_array_length(rows) > 0",
		"card_text ILIKE '%' || $1 || '%'",
	}, where...)

	searchSQL := fmt.Sprintf(`
		SELECT %s FROM pages
		WHERE %s
		ORDER BY tree_path
	`, pageColumns, strings.Join(where, " AND "))

	return s.queryPages(ctx, searchSQL, args...)
}

func (s *Store) PagesByTagSubstring(ctx context.Context, query string, f storage.Filters) ([]domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	args := []any{query}
	where, args := buildPageFilterClauses(f, args)
	where = append([]string{`EXISTS (
			SELECT 1 FROM jsonb_array_elements(tags) tag
			WHERE tag->>'key' ILIKE '%' || $1 || '%'
			   OR tag->>'value' ILIKE '%' || $1 || '%'
		)`}, where...)

	searchSQL := fmt.Sprintf(`
		SELECT %s FROM pages
		WHERE %s
		ORDER BY tree_path
	`, pageColumns, strings.Join(where, " AND "))

	return s.queryPages(ctx, searchSQL, args...)
}

// buildPageFilterClauses renders the shared page filters as SQL predicates,
// appending bound arguments after the ones already present.
func buildPageFilterClauses(f storage.Filters, args []any) ([]string, []any) {
	var clauses []string

	if f.WantLive() {
		clauses = append(clauses, "live")
	}
	if f.WantPublic() {
		clauses = append(clauses, "public")
	}
	if f.SiteID != nil {
		args = append(args, *f.SiteID)
		clauses = append(clauses, fmt.Sprintf("site_id = $%d", len(args)))
	}
	if f.RootPath != "" {
		args = append(args, f.RootPath)
		n := len(args)
		if f.IncludeRoot {
			clauses = append(clauses, fmt.Sprintf("tree_path LIKE $%d || '%%'", n))
		} else {
			clauses = append(clauses, fmt.Sprintf("(tree_path LIKE $%d || '%%' AND tree_path <> $%d)", n, n))
		}
	}
	if len(f.ExcludeIDs) > 0 {
		args = append(args, f.ExcludeIDs)
		clauses = append(clauses, fmt.Sprintf("id <> ALL($%d)", len(args)))
	}

	return clauses, args
}

func (s *Store) queryPages(ctx context.Context, sql string, args ...any) ([]domain.Page, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute page query: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		page, _, err := scanPage(rows, false)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page rows: %w", err)
	}

	return pages, nil
}

func scanPage(rows pgx.Rows, withRank bool) (domain.Page, float64, error) {
	var page domain.Page
	var rowsJSON, tagsJSON, breadcrumbsJSON []byte
	var rank float64

	dest := []any{
		&page.ID, &page.SiteID, &page.TreePath, &page.Live, &page.Public,
		&page.Title, &page.SEOTitle, &page.SearchDescription,
		&page.HeroTitle, &page.HeroIntro, &rowsJSON, &tagsJSON,
		&page.URL, &breadcrumbsJSON, &page.FirstPublishedAt,
	}
	if withRank {
		dest = append(dest, &rank)
	}

	if err := rows.Scan(dest...); err != nil {
		return domain.Page{}, 0, fmt.Errorf("failed to scan page: %w", err)
	}

	if err := json.Unmarshal(rowsJSON, &page.Rows); err != nil {
		return domain.Page{}, 0, fmt.Errorf("failed to unmarshal page rows: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &page.Tags); err != nil {
		return domain.Page{}, 0, fmt.Errorf("failed to unmarshal page tags: %w", err)
	}
	if err := json.Unmarshal(breadcrumbsJSON, &page.Breadcrumbs); err != nil {
		return domain.Page{}, 0, fmt.Errorf("failed to unmarshal page breadcrumbs: %w", err)
	}

	return page, rank, nil
}

// marshalArray renders a nil slice as an empty JSON array, never null, so
// jsonb array functions stay applicable.
func marshalArray[T any](values []T) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}

// pageCardText concatenates the textual fragments of every embedded card.
func pageCardText(page domain.Page) string {
	var b strings.Builder
	for _, row := range page.Rows {
		for _, card := range row.Cards {
			for _, fragment := range []string{card.Title, card.Text, card.LinkText, card.LinkURL} {
				if fragment != "" {
					b.WriteString(fragment)
					b.WriteString(" ")
				}
			}
			for _, tag := range card.Tags {
				b.WriteString(tag)
				b.WriteString(" ")
			}
		}
	}
	return strings.TrimSpace(b.String())
}
