package pg

import (
	"context"
	"fmt"
)

// Schema bootstrap. Vectors are stored generated columns so retrieval never
// recomputes them; weight labels match the fts.go assignments.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS discovery_sources (
		id UUID PRIMARY KEY,
		site_id UUID,
		name TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL UNIQUE,
		disable_tls_verification BOOLEAN NOT NULL DEFAULT FALSE,
		default_tags TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS external_items (
		id UUID PRIMARY KEY,
		key CHAR(64) NOT NULL UNIQUE,
		url TEXT NOT NULL UNIQUE,
		source_id UUID REFERENCES discovery_sources(id) ON DELETE SET NULL,
		title TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		published_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ,
		hidden BOOLEAN NOT NULL DEFAULT FALSE,
		metadata JSONB NOT NULL DEFAULT '{}',
		tags_text TEXT NOT NULL DEFAULT '',
		source_name TEXT NOT NULL DEFAULT '',
		first_seen_at TIMESTAMPTZ NOT NULL,
		last_seen_at TIMESTAMPTZ NOT NULL,
		search_vector tsvector GENERATED ALWAYS AS (
			setweight(to_tsvector('english', coalesce(title, '')), 'A') ||
			setweight(to_tsvector('english', coalesce(summary, '')), 'B') ||
			setweight(to_tsvector('english', coalesce(tags_text, '')), 'C') ||
			setweight(to_tsvector('english', coalesce(url, '') || ' ' || coalesce(source_name, '')), 'D')
		) STORED
	)`,
	`CREATE TABLE IF NOT EXISTS external_item_tags (
		item_id UUID NOT NULL REFERENCES external_items(id) ON DELETE CASCADE,
		tag_key TEXT NOT NULL REFERENCES tags(key) ON DELETE CASCADE,
		PRIMARY KEY (item_id, tag_key)
	)`,
	`CREATE TABLE IF NOT EXISTS pages (
		id UUID PRIMARY KEY,
		site_id UUID NOT NULL,
		tree_path TEXT NOT NULL,
		live BOOLEAN NOT NULL DEFAULT TRUE,
		public BOOLEAN NOT NULL DEFAULT TRUE,
		title TEXT NOT NULL DEFAULT '',
		seo_title TEXT NOT NULL DEFAULT '',
		search_description TEXT NOT NULL DEFAULT '',
		hero_title TEXT NOT NULL DEFAULT '',
		hero_intro TEXT NOT NULL DEFAULT '',
		rows JSONB NOT NULL DEFAULT '[]',
		tags JSONB NOT NULL DEFAULT '[]',
		tags_text TEXT NOT NULL DEFAULT '',
		card_text TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		breadcrumbs JSONB NOT NULL DEFAULT '[]',
		first_published_at TIMESTAMPTZ,
		page_vector tsvector GENERATED ALWAYS AS (
			setweight(to_tsvector('english', coalesce(title, '')), 'A') ||
			setweight(to_tsvector('english', coalesce(seo_title, '')), 'B') ||
			setweight(to_tsvector('english', coalesce(search_description, '')), 'C') ||
			setweight(to_tsvector('english', coalesce(tags_text, '')), 'D')
		) STORED,
		hero_vector tsvector GENERATED ALWAYS AS (
			setweight(to_tsvector('english', coalesce(hero_title, '')), 'A') ||
			setweight(to_tsvector('english', coalesce(hero_intro, '')), 'B')
		) STORED
	)`,
	`CREATE INDEX IF NOT EXISTS idx_external_items_search ON external_items USING GIN (search_vector)`,
	`CREATE INDEX IF NOT EXISTS idx_external_items_source ON external_items (source_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_search ON pages USING GIN (page_vector)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_hero ON pages USING GIN (hero_vector)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_tree_path ON pages (tree_path text_pattern_ops)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *ConnectionPool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
