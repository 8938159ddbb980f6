package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/domain"
)

// Ranking boosts of the external-item search vector, matching the search
// engine's external-collection weights.
var itemSearchBoosts = []FieldWeight{
	{Field: "title", Weight: 3.5},
	{Field: "summary", Weight: 2.0},
	{Field: "tags", Weight: 2.5},
	{Field: "source_name", Weight: 1.5},
	{Field: "url", Weight: 1.0},
}

// UpsertFromURL resolves or creates the row for a URL in one transaction:
// field overwrite, LastSeenAt refresh and default-tag attach are atomic, so
// a failed pass never leaves a half-written item behind.
func (s *Store) UpsertFromURL(ctx context.Context, url string, sourceID *uuid.UUID, fields domain.ItemFields, defaultTagKeys []string) (*domain.ExternalItem, error) {
	url = strings.TrimSpace(url)
	key := domain.BuildItemKey(url)

	metadataJSON, err := json.Marshal(fields.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item metadata: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin upsert transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	item := domain.ExternalItem{
		Key:         key,
		URL:         url,
		SourceID:    sourceID,
		Title:       fields.Title,
		Summary:     fields.Summary,
		PublishedAt: fields.PublishedAt,
		CreatedAt:   fields.CreatedAt,
		UpdatedAt:   fields.UpdatedAt,
		Metadata:    fields.Metadata,
	}

	// The source's display name is denormalized onto the row so the search
	// vector covers it and mirror documents carry it.
	cmd := `
		INSERT INTO external_items (
			id, key, url, source_id, source_name, title, summary,
			published_at, created_at, updated_at, metadata,
			first_seen_at, last_seen_at
		)
		VALUES (
			$1, $2, $3, $4,
			COALESCE((SELECT COALESCE(NULLIF(s.name, ''), s.url) FROM discovery_sources s WHERE s.id = $4), ''),
			$5, $6, $7, $8, $9, $10, $11, $11
		)
		ON CONFLICT (key) DO UPDATE SET
			source_id = EXCLUDED.source_id,
			source_name = EXCLUDED.source_name,
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			published_at = EXCLUDED.published_at,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			metadata = EXCLUDED.metadata,
			last_seen_at = EXCLUDED.last_seen_at
		RETURNING id, hidden, source_name, first_seen_at, last_seen_at;
	`
	err = tx.QueryRow(ctx, cmd,
		uuid.New(), key, url, sourceID,
		fields.Title, fields.Summary,
		fields.PublishedAt, fields.CreatedAt, fields.UpdatedAt,
		metadataJSON, now,
	).Scan(&item.ID, &item.Hidden, &item.SourceName, &item.FirstSeenAt, &item.LastSeenAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert item: %w", err)
	}

	for _, rawKey := range defaultTagKeys {
		tagKey := domain.NormalizeTagKey(rawKey)
		if tagKey == "" {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO tags (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
			tagKey, rawKey,
		); err != nil {
			return nil, fmt.Errorf("failed to ensure tag %q: %w", tagKey, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO external_item_tags (item_id, tag_key) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			item.ID, tagKey,
		); err != nil {
			return nil, fmt.Errorf("failed to attach tag %q: %w", tagKey, err)
		}
	}

	// Refresh the denormalized searchable tag text the vector is built from.
	if _, err := tx.Exec(ctx, `
		UPDATE external_items SET tags_text = COALESCE((
			SELECT string_agg(t.key || ' ' || t.value, ' ')
			FROM external_item_tags jt
			JOIN tags t ON t.key = jt.tag_key
			WHERE jt.item_id = $1
		), '')
		WHERE id = $1
	`, item.ID); err != nil {
		return nil, fmt.Errorf("failed to refresh item tag text: %w", err)
	}

	var tagKeys, tagValues []string
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(array_agg(t.key ORDER BY t.key), '{}'),
		       COALESCE(array_agg(t.value ORDER BY t.key), '{}')
		FROM external_item_tags jt
		JOIN tags t ON t.key = jt.tag_key
		WHERE jt.item_id = $1
	`, item.ID).Scan(&tagKeys, &tagValues); err != nil {
		return nil, fmt.Errorf("failed to load item tags: %w", err)
	}
	for i := range tagKeys {
		item.Tags = append(item.Tags, domain.Tag{Key: tagKeys[i], Value: tagValues[i]})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit upsert transaction: %w", err)
	}

	return &item, nil
}

func (s *Store) ExistingURLs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.Query(ctx, `SELECT url FROM external_items`)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls[url] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating url rows: %w", err)
	}

	return urls, nil
}

func (s *Store) SearchItems(ctx context.Context, query string, siteID *uuid.UUID) ([]domain.RankedItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rankExpr := buildRankExpression("i.search_vector", itemFieldToLabel, itemSearchBoosts, 1)
	matchClause := buildMatchClause("i.search_vector", 1)

	searchSQL := fmt.Sprintf(`
		SELECT
			i.id, i.key, i.url, i.source_id, i.source_name,
			i.title, i.summary, i.published_at, i.created_at, i.updated_at,
			i.metadata, i.first_seen_at, i.last_seen_at,
			%s AS rank
		FROM external_items i
		LEFT JOIN discovery_sources s ON s.id = i.source_id
		WHERE NOT i.hidden
		  AND %s
		  AND ($2::uuid IS NULL OR i.source_id IS NULL OR s.site_id = $2)
		ORDER BY rank DESC, i.url
	`, rankExpr, matchClause)

	rows, err := s.db.Query(ctx, searchSQL, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute item search: %w", err)
	}
	defer rows.Close()

	var results []domain.RankedItem
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var item domain.ExternalItem
		var metadataJSON []byte
		var rank float64

		if err := rows.Scan(
			&item.ID, &item.Key, &item.URL, &item.SourceID, &item.SourceName,
			&item.Title, &item.Summary, &item.PublishedAt, &item.CreatedAt, &item.UpdatedAt,
			&metadataJSON, &item.FirstSeenAt, &item.LastSeenAt,
			&rank,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &item.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item metadata: %w", err)
			}
		}

		item.Key = strings.TrimSpace(item.Key)
		results = append(results, domain.RankedItem{Item: item, Rank: rank})
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	if err := s.attachItemTags(ctx, ids, results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) attachItemTags(ctx context.Context, ids []uuid.UUID, results []domain.RankedItem) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT jt.item_id, t.key, t.value
		FROM external_item_tags jt
		JOIN tags t ON t.key = jt.tag_key
		WHERE jt.item_id = ANY($1)
		ORDER BY t.key
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query item tags: %w", err)
	}
	defer rows.Close()

	byItem := make(map[uuid.UUID][]domain.Tag)
	for rows.Next() {
		var itemID uuid.UUID
		var tag domain.Tag
		if err := rows.Scan(&itemID, &tag.Key, &tag.Value); err != nil {
			return fmt.Errorf("failed to scan item tag: %w", err)
		}
		byItem[itemID] = append(byItem[itemID], tag)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating item tag rows: %w", err)
	}

	for i := range results {
		results[i].Item.Tags = byItem[results[i].Item.ID]
	}
	return nil
}
