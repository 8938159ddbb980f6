package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mvasilj/content-scout/internal/domain"
)

func (s *Store) UpsertSource(ctx context.Context, src domain.DiscoverySource) (uuid.UUID, error) {
	if src.ID == uuid.Nil {
		src.ID = uuid.New()
	}

	cmd := `
		INSERT INTO discovery_sources (id, site_id, name, url, disable_tls_verification, default_tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url) DO UPDATE SET
			site_id = EXCLUDED.site_id,
			name = EXCLUDED.name,
			disable_tls_verification = EXCLUDED.disable_tls_verification,
			default_tags = EXCLUDED.default_tags
		RETURNING id;
	`
	var id uuid.UUID
	err := s.db.QueryRow(ctx, cmd,
		src.ID,
		nullableUUID(src.SiteID),
		src.Name,
		src.URL,
		src.DisableTLSVerification,
		src.DefaultTags,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to upsert source: %w", err)
	}

	return id, nil
}

func (s *Store) ListSources(ctx context.Context) ([]domain.DiscoverySource, error) {
	return s.querySources(ctx, `
		SELECT id, site_id, name, url, disable_tls_verification, default_tags
		FROM discovery_sources
		ORDER BY name, url
	`)
}

func (s *Store) ListSourcesBySite(ctx context.Context, siteID uuid.UUID) ([]domain.DiscoverySource, error) {
	return s.querySources(ctx, `
		SELECT id, site_id, name, url, disable_tls_verification, default_tags
		FROM discovery_sources
		WHERE site_id = $1
		ORDER BY name, url
	`, siteID)
}

func (s *Store) querySources(ctx context.Context, sql string, args ...any) ([]domain.DiscoverySource, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.DiscoverySource
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}

func scanSource(rows pgx.Rows) (domain.DiscoverySource, error) {
	var src domain.DiscoverySource
	var siteID *uuid.UUID

	if err := rows.Scan(
		&src.ID,
		&siteID,
		&src.Name,
		&src.URL,
		&src.DisableTLSVerification,
		&src.DefaultTags,
	); err != nil {
		return domain.DiscoverySource{}, fmt.Errorf("failed to scan source: %w", err)
	}

	if siteID != nil {
		src.SiteID = *siteID
	}
	return src, nil
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
