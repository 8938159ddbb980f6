// Package es mirrors external items into Elasticsearch for native BM25
// ranking. The mirror is never the system of record: items are indexed after
// the Postgres upsert commits, and an indexing failure only delays mirror
// freshness.
package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/domain"
)

// Boosted field list of the item multi_match, matching the search engine's
// external-collection weights.
var itemSearchFields = []string{
	"title^3.5",
	"summary^2.0",
	"tags^2.5",
	"source_name^1.5",
	"url^1.0",
}

// Document is the indexed shape of an external item.
type Document struct {
	ID          string     `json:"id"`
	Key         string     `json:"key"`
	URL         string     `json:"url"`
	SourceID    string     `json:"source_id,omitempty"`
	SourceName  string     `json:"source_name,omitempty"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Tags        []string   `json:"tags,omitempty"`
	Hidden      bool       `json:"hidden"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	LastSeenAt  time.Time  `json:"last_seen_at"`
	IndexedAt   time.Time  `json:"indexed_at"`
}

type Mirror struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewMirror(ctx context.Context, config ClientConfig) (*Mirror, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	mirror := &Mirror{
		client:    client,
		indexName: config.IndexName,
	}

	if err := mirror.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return mirror, nil
}

func (m *Mirror) EnsureIndex(ctx context.Context) error {
	existsRes, err := m.client.Indices.Exists(m.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("index already exists", "index", m.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":           types.NewKeywordProperty(),
			"key":          types.NewKeywordProperty(),
			"url":          textPropertyWithKeyword(),
			"source_id":    types.NewKeywordProperty(),
			"source_name":  textPropertyWithKeyword(),
			"title":        textPropertyWithKeyword(),
			"summary":      types.NewTextProperty(),
			"tags":         textPropertyWithKeyword(),
			"hidden":       types.NewBooleanProperty(),
			"published_at": types.NewDateProperty(),
			"updated_at":   types.NewDateProperty(),
			"last_seen_at": types.NewDateProperty(),
			"indexed_at":   types.NewDateProperty(),
		},
	}

	createRes, err := m.client.Indices.Create(m.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("index created", "index", m.indexName)
	return nil
}

// IndexItem writes one item into the mirror, keyed by its content hash so
// re-indexing can never duplicate a document.
func (m *Mirror) IndexItem(ctx context.Context, item domain.ExternalItem) error {
	doc := itemToDocument(item)

	res, err := m.client.Index(m.indexName).Id(doc.Key).Document(doc).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index item document: %w", err)
	}

	slog.Debug("item document indexed", "key", doc.Key, "index", m.indexName, "result", res.Result)
	return nil
}

// SearchItems runs a weighted multi_match over the mirror, excluding hidden
// items. The _score is surfaced as the native rank.
func (m *Mirror) SearchItems(ctx context.Context, query string, size int) ([]domain.RankedItem, error) {
	if size <= 0 {
		size = 100
	}

	boolQuery := &types.BoolQuery{
		Must: []types.Query{{
			MultiMatch: &types.MultiMatchQuery{
				Query:  query,
				Fields: itemSearchFields,
			},
		}},
		MustNot: []types.Query{{
			Term: map[string]types.TermQuery{
				"hidden": {Value: true},
			},
		}},
	}

	res, err := m.client.Search().
		Index(m.indexName).
		Query(&types.Query{Bool: boolQuery}).
		Size(size).
		TrackScores(true).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute item search: %w", err)
	}

	var results []domain.RankedItem
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode item document: %w", err)
		}

		var rank float64
		if hit.Score_ != nil {
			rank = float64(*hit.Score_)
		}
		results = append(results, domain.RankedItem{Item: documentToItem(doc), Rank: rank})
	}

	return results, nil
}

func itemToDocument(item domain.ExternalItem) Document {
	doc := Document{
		ID:          item.ID.String(),
		Key:         item.Key,
		URL:         item.URL,
		SourceName:  item.SourceName,
		Title:       item.Title,
		Summary:     item.Summary,
		Hidden:      item.Hidden,
		PublishedAt: item.PublishedAt,
		UpdatedAt:   item.UpdatedAt,
		LastSeenAt:  item.LastSeenAt,
		IndexedAt:   time.Now().UTC(),
	}
	if item.SourceID != nil {
		doc.SourceID = item.SourceID.String()
	}
	for _, tag := range item.Tags {
		doc.Tags = append(doc.Tags, tag.Text())
	}
	return doc
}

func documentToItem(doc Document) domain.ExternalItem {
	item := domain.ExternalItem{
		Key:         doc.Key,
		URL:         doc.URL,
		SourceName:  doc.SourceName,
		Title:       doc.Title,
		Summary:     doc.Summary,
		Hidden:      doc.Hidden,
		PublishedAt: doc.PublishedAt,
		UpdatedAt:   doc.UpdatedAt,
		LastSeenAt:  doc.LastSeenAt,
	}
	if id, err := uuid.Parse(doc.ID); err == nil {
		item.ID = id
	}
	if doc.SourceID != "" {
		if id, err := uuid.Parse(doc.SourceID); err == nil {
			item.SourceID = &id
		}
	}
	for _, tag := range doc.Tags {
		item.Tags = append(item.Tags, domain.Tag{Key: domain.NormalizeTagKey(tag), Value: tag})
	}
	return item
}

func textPropertyWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
