package feed

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
)

// GithubOrgAPIPrefix marks source URLs that serve the GitHub organization
// repository listing shape instead of an XML feed.
const GithubOrgAPIPrefix = "https://api.github.com/orgs/"

// IsGithubOrgAPIURL reports whether a source URL should be parsed as a
// GitHub organization repository listing.
func IsGithubOrgAPIURL(url string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(url)), GithubOrgAPIPrefix)
}

// ParseGithubRepos decodes a GitHub organization repository listing: a JSON
// array of repository objects. Elements without a non-empty html_url are
// silently skipped; a non-array document is a structural ParseError.
func ParseGithubRepos(content []byte) ([]domain.FeedEntry, error) {
	if !utf8.Valid(content) {
		return nil, apperr.NewParse("Response body is not valid UTF-8 JSON.")
	}

	var document []any
	if err := json.Unmarshal(content, &document); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, apperr.NewParse("Unsupported GitHub API response: expected a JSON list of repositories.")
		}
		return nil, apperr.NewParseWrap("Response body is not valid JSON.", err)
	}

	var entries []domain.FeedEntry
	for _, element := range document {
		repository, ok := element.(map[string]any)
		if !ok {
			continue
		}

		htmlURL := strings.TrimSpace(jsonString(repository["html_url"]))
		if htmlURL == "" {
			continue
		}

		title := strings.TrimSpace(jsonString(repository["name"]))
		if title == "" {
			title = htmlURL
		}

		createdRaw := strings.TrimSpace(jsonString(repository["created_at"]))
		updatedRaw := strings.TrimSpace(jsonString(repository["updated_at"]))
		pushedRaw := strings.TrimSpace(jsonString(repository["pushed_at"]))
		if updatedRaw == "" {
			updatedRaw = firstNonEmpty(pushedRaw, createdRaw)
		}

		var authorNames []string
		if owner, ok := repository["owner"].(map[string]any); ok {
			if login := strings.TrimSpace(jsonString(owner["login"])); login != "" {
				authorNames = []string{login}
			}
		}

		var topics []string
		if rawTopics, ok := repository["topics"].([]any); ok {
			for _, rawTopic := range rawTopics {
				if topic := strings.TrimSpace(jsonString(rawTopic)); topic != "" {
					topics = append(topics, topic)
				}
			}
		}

		metadata := map[string]any{
			"watchers":    jsonFirst(repository, "watchers", "watchers_count"),
			"open_issues": jsonFirst(repository, "open_issues", "open_issues_count"),
			"language":    repository["language"],
			"topics":      topics,
		}

		entryID := strings.TrimSpace(firstNonEmpty(
			jsonString(repository["node_id"]),
			jsonString(repository["id"]),
			htmlURL,
		))

		entries = append(entries, domain.FeedEntry{
			Format:       domain.FormatGithubRepos,
			URL:          htmlURL,
			Title:        title,
			Summary:      strings.TrimSpace(jsonString(repository["description"])),
			CreatedAt:    ParseTimestamp(firstNonEmpty(createdRaw, updatedRaw)),
			UpdatedAt:    ParseTimestamp(firstNonEmpty(updatedRaw, createdRaw)),
			EntryID:      entryID,
			AuthorNames:  authorNames,
			PublishedRaw: createdRaw,
			UpdatedRaw:   updatedRaw,
			Metadata:     metadata,
		})
	}

	return entries, nil
}

// jsonFirst returns the first of the named keys present in the object, so
// both the "count" and short field name variants are supported.
func jsonFirst(object map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := object[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

// jsonString renders a decoded JSON scalar as a string; nil and composite
// values render empty.
func jsonString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
