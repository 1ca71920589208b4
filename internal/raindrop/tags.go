package raindrop

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

type mergeTagsBody struct {
	Tags    []string `json:"tags"`
	Replace string   `json:"replace"`
}

// ListTags lists tags of one collection, or of all bookmarks when collectionID is nil.
func (c *Client) ListTags(ctx context.Context, collectionID *int64) (*domain.ItemsResponse[domain.Tag], error) {
	path := "/tags"
	if collectionID != nil {
		path = idPath("/tags", *collectionID)
	}
	var out domain.ItemsResponse[domain.Tag]
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MergeTags renames every tag in tags to newName.
func (c *Client) MergeTags(ctx context.Context, tags []string, newName string) (*domain.ResultResponse, error) {
	var out domain.ResultResponse
	body := mergeTagsBody{Tags: tags, Replace: newName}
	if err := c.Do(ctx, http.MethodPut, "/tags", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTag removes tag from every bookmark.
func (c *Client) DeleteTag(ctx context.Context, tag string) (*domain.ResultResponse, error) {
	var out domain.ResultResponse
	if err := c.Do(ctx, http.MethodDelete, "/tags/"+url.PathEscape(tag), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
