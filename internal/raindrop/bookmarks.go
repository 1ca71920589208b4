package raindrop

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

// BookmarkFields is the body of create and update calls. Absent fields are
// omitted from the JSON, never sent as null. A non-nil empty Tags clears them.
type BookmarkFields struct {
	Link       string      `json:"link,omitempty"`
	Title      *string     `json:"title,omitempty"`
	Tags       *[]string   `json:"tags,omitempty"`
	Collection *domain.Ref `json:"collection,omitempty"`
}

// TagList keeps an explicit empty list distinct from an absent one.
func TagList(tags []string) *[]string {
	if tags == nil {
		return nil
	}
	return &tags
}

// SearchParams filters GET /raindrops/{collection}.
type SearchParams struct {
	Collection int64 // 0 = all collections
	Search     string
	Tags       []string
	Page       *int
	PerPage    *int
	Sort       string
	Word       *bool
}

// Values encodes the filters. Tags are comma-joined into one parameter.
func (p SearchParams) Values() url.Values {
	q := url.Values{}
	q.Set("search", p.Search)
	if len(p.Tags) > 0 {
		q.Set("tags", strings.Join(p.Tags, ","))
	}
	setInt(q, "page", p.Page)
	setInt(q, "perpage", p.PerPage)
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Word != nil {
		q.Set("word", strconv.FormatBool(*p.Word))
	}
	return q
}

func (c *Client) CreateBookmark(ctx context.Context, in BookmarkFields) (*domain.ItemResponse[domain.Bookmark], error) {
	var out domain.ItemResponse[domain.Bookmark]
	if err := c.Do(ctx, http.MethodPost, "/raindrop", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchBookmarks(ctx context.Context, p SearchParams) (*domain.ItemsResponse[domain.Bookmark], error) {
	var out domain.ItemsResponse[domain.Bookmark]
	if err := c.Do(ctx, http.MethodGet, idPath("/raindrops", p.Collection), p.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBookmark(ctx context.Context, id int64, in BookmarkFields) (*domain.ItemResponse[domain.Bookmark], error) {
	var out domain.ItemResponse[domain.Bookmark]
	if err := c.Do(ctx, http.MethodPut, idPath("/raindrop", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id int64) (*domain.ResultResponse, error) {
	var out domain.ResultResponse
	if err := c.Do(ctx, http.MethodDelete, idPath("/raindrop", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
