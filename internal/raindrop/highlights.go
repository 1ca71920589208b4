package raindrop

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

// HighlightFields is the body of highlight create and update calls.
type HighlightFields struct {
	Raindrop *domain.Ref `json:"raindrop,omitempty"`
	Text     string      `json:"text,omitempty"`
	Note     *string     `json:"note,omitempty"`
	Color    *string     `json:"color,omitempty"`
	Tags     *[]string   `json:"tags,omitempty"`
}

// HighlightQuery selects highlights of one bookmark, or all of them.
type HighlightQuery struct {
	RaindropID *int64
	Page       *int
	PerPage    *int
}

func (q HighlightQuery) path() string {
	if q.RaindropID != nil {
		return idPath("/raindrop", *q.RaindropID) + "/highlights"
	}
	return "/highlights"
}

func (q HighlightQuery) values() url.Values {
	v := url.Values{}
	setInt(v, "page", q.Page)
	setInt(v, "perpage", q.PerPage)
	return v
}

func (c *Client) CreateHighlight(ctx context.Context, raindropID int64, in HighlightFields) (*domain.ItemResponse[domain.Highlight], error) {
	in.Raindrop = domain.NewRef(raindropID)
	var out domain.ItemResponse[domain.Highlight]
	if err := c.Do(ctx, http.MethodPost, "/highlights", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListHighlights(ctx context.Context, q HighlightQuery) (*domain.ItemsResponse[domain.Highlight], error) {
	var out domain.ItemsResponse[domain.Highlight]
	if err := c.Do(ctx, http.MethodGet, q.path(), q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHighlight(ctx context.Context, id string, in HighlightFields) (*domain.ItemResponse[domain.Highlight], error) {
	in.Raindrop = nil
	var out domain.ItemResponse[domain.Highlight]
	if err := c.Do(ctx, http.MethodPut, "/highlights/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHighlight(ctx context.Context, id string) (*domain.ResultResponse, error) {
	var out domain.ResultResponse
	if err := c.Do(ctx, http.MethodDelete, "/highlights/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
