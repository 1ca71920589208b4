package raindrop

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

// CollectionFields is the body of collection create and update calls.
type CollectionFields struct {
	Title       string      `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Parent      *domain.Ref `json:"parent,omitempty"`
	View        string      `json:"view,omitempty"`
	Sort        *int        `json:"sort,omitempty"`
	Public      *bool       `json:"public,omitempty"`
}

func (c *Client) ListCollections(ctx context.Context) (*domain.ItemsResponse[domain.Collection], error) {
	var out domain.ItemsResponse[domain.Collection]
	if err := c.Do(ctx, http.MethodGet, "/collections", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCollection(ctx context.Context, id int64) (*domain.ItemResponse[domain.Collection], error) {
	var out domain.ItemResponse[domain.Collection]
	if err := c.Do(ctx, http.MethodGet, idPath("/collection", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCollection(ctx context.Context, in CollectionFields) (*domain.ItemResponse[domain.Collection], error) {
	var out domain.ItemResponse[domain.Collection]
	if err := c.Do(ctx, http.MethodPost, "/collection", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCollection(ctx context.Context, id int64, in CollectionFields) (*domain.ItemResponse[domain.Collection], error) {
	var out domain.ItemResponse[domain.Collection]
	if err := c.Do(ctx, http.MethodPut, idPath("/collection", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCollection(ctx context.Context, id int64) (*domain.ResultResponse, error) {
	var out domain.ResultResponse
	if err := c.Do(ctx, http.MethodDelete, idPath("/collection", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
