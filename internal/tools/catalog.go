// Package tools holds the Raindrop tool catalog and the dispatcher that turns
// a named invocation into one validated REST call and a text result.
package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/format"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/raindrop"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/schema"
)

// API is the part of the Raindrop client the tools call. *raindrop.Client implements it.
type API interface {
	CreateBookmark(ctx context.Context, in raindrop.BookmarkFields) (*domain.ItemResponse[domain.Bookmark], error)
	SearchBookmarks(ctx context.Context, p raindrop.SearchParams) (*domain.ItemsResponse[domain.Bookmark], error)
	UpdateBookmark(ctx context.Context, id int64, in raindrop.BookmarkFields) (*domain.ItemResponse[domain.Bookmark], error)
	DeleteBookmark(ctx context.Context, id int64) (*domain.ResultResponse, error)

	ListCollections(ctx context.Context) (*domain.ItemsResponse[domain.Collection], error)
	GetCollection(ctx context.Context, id int64) (*domain.ItemResponse[domain.Collection], error)
	CreateCollection(ctx context.Context, in raindrop.CollectionFields) (*domain.ItemResponse[domain.Collection], error)
	UpdateCollection(ctx context.Context, id int64, in raindrop.CollectionFields) (*domain.ItemResponse[domain.Collection], error)
	DeleteCollection(ctx context.Context, id int64) (*domain.ResultResponse, error)

	ListTags(ctx context.Context, collectionID *int64) (*domain.ItemsResponse[domain.Tag], error)
	MergeTags(ctx context.Context, tags []string, newName string) (*domain.ResultResponse, error)
	DeleteTag(ctx context.Context, tag string) (*domain.ResultResponse, error)

	CreateHighlight(ctx context.Context, raindropID int64, in raindrop.HighlightFields) (*domain.ItemResponse[domain.Highlight], error)
	ListHighlights(ctx context.Context, q raindrop.HighlightQuery) (*domain.ItemsResponse[domain.Highlight], error)
	UpdateHighlight(ctx context.Context, id string, in raindrop.HighlightFields) (*domain.ItemResponse[domain.Highlight], error)
	DeleteHighlight(ctx context.Context, id string) (*domain.ResultResponse, error)
}

// Descriptor is the published shape of one tool.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Tool is one catalog entry.
type Tool struct {
	Name        string
	Description string
	Schema      *schema.Schema
	run         func(ctx context.Context, d *Dispatcher, args json.RawMessage) (string, error)
}

func (t Tool) Descriptor() Descriptor {
	return Descriptor{Name: t.Name, Description: t.Description, InputSchema: t.Schema.JSON()}
}

// define binds a handler to the schema reflected from its input type, so the
// handler only ever sees arguments that passed validation.
func define[In any](name, description string, h func(ctx context.Context, d *Dispatcher, in In) (string, error)) Tool {
	s := schema.MustReflect(name, new(In))
	return Tool{
		Name:        name,
		Description: description,
		Schema:      s,
		run: func(ctx context.Context, d *Dispatcher, args json.RawMessage) (string, error) {
			var in In
			if err := s.Decode(args, &in); err != nil {
				return "", err
			}
			return h(ctx, d, in)
		},
	}
}

// Catalog is the ordered, static tool list.
type Catalog struct {
	tools  []Tool
	byName map[string]int
}

// NewCatalog builds the catalog of all Raindrop tools in their published order.
func NewCatalog() *Catalog {
	list := []Tool{
		define("create-bookmark", "Create a new bookmark in Raindrop.io", createBookmark),
		define("search-bookmarks", "Search through your Raindrop.io bookmarks", searchBookmarks),
		define("update-bookmark", "Update an existing bookmark in Raindrop.io", updateBookmark),
		define("delete-bookmark", "Delete a bookmark from Raindrop.io", deleteBookmark),
		define("list-collections", "List all your Raindrop.io collections", listCollections),
		define("create-collection", "Create a new collection in Raindrop.io", createCollection),
		define("update-collection", "Update an existing collection in Raindrop.io", updateCollection),
		define("delete-collection", "Delete a collection from Raindrop.io", deleteCollection),
		define("get-collection", "Get details of a single Raindrop.io collection", getCollection),
		define("create-highlight", "Create a highlight on a bookmark", createHighlight),
		define("list-highlights", "List highlights, for all bookmarks or a single one", listHighlights),
		define("update-highlight", "Update an existing highlight", updateHighlight),
		define("delete-highlight", "Delete a highlight", deleteHighlight),
		define("list-tags", "List tags, for all collections or a single one", listTags),
		define("merge-tags", "Merge several tags into one", mergeTags),
		define("delete-tag", "Delete a tag from all bookmarks", deleteTag),
	}
	c := &Catalog{tools: list, byName: make(map[string]int, len(list))}
	for i, t := range list {
		c.byName[t.Name] = i
	}
	return c
}

// Tools returns the descriptors in declaration order.
func (c *Catalog) Tools() []Descriptor {
	out := make([]Descriptor, 0, len(c.tools))
	for _, t := range c.tools {
		out = append(out, t.Descriptor())
	}
	return out
}

func (c *Catalog) Lookup(name string) (Tool, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Tool{}, false
	}
	return c.tools[i], true
}

// Dispatcher runs catalog tools against the Raindrop API.
type Dispatcher struct {
	catalog *Catalog
	api     API
	format  *format.Formatter
	log     logger.Logger
}

func NewDispatcher(catalog *Catalog, api API, f *format.Formatter, log logger.Logger) *Dispatcher {
	return &Dispatcher{catalog: catalog, api: api, format: f, log: log}
}

func (d *Dispatcher) Catalog() *Catalog { return d.catalog }

// Call validates args against the named tool's schema, performs the single
// REST call behind it and renders the response.
func (d *Dispatcher) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	tool, ok := d.catalog.Lookup(name)
	if !ok {
		d.log.Warn("unknown tool", logger.String("tool", name))
		return "", &domain.UnknownOperationError{Name: name}
	}

	start := time.Now()
	text, err := tool.run(ctx, d, args)
	elapsed := time.Since(start)
	if err != nil {
		d.log.Info("tool call failed",
			logger.String("tool", name),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
		return "", err
	}

	d.log.Debug("tool call",
		logger.String("tool", name),
		logger.Duration("elapsed", elapsed),
		logger.Int("bytes", len(text)),
	)
	return text, nil
}
