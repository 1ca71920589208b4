package tools

import (
	"context"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/raindrop"
)

func refOf(id *int64) *domain.Ref {
	if id == nil {
		return nil
	}
	return domain.NewRef(*id)
}

// Bookmarks

func createBookmark(ctx context.Context, d *Dispatcher, in CreateBookmarkInput) (string, error) {
	res, err := d.api.CreateBookmark(ctx, raindrop.BookmarkFields{
		Link:       in.URL,
		Title:      in.Title,
		Tags:       raindrop.TagList(in.Tags),
		Collection: refOf(in.Collection),
	})
	if err != nil {
		return "", err
	}
	item := res.Item
	if item.Link == "" {
		item.Link = in.URL
	}
	return d.format.BookmarkCreated(item), nil
}

func searchBookmarks(ctx context.Context, d *Dispatcher, in SearchBookmarksInput) (string, error) {
	p := raindrop.SearchParams{
		Search:  in.Query,
		Tags:    in.Tags,
		Page:    in.Page,
		PerPage: in.PerPage,
		Sort:    in.Sort,
		Word:    in.Word,
	}
	if in.Collection != nil {
		p.Collection = *in.Collection
	}
	res, err := d.api.SearchBookmarks(ctx, p)
	if err != nil {
		return "", err
	}
	return d.format.SearchResults(res, in.Page), nil
}

func updateBookmark(ctx context.Context, d *Dispatcher, in UpdateBookmarkInput) (string, error) {
	res, err := d.api.UpdateBookmark(ctx, in.ID, raindrop.BookmarkFields{
		Title:      in.Title,
		Tags:       raindrop.TagList(in.Tags),
		Collection: refOf(in.Collection),
	})
	if err != nil {
		return "", err
	}
	item := res.Item
	if item.ID == 0 {
		item.ID = in.ID
	}
	return d.format.BookmarkUpdated(item), nil
}

func deleteBookmark(ctx context.Context, d *Dispatcher, in DeleteBookmarkInput) (string, error) {
	res, err := d.api.DeleteBookmark(ctx, in.ID)
	if err != nil {
		return "", err
	}
	return d.format.BookmarkDeleted(res, in.ID), nil
}

// Collections

func listCollections(ctx context.Context, d *Dispatcher, _ ListCollectionsInput) (string, error) {
	res, err := d.api.ListCollections(ctx)
	if err != nil {
		return "", err
	}
	return d.format.Collections(res), nil
}

func getCollection(ctx context.Context, d *Dispatcher, in GetCollectionInput) (string, error) {
	res, err := d.api.GetCollection(ctx, in.CollectionID)
	if err != nil {
		return "", err
	}
	return d.format.Collection(res.Item), nil
}

func createCollection(ctx context.Context, d *Dispatcher, in CreateCollectionInput) (string, error) {
	res, err := d.api.CreateCollection(ctx, raindrop.CollectionFields{
		Title:       in.Title,
		Description: in.Description,
		Parent:      refOf(in.Parent),
		View:        in.View,
		Sort:        in.Sort,
		Public:      in.Public,
	})
	if err != nil {
		return "", err
	}
	return d.format.CollectionCreated(res.Item), nil
}

func updateCollection(ctx context.Context, d *Dispatcher, in UpdateCollectionInput) (string, error) {
	res, err := d.api.UpdateCollection(ctx, in.CollectionID, raindrop.CollectionFields{
		Title:       in.Title,
		Description: in.Description,
		Parent:      refOf(in.Parent),
		View:        in.View,
		Sort:        in.Sort,
		Public:      in.Public,
	})
	if err != nil {
		return "", err
	}
	return d.format.CollectionUpdated(res.Item), nil
}

func deleteCollection(ctx context.Context, d *Dispatcher, in DeleteCollectionInput) (string, error) {
	res, err := d.api.DeleteCollection(ctx, in.CollectionID)
	if err != nil {
		return "", err
	}
	return d.format.CollectionDeleted(res, in.CollectionID), nil
}

// Highlights

func createHighlight(ctx context.Context, d *Dispatcher, in CreateHighlightInput) (string, error) {
	res, err := d.api.CreateHighlight(ctx, in.RaindropID, raindrop.HighlightFields{
		Text:  in.Text,
		Note:  in.Note,
		Color: in.Color,
		Tags:  raindrop.TagList(in.Tags),
	})
	if err != nil {
		return "", err
	}
	return d.format.HighlightCreated(res.Item), nil
}

func listHighlights(ctx context.Context, d *Dispatcher, in ListHighlightsInput) (string, error) {
	res, err := d.api.ListHighlights(ctx, raindrop.HighlightQuery{
		RaindropID: in.RaindropID,
		Page:       in.Page,
		PerPage:    in.PerPage,
	})
	if err != nil {
		return "", err
	}
	return d.format.Highlights(res, in.Page), nil
}

func updateHighlight(ctx context.Context, d *Dispatcher, in UpdateHighlightInput) (string, error) {
	res, err := d.api.UpdateHighlight(ctx, in.HighlightID, raindrop.HighlightFields{
		Text:  in.Text,
		Note:  in.Note,
		Color: in.Color,
		Tags:  raindrop.TagList(in.Tags),
	})
	if err != nil {
		return "", err
	}
	item := res.Item
	if item.ID == "" {
		item.ID = in.HighlightID
	}
	return d.format.HighlightUpdated(item), nil
}

func deleteHighlight(ctx context.Context, d *Dispatcher, in DeleteHighlightInput) (string, error) {
	res, err := d.api.DeleteHighlight(ctx, in.HighlightID)
	if err != nil {
		return "", err
	}
	return d.format.HighlightDeleted(res, in.HighlightID), nil
}

// Tags

func listTags(ctx context.Context, d *Dispatcher, in ListTagsInput) (string, error) {
	res, err := d.api.ListTags(ctx, in.CollectionID)
	if err != nil {
		return "", err
	}
	return d.format.Tags(res), nil
}

func mergeTags(ctx context.Context, d *Dispatcher, in MergeTagsInput) (string, error) {
	res, err := d.api.MergeTags(ctx, in.Tags, in.NewName)
	if err != nil {
		return "", err
	}
	return d.format.TagsMerged(res, in.NewName), nil
}

func deleteTag(ctx context.Context, d *Dispatcher, in DeleteTagInput) (string, error) {
	res, err := d.api.DeleteTag(ctx, in.Tag)
	if err != nil {
		return "", err
	}
	return d.format.TagDeleted(res, in.Tag), nil
}
