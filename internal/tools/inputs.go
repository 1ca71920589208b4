package tools

// Input structs, one per tool. The json and jsonschema tags are the only
// place argument constraints are declared: the published catalog schema and
// the validator are both reflected from these types.

type CreateBookmarkInput struct {
	URL        string   `json:"url" jsonschema:"format=uri" jsonschema_description:"URL to bookmark"`
	Title      *string  `json:"title,omitempty" jsonschema_description:"Title for the bookmark (optional)"`
	Tags       []string `json:"tags,omitempty" jsonschema_description:"Tags for the bookmark (optional)"`
	Collection *int64   `json:"collection,omitempty" jsonschema_description:"Collection ID to save to (optional)"`
}

type SearchBookmarksInput struct {
	Query      string   `json:"query" jsonschema_description:"Search query (empty for no query)"`
	Tags       []string `json:"tags,omitempty" jsonschema_description:"Filter by tags (optional)"`
	Page       *int     `json:"page,omitempty" jsonschema:"minimum=0" jsonschema_description:"Page number (0-based, optional)"`
	PerPage    *int     `json:"perpage,omitempty" jsonschema:"minimum=1,maximum=50" jsonschema_description:"Items per page (1-50, optional)"`
	Sort       string   `json:"sort,omitempty" jsonschema:"enum=-created,enum=created,enum=-last_update,enum=last_update,enum=-title,enum=title,enum=-domain,enum=domain" jsonschema_description:"Sort order (optional). Prefix with - for descending order."`
	Collection *int64   `json:"collection,omitempty" jsonschema_description:"Collection ID to search in (optional, 0 for all collections)"`
	Word       *bool    `json:"word,omitempty" jsonschema_description:"Whether to match exact words only (optional)"`
}

type UpdateBookmarkInput struct {
	ID         int64    `json:"id" jsonschema_description:"Bookmark ID to update"`
	Title      *string  `json:"title,omitempty" jsonschema_description:"New title for the bookmark (optional)"`
	Tags       []string `json:"tags,omitempty" jsonschema_description:"New tags for the bookmark (optional)"`
	Collection *int64   `json:"collection,omitempty" jsonschema_description:"New collection ID to move to (optional)"`
}

type DeleteBookmarkInput struct {
	ID int64 `json:"id" jsonschema_description:"ID of the bookmark to delete"`
}

type ListCollectionsInput struct{}

type GetCollectionInput struct {
	CollectionID int64 `json:"collectionId" jsonschema_description:"ID of the collection"`
}

type CreateCollectionInput struct {
	Title       string  `json:"title" jsonschema:"minLength=1" jsonschema_description:"Name of the collection"`
	Description *string `json:"description,omitempty" jsonschema_description:"Description of the collection (optional)"`
	Parent      *int64  `json:"parent,omitempty" jsonschema_description:"Parent collection ID for nesting (optional)"`
	View        string  `json:"view,omitempty" jsonschema:"enum=list,enum=simple,enum=grid,enum=masonry" jsonschema_description:"View style (optional)"`
	Sort        *int    `json:"sort,omitempty" jsonschema:"minimum=0,maximum=4" jsonschema_description:"Sort rank among sibling collections, 0-4 (optional)"`
	Public      *bool   `json:"public,omitempty" jsonschema_description:"Whether the collection is publicly visible (optional)"`
}

type UpdateCollectionInput struct {
	CollectionID int64   `json:"collectionId" jsonschema_description:"ID of the collection to update"`
	Title        string  `json:"title,omitempty" jsonschema_description:"New name (optional)"`
	Description  *string `json:"description,omitempty" jsonschema_description:"New description (optional)"`
	Parent       *int64  `json:"parent,omitempty" jsonschema_description:"New parent collection ID (optional)"`
	View         string  `json:"view,omitempty" jsonschema:"enum=list,enum=simple,enum=grid,enum=masonry" jsonschema_description:"New view style (optional)"`
	Sort         *int    `json:"sort,omitempty" jsonschema:"minimum=0,maximum=4" jsonschema_description:"New sort rank, 0-4 (optional)"`
	Public       *bool   `json:"public,omitempty" jsonschema_description:"New visibility (optional)"`
}

type DeleteCollectionInput struct {
	CollectionID int64 `json:"collectionId" jsonschema_description:"ID of the collection to delete"`
}

type CreateHighlightInput struct {
	RaindropID int64    `json:"raindropId" jsonschema_description:"ID of the bookmark to highlight"`
	Text       string   `json:"text" jsonschema:"minLength=1" jsonschema_description:"Highlighted text"`
	Note       *string  `json:"note,omitempty" jsonschema_description:"Annotation for the highlight (optional)"`
	Color      *string  `json:"color,omitempty" jsonschema_description:"Highlight color (optional)"`
	Tags       []string `json:"tags,omitempty" jsonschema_description:"Tags for the highlight (optional)"`
}

type ListHighlightsInput struct {
	RaindropID *int64 `json:"raindropId,omitempty" jsonschema_description:"Only list highlights of this bookmark (optional)"`
	Page       *int   `json:"page,omitempty" jsonschema:"minimum=0" jsonschema_description:"Page number (0-based, optional)"`
	PerPage    *int   `json:"perpage,omitempty" jsonschema:"minimum=1,maximum=50" jsonschema_description:"Items per page (1-50, optional)"`
}

type UpdateHighlightInput struct {
	HighlightID string   `json:"highlightId" jsonschema:"minLength=1" jsonschema_description:"ID of the highlight to update"`
	Text        string   `json:"text,omitempty" jsonschema_description:"New text (optional)"`
	Note        *string  `json:"note,omitempty" jsonschema_description:"New note (optional)"`
	Color       *string  `json:"color,omitempty" jsonschema_description:"New color (optional)"`
	Tags        []string `json:"tags,omitempty" jsonschema_description:"New tags (optional)"`
}

type DeleteHighlightInput struct {
	HighlightID string `json:"highlightId" jsonschema:"minLength=1" jsonschema_description:"ID of the highlight to delete"`
}

type ListTagsInput struct {
	CollectionID *int64 `json:"collectionId,omitempty" jsonschema_description:"Only list tags used in this collection (optional)"`
}

type MergeTagsInput struct {
	Tags    []string `json:"tags" jsonschema:"minItems=2" jsonschema_description:"Tags to merge (at least two)"`
	NewName string   `json:"newName" jsonschema:"minLength=1" jsonschema_description:"Name of the merged tag"`
}

type DeleteTagInput struct {
	Tag string `json:"tag" jsonschema:"minLength=1" jsonschema_description:"Tag to delete from all bookmarks"`
}
