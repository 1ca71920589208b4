package format

import (
	"fmt"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

// Empty-result sentences.
const (
	NoBookmarks   = "No bookmarks found matching your search."
	NoCollections = "No collections found."
	NoHighlights  = "No highlights found."
	NoTagsFound   = "No tags found."
)

// displayPage converts a 0-based page argument into the 1-based page shown to users.
func displayPage(page *int) int {
	if page == nil {
		return 1
	}
	return *page + 1
}

func (f *Formatter) SearchResults(r *domain.ItemsResponse[domain.Bookmark], page *int) string {
	header := fmt.Sprintf("Found %d total bookmarks (showing %d on page %d):", r.Total(), len(r.Items), displayPage(page))
	return List(header, NoBookmarks, r.Items, f.bookmarkFields())
}

func (f *Formatter) BookmarkCreated(b domain.Bookmark) string {
	return "Bookmark created successfully: " + b.Link
}

func (f *Formatter) BookmarkUpdated(b domain.Bookmark) string {
	return fmt.Sprintf("Bookmark updated successfully: %s (ID: %d)", or(b.Link, or(b.Title, Untitled)), b.ID)
}

func (f *Formatter) BookmarkDeleted(r *domain.ResultResponse, id int64) string {
	return Result(r.Result,
		fmt.Sprintf("Bookmark deleted successfully (ID: %d)", id),
		fmt.Sprintf("Failed to delete bookmark (ID: %d)", id))
}

func (f *Formatter) Collections(r *domain.ItemsResponse[domain.Collection]) string {
	header := fmt.Sprintf("Found %d collections:", len(r.Items))
	return List(header, NoCollections, r.Items, f.collectionListFields())
}

func (f *Formatter) Collection(c domain.Collection) string {
	return Detail(c, f.collectionDetailFields())
}

func (f *Formatter) CollectionCreated(c domain.Collection) string {
	return fmt.Sprintf("Collection created successfully: %q (ID: %d)", c.Title, c.ID)
}

func (f *Formatter) CollectionUpdated(c domain.Collection) string {
	return fmt.Sprintf("Collection updated successfully: %q (ID: %d)", c.Title, c.ID)
}

func (f *Formatter) CollectionDeleted(r *domain.ResultResponse, id int64) string {
	return Result(r.Result,
		fmt.Sprintf("Collection deleted successfully (ID: %d)", id),
		fmt.Sprintf("Failed to delete collection (ID: %d)", id))
}

func (f *Formatter) Highlights(r *domain.ItemsResponse[domain.Highlight], page *int) string {
	header := fmt.Sprintf("Found %d total highlights (showing %d on page %d):", r.Total(), len(r.Items), displayPage(page))
	return List(header, NoHighlights, r.Items, f.highlightFields())
}

func (f *Formatter) HighlightCreated(h domain.Highlight) string {
	return fmt.Sprintf("Highlight created successfully (ID: %s)", h.ID)
}

func (f *Formatter) HighlightUpdated(h domain.Highlight) string {
	return fmt.Sprintf("Highlight updated successfully (ID: %s)", h.ID)
}

func (f *Formatter) HighlightDeleted(r *domain.ResultResponse, id string) string {
	return Result(r.Result,
		fmt.Sprintf("Highlight deleted successfully (ID: %s)", id),
		fmt.Sprintf("Failed to delete highlight (ID: %s)", id))
}

func (f *Formatter) Tags(r *domain.ItemsResponse[domain.Tag]) string {
	header := fmt.Sprintf("Found %d tags:", len(r.Items))
	return List(header, NoTagsFound, r.Items, tagFields)
}

func (f *Formatter) TagsMerged(r *domain.ResultResponse, newName string) string {
	return Result(r.Result,
		fmt.Sprintf("Tags merged successfully into %q", newName),
		fmt.Sprintf("Failed to merge tags into %q", newName))
}

func (f *Formatter) TagDeleted(r *domain.ResultResponse, tag string) string {
	return Result(r.Result,
		fmt.Sprintf("Tag %q deleted successfully", tag),
		fmt.Sprintf("Failed to delete tag %q", tag))
}
