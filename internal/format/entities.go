package format

import (
	"fmt"
	"strconv"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

func (f *Formatter) bookmarkFields() []Field[domain.Bookmark] {
	return []Field[domain.Bookmark]{
		{"Title", func(b domain.Bookmark) string { return or(b.Title, Untitled) }},
		{"ID", func(b domain.Bookmark) string { return strconv.FormatInt(b.ID, 10) }},
		{"URL", func(b domain.Bookmark) string { return b.Link }},
		{"Tags", func(b domain.Bookmark) string { return joinTags(b.Tags) }},
		{"Created", func(b domain.Bookmark) string { return f.Time(b.Created) }},
		{"Last Updated", func(b domain.Bookmark) string { return f.TimeOr(b.LastUpdate, Never) }},
	}
}

func (f *Formatter) collectionListFields() []Field[domain.Collection] {
	return []Field[domain.Collection]{
		{"Name", func(c domain.Collection) string { return c.Title }},
		{"ID", func(c domain.Collection) string { return strconv.FormatInt(c.ID, 10) }},
		{"Count", func(c domain.Collection) string { return fmt.Sprintf("%d bookmarks", c.Count) }},
		{"Parent", parentOf},
		{"Created", func(c domain.Collection) string { return f.Time(c.Created) }},
	}
}

func (f *Formatter) collectionDetailFields() []Field[domain.Collection] {
	return []Field[domain.Collection]{
		{"Name", func(c domain.Collection) string { return c.Title }},
		{"ID", func(c domain.Collection) string { return strconv.FormatInt(c.ID, 10) }},
		{"Description", func(c domain.Collection) string { return or(c.Description, NoDescription) }},
		{"Count", func(c domain.Collection) string { return fmt.Sprintf("%d bookmarks", c.Count) }},
		{"View", func(c domain.Collection) string { return or(c.View, NotSet) }},
		{"Sort", func(c domain.Collection) string {
			if c.Sort == nil {
				return NotSet
			}
			return strconv.Itoa(*c.Sort)
		}},
		{"Public", func(c domain.Collection) string {
			if c.Public == nil {
				return NotSet
			}
			return strconv.FormatBool(*c.Public)
		}},
		{"Parent", parentOf},
		{"Created", func(c domain.Collection) string { return f.Time(c.Created) }},
		{"Last Update", func(c domain.Collection) string { return f.TimeOr(c.LastUpdate, Never) }},
		{"Access Level", func(c domain.Collection) string {
			if c.Access == nil || c.Access.Level == 0 {
				return NotAvailable
			}
			return strconv.Itoa(c.Access.Level)
		}},
	}
}

func parentOf(c domain.Collection) string {
	if c.Parent == nil || c.Parent.ID == 0 {
		return None
	}
	return strconv.FormatInt(c.Parent.ID, 10)
}

func (f *Formatter) highlightFields() []Field[domain.Highlight] {
	return []Field[domain.Highlight]{
		{"ID", func(h domain.Highlight) string { return h.ID }},
		{"Text", func(h domain.Highlight) string { return h.Text }},
		{"Note", func(h domain.Highlight) string { return or(h.Note, NoNote) }},
		{"Color", func(h domain.Highlight) string { return or(h.Color, NotSet) }},
		{"Tags", func(h domain.Highlight) string { return joinTags(h.Tags) }},
		{"Bookmark", func(h domain.Highlight) string {
			return fmt.Sprintf("%s (ID: %d)", or(h.Raindrop.Title, Untitled), h.Raindrop.ID)
		}},
		{"URL", func(h domain.Highlight) string { return or(h.Raindrop.Link, NotAvailable) }},
		{"Created", func(h domain.Highlight) string { return f.Time(h.Created) }},
		{"Last Updated", func(h domain.Highlight) string { return f.TimeOr(h.LastUpdate, Never) }},
	}
}

var tagFields = []Field[domain.Tag]{
	{"Tag", func(t domain.Tag) string { return t.Name }},
	{"Count", func(t domain.Tag) string { return fmt.Sprintf("%d bookmarks", t.Count) }},
}
