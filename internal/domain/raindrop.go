package domain

import "encoding/json"

// Ref points at another Raindrop entity.
// The service writes references as {"$id": n}; some endpoints answer with
// {"_id": n}, so both are accepted on decode.
type Ref struct {
	ID int64 `json:"$id"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var raw struct {
		Dollar     *int64 `json:"$id"`
		Underscore *int64 `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Dollar != nil:
		r.ID = *raw.Dollar
	case raw.Underscore != nil:
		r.ID = *raw.Underscore
	}
	return nil
}

// NewRef returns a reference to id.
func NewRef(id int64) *Ref { return &Ref{ID: id} }

// Bookmark mirrors a Raindrop "raindrop".
// Identity is assigned by the service, never locally.
type Bookmark struct {
	ID         int64    `json:"_id"`
	Link       string   `json:"link"`
	Title      string   `json:"title,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Created    string   `json:"created,omitempty"`
	LastUpdate string   `json:"lastUpdate,omitempty"`
	Collection *Ref     `json:"collection,omitempty"`
}

// Collection mirrors a Raindrop collection.
//
// Sort, Public and LastUpdate are pointers/strings on purpose: the formatter
// must tell "absent" apart from the zero value.
type Collection struct {
	ID          int64   `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Count       int     `json:"count"`
	Created     string  `json:"created,omitempty"`
	LastUpdate  string  `json:"lastUpdate,omitempty"`
	Parent      *Ref    `json:"parent,omitempty"`
	View        string  `json:"view,omitempty"`
	Sort        *int    `json:"sort,omitempty"`
	Public      *bool   `json:"public,omitempty"`
	Access      *Access `json:"access,omitempty"`
}

// Access is the caller's permission metadata on a collection.
type Access struct {
	Level     int  `json:"level"`
	Draggable bool `json:"draggable,omitempty"`
}

// Collection view modes accepted by the service.
const (
	ViewList    = "list"
	ViewSimple  = "simple"
	ViewGrid    = "grid"
	ViewMasonry = "masonry"
)

// Views lists the view modes in the order tool schemas publish them.
var Views = []string{ViewList, ViewSimple, ViewGrid, ViewMasonry}

// Tag is a label name with its usage count. Tags only exist through bookmarks.
type Tag struct {
	Name  string `json:"_id"`
	Count int    `json:"count"`
}

// Highlight is a text excerpt attached to a bookmark.
type Highlight struct {
	ID         string            `json:"_id"`
	Text       string            `json:"text"`
	Note       string            `json:"note,omitempty"`
	Color      string            `json:"color,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	Created    string            `json:"created,omitempty"`
	LastUpdate string            `json:"lastUpdate,omitempty"`
	Raindrop   HighlightBookmark `json:"raindrop"`
}

// HighlightBookmark is the back-reference from a highlight to its bookmark.
type HighlightBookmark struct {
	ID    int64  `json:"$id"`
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
}

func (h *HighlightBookmark) UnmarshalJSON(data []byte) error {
	type plain HighlightBookmark
	var raw struct {
		plain
		Underscore *int64 `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = HighlightBookmark(raw.plain)
	if h.ID == 0 && raw.Underscore != nil {
		h.ID = *raw.Underscore
	}
	return nil
}

// ItemResponse is the envelope of single-entity endpoints.
type ItemResponse[T any] struct {
	Result bool `json:"result"`
	Item   T    `json:"item"`
}

// ItemsResponse is the envelope of list endpoints. Count is the server-side
// total, which may exceed len(Items) when the service paginates.
type ItemsResponse[T any] struct {
	Result bool `json:"result"`
	Items  []T  `json:"items"`
	Count  int  `json:"count"`
}

// Total returns Count, falling back to len(Items) when the service omitted it.
func (r *ItemsResponse[T]) Total() int {
	if r.Count < len(r.Items) {
		return len(r.Items)
	}
	return r.Count
}

// ResultResponse is the envelope of delete/merge endpoints.
type ResultResponse struct {
	Result       bool   `json:"result"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
