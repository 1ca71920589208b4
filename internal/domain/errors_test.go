package domain

import (
	"encoding/json"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{
		Operation: "merge-tags",
		Fields: []FieldError{
			{Path: "tags", Reason: "minimum 2 items required, but found 1 items"},
			{Path: "newName", Reason: "missing property"},
		},
	}

	want := "Invalid arguments: tags: minimum 2 items required, but found 1 items, newName: missing property"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRemoteErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *RemoteError
		want string
	}{
		{
			name: "status text only",
			err:  &RemoteError{StatusCode: 404, Status: "Not Found"},
			want: "Raindrop API error: Not Found",
		},
		{
			name: "with service message",
			err:  &RemoteError{StatusCode: 401, Status: "Unauthorized", Message: "Invalid token"},
			want: "Raindrop API error: Unauthorized (Invalid token)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRefAcceptsBothIDForms(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{`{"$id": 42}`, 42},
		{`{"_id": 7}`, 7},
		{`{}`, 0},
	}

	for _, tt := range tests {
		var r Ref
		if err := json.Unmarshal([]byte(tt.in), &r); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
		}
		if r.ID != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, r.ID, tt.want)
		}
	}

	out, err := json.Marshal(NewRef(9))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != `{"$id":9}` {
		t.Errorf("Marshal = %s, want {\"$id\":9}", out)
	}
}

func TestHighlightBookmarkDecode(t *testing.T) {
	var h Highlight
	data := `{"_id":"h1","text":"quote","raindrop":{"_id":5,"title":"Page","link":"https://example.com"}}`
	if err := json.Unmarshal([]byte(data), &h); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if h.Raindrop.ID != 5 || h.Raindrop.Title != "Page" || h.Raindrop.Link != "https://example.com" {
		t.Errorf("Raindrop = %+v", h.Raindrop)
	}
}

func TestItemsResponseTotal(t *testing.T) {
	r := ItemsResponse[Tag]{Items: []Tag{{Name: "a"}, {Name: "b"}}}
	if r.Total() != 2 {
		t.Errorf("Total() = %d, want 2", r.Total())
	}
	r.Count = 30
	if r.Total() != 30 {
		t.Errorf("Total() = %d, want 30", r.Total())
	}
}
