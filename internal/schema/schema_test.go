package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

type sampleInput struct {
	URL     string   `json:"url" jsonschema:"format=uri"`
	Tags    []string `json:"tags,omitempty" jsonschema:"minItems=2"`
	Page    *int     `json:"page,omitempty" jsonschema:"minimum=0"`
	PerPage *int     `json:"perpage,omitempty" jsonschema:"minimum=1,maximum=50"`
	View    string   `json:"view,omitempty" jsonschema:"enum=list,enum=grid"`
}

func validationFields(t *testing.T, err error) []domain.FieldError {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	return ve.Fields
}

func TestValidateAcceptsValidInput(t *testing.T) {
	s := MustReflect("sample", sampleInput{})

	tests := []string{
		`{"url":"https://example.com"}`,
		`{"url":"https://example.com","tags":["a","b"],"page":0,"perpage":50,"view":"grid"}`,
		`{"url":"https://example.com","unknown":true}`,
	}
	for _, in := range tests {
		if err := s.Validate(json.RawMessage(in)); err != nil {
			t.Errorf("Validate(%s) error = %v", in, err)
		}
	}
}

func TestValidateReportsEachField(t *testing.T) {
	s := MustReflect("sample", sampleInput{})

	tests := []struct {
		name      string
		args      string
		wantPaths []string
	}{
		{name: "missing required", args: `{}`, wantPaths: []string{"url"}},
		{name: "null arguments", args: `null`, wantPaths: []string{"url"}},
		{name: "relative url", args: `{"url":"invalid-url"}`, wantPaths: []string{"url"}},
		{name: "negative page", args: `{"url":"https://e.com","page":-1}`, wantPaths: []string{"page"}},
		{name: "perpage too large", args: `{"url":"https://e.com","perpage":51}`, wantPaths: []string{"perpage"}},
		{name: "perpage zero", args: `{"url":"https://e.com","perpage":0}`, wantPaths: []string{"perpage"}},
		{name: "too few items", args: `{"url":"https://e.com","tags":["a"]}`, wantPaths: []string{"tags"}},
		{name: "bad enum", args: `{"url":"https://e.com","view":"table"}`, wantPaths: []string{"view"}},
		{name: "page as string", args: `{"url":"https://e.com","page":"3"}`, wantPaths: []string{"page"}},
		{name: "fractional page", args: `{"url":"https://e.com","page":1.5}`, wantPaths: []string{"page"}},
		{name: "wrong item type", args: `{"url":"https://e.com","tags":["a",2]}`, wantPaths: []string{"tags.1"}},
		{
			name:      "several fields",
			args:      `{"page":-1,"perpage":99}`,
			wantPaths: []string{"page", "perpage", "url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validationFields(t, s.Validate(json.RawMessage(tt.args)))
			if len(fields) != len(tt.wantPaths) {
				t.Fatalf("got %d field errors %+v, want paths %v", len(fields), fields, tt.wantPaths)
			}
			for i, want := range tt.wantPaths {
				if fields[i].Path != want {
					t.Errorf("field[%d].Path = %q, want %q", i, fields[i].Path, want)
				}
				if fields[i].Reason == "" {
					t.Errorf("field[%d] has empty reason", i)
				}
			}
		})
	}
}

func TestValidateRejectsNonObject(t *testing.T) {
	s := MustReflect("sample", sampleInput{})
	fields := validationFields(t, s.Validate(json.RawMessage(`[1,2]`)))
	if len(fields) == 0 {
		t.Fatal("expected at least one field error")
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	s := MustReflect("sample", sampleInput{})
	fields := validationFields(t, s.Validate(json.RawMessage(`{"url":`)))
	if len(fields) != 1 || fields[0].Reason != "arguments must be a JSON object" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestDecode(t *testing.T) {
	s := MustReflect("sample", sampleInput{})

	var in sampleInput
	if err := s.Decode(json.RawMessage(`{"url":"https://example.com","page":2}`), &in); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if in.URL != "https://example.com" {
		t.Errorf("URL = %q", in.URL)
	}
	if in.Page == nil || *in.Page != 2 {
		t.Errorf("Page = %v, want 2", in.Page)
	}
	if in.PerPage != nil {
		t.Errorf("PerPage = %v, want nil", in.PerPage)
	}
}

func TestJSONPublishesConstraints(t *testing.T) {
	s := MustReflect("sample", sampleInput{})

	var doc struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(s.JSON(), &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if doc.Type != "object" {
		t.Errorf("type = %q, want object", doc.Type)
	}
	if len(doc.Required) != 1 || doc.Required[0] != "url" {
		t.Errorf("required = %v, want [url]", doc.Required)
	}

	var perpage struct {
		Minimum float64 `json:"minimum"`
		Maximum float64 `json:"maximum"`
	}
	if err := json.Unmarshal(doc.Properties["perpage"], &perpage); err != nil {
		t.Fatalf("perpage property: %v", err)
	}
	if perpage.Minimum != 1 || perpage.Maximum != 50 {
		t.Errorf("perpage bounds = [%v,%v], want [1,50]", perpage.Minimum, perpage.Maximum)
	}
}
