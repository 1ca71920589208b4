// Package schema turns tool input structs into JSON Schemas and validates
// tool arguments against them.
//
// The schema published to callers and the schema used for validation are the
// same compiled document: constraints live only in struct tags.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
)

// Schema is a compiled input schema for one operation.
type Schema struct {
	name     string
	raw      json.RawMessage
	compiled *jsonschema.Schema
}

// Reflect builds the schema of v's type. v is usually a zero struct value.
func Reflect(name string, v any) (*Schema, error) {
	reflector := invopop.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	raw, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	url := "mem://tools/" + name + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return &Schema{name: name, raw: raw, compiled: compiled}, nil
}

// MustReflect is Reflect for package-level tool tables; it panics on a bad struct tag.
func MustReflect(name string, v any) *Schema {
	s, err := Reflect(name, v)
	if err != nil {
		panic(err)
	}
	return s
}

// JSON returns the schema document.
func (s *Schema) JSON() json.RawMessage { return s.raw }

// Validate checks args against the schema. Violations come back as a
// *domain.ValidationError with one entry per offending field.
func (s *Schema) Validate(args json.RawMessage) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(normalize(args)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return &domain.ValidationError{
			Operation: s.name,
			Fields:    []domain.FieldError{{Reason: "arguments must be a JSON object"}},
		}
	}

	err := s.compiled.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate %s: %w", s.name, err)
	}
	return &domain.ValidationError{Operation: s.name, Fields: fieldErrors(ve)}
}

// Decode validates args and then unmarshals them into dst.
func (s *Schema) Decode(args json.RawMessage, dst any) error {
	if err := s.Validate(args); err != nil {
		return err
	}
	if err := json.Unmarshal(normalize(args), dst); err != nil {
		return &domain.ValidationError{
			Operation: s.name,
			Fields:    []domain.FieldError{{Reason: err.Error()}},
		}
	}
	return nil
}

func normalize(args json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []byte("{}")
	}
	return trimmed
}

var quotedName = regexp.MustCompile(`['"]([^'"]+)['"]`)

// fieldErrors flattens the validator's error tree into leaf violations.
func fieldErrors(root *jsonschema.ValidationError) []domain.FieldError {
	var out []domain.FieldError
	seen := make(map[domain.FieldError]bool)
	add := func(fe domain.FieldError) {
		if !seen[fe] {
			seen[fe] = true
			out = append(out, fe)
		}
	}

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		path := pointerToPath(e.InstanceLocation)
		if strings.HasPrefix(e.Message, "missing properties") {
			for _, m := range quotedName.FindAllStringSubmatch(e.Message, -1) {
				add(domain.FieldError{Path: joinPath(path, m[1]), Reason: "required"})
			}
			return
		}
		add(domain.FieldError{Path: path, Reason: e.Message})
	}
	walk(root)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// pointerToPath turns "/tags/0" into "tags.0".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	segments := strings.Split(ptr, "/")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "~1", "/")
		segments[i] = strings.ReplaceAll(seg, "~0", "~")
	}
	return strings.Join(segments, ".")
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
