// Package format renders Raindrop responses as plain text for tool results.
//
// There is one renderer per response shape (list, single item, boolean
// result); each entity contributes a field-order table.
package format

import (
	"strings"
	"time"
)

// Placeholders for absent optional fields. The output shape never depends
// on which optional fields the service populated.
const (
	NoTags        = "No tags"
	NoDescription = "No description"
	NotSet        = "Not set"
	None          = "None"
	Never         = "Never"
	NotAvailable  = "Not available"
	NoNote        = "No note"
	Untitled      = "Untitled"
	InvalidDate   = "Invalid Date"
)

// TimeLayout is how timestamps are shown.
const TimeLayout = "1/2/2006, 3:04:05 PM"

// Field is one "Label: value" line of an item paragraph.
type Field[T any] struct {
	Label string
	Value func(T) string
}

// Paragraph renders one item: a leading blank line, one line per field, and a "---" separator.
func Paragraph[T any](item T, fields []Field[T]) string {
	var b strings.Builder
	b.WriteString("\n")
	writeLines(&b, item, fields)
	b.WriteString("---")
	return b.String()
}

// List renders a header followed by one paragraph per item, or exactly
// empty when there are no items.
func List[T any](header, empty string, items []T, fields []Field[T]) string {
	if len(items) == 0 {
		return empty
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, Paragraph(item, fields))
	}
	return header + "\n" + strings.Join(parts, "\n")
}

// Detail renders a single item as a block framed by newlines.
func Detail[T any](item T, fields []Field[T]) string {
	var b strings.Builder
	b.WriteString("\n")
	writeLines(&b, item, fields)
	return b.String()
}

// Result picks the success or failure sentence of a boolean response.
func Result(ok bool, success, failure string) string {
	if ok {
		return success
	}
	return failure
}

func writeLines[T any](b *strings.Builder, item T, fields []Field[T]) {
	for _, f := range fields {
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(f.Value(item))
		b.WriteString("\n")
	}
}

// Formatter holds presentation settings shared by the entity tables.
type Formatter struct {
	loc *time.Location
}

// New returns a formatter rendering timestamps in loc (UTC when nil).
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// Time renders an API timestamp, or "Invalid Date" when it cannot be parsed.
func (f *Formatter) Time(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return InvalidDate
	}
	return t.In(f.loc).Format(TimeLayout)
}

// TimeOr renders s, or placeholder when s is empty.
func (f *Formatter) TimeOr(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return f.Time(s)
}

func or(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return NoTags
	}
	return strings.Join(tags, ", ")
}
