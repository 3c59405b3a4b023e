package textprop

import "github.com/dshills/textspan/internal/engine/interval"

// Text is a string-like container: immutable content with its own interval
// tree, addressed from offset 0. The propertized-string counterpart of the
// buffer package's editable container.
type Text struct {
	content string
	root    *interval.Node
}

// NewText creates a propertized text over s.
func NewText(s string) *Text {
	return &Text{content: s}
}

// BeginOffset is 0 for string-like containers.
func (t *Text) BeginOffset() interval.Offset { return 0 }

// Length returns the content length.
func (t *Text) Length() interval.Offset { return interval.Offset(len(t.content)) }

// AttachRoot installs the tree root.
func (t *Text) AttachRoot(n *interval.Node) { t.root = n }

// Root returns the tree root, or nil.
func (t *Text) Root() *interval.Node { return t.root }

// String returns the full content.
func (t *Text) String() string { return t.content }

// Slice returns the content of [start, end), clamped to the text.
func (t *Text) Slice(start, end interval.Offset) string {
	if start < 0 {
		start = 0
	}
	if end > t.Length() {
		end = t.Length()
	}
	if start >= end {
		return ""
	}
	return t.content[start:end]
}

// Set overwrites the properties of [start, end).
func (t *Text) Set(start, end interval.Offset, p Props) error {
	return Set(t, start, end, p)
}

// Add merges p into the properties of [start, end).
func (t *Text) Add(start, end interval.Offset, p Props) error {
	return Add(t, start, end, p)
}

// Remove deletes keys from the properties of [start, end).
func (t *Text) Remove(start, end interval.Offset, keys ...string) error {
	return Remove(t, start, end, keys...)
}

// At returns the property record at pos.
func (t *Text) At(pos interval.Offset) (Props, error) {
	return At(t, pos)
}

// Spans reports the text's property runs.
func (t *Text) Spans() []Span {
	return Spans(t)
}
