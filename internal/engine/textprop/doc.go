// Package textprop layers property semantics over the interval tree: it
// decides when spans split and merge, maps well-known property keys onto
// the tree's flag cache, and keeps a container's tree in step with text
// edits.
//
// The tree (package interval) treats property records as opaque. This
// package supplies the concrete record type, Props, and the range
// operations an editor surface needs:
//
//	textprop.Set(buf, 5, 12, textprop.Props{"face": "bold"})
//	p, _ := textprop.At(buf, 7)            // {"face": "bold"}
//	next, ok, _ := textprop.NextChange(buf, 5)
//
// Edits flow through AdjustForInsert and AdjustForDelete, which grow and
// shrink the affected spans (insertion on a span boundary lands in the
// preceding span unless stickiness says otherwise). Adjoining spans with
// equal records are coalesced explicitly via Coalesce.
//
// Text is the string-like container (begin offset 0, immutable content);
// the buffer package provides the editable, buffer-like one.
package textprop
