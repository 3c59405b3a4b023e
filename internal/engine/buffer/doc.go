// Package buffer provides a thread-safe editable text container whose
// property spans are kept by an interval tree. It is the buffer-like
// container of the engine: positions are 1-based, and every edit keeps the
// tree in step with the text.
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello, World!")
//
//	// Mark a range bold.
//	buf.SetProperties(buffer.NewRange(1, 6), textprop.Props{"face": "bold"})
//
//	// Insert text; the surrounding span grows with it.
//	buf.Insert(6, " there")
//
//	// Delete a range; covered spans shrink or disappear.
//	buf.Delete(buffer.NewRange(3, 8))
//
// Spans carrying the "read-only" property reject edits: Insert fails
// strictly inside such a span, Delete fails when its range overlaps one.
//
// Thread safety: all Buffer methods take the buffer's lock. The
// interval.Container methods (BeginOffset, Length, AttachRoot, Root) are
// the exception; they are called re-entrantly by property operations the
// buffer itself runs under its lock, and must not be used directly from
// other goroutines.
package buffer
