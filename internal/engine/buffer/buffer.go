package buffer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/textspan/internal/engine/interval"
	"github.com/dshills/textspan/internal/engine/textprop"
)

// Errors returned by buffer operations.
var (
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrRangeInvalid       = errors.New("invalid range")
	ErrWriteProtected     = errors.New("text is write-protected")
)

// Offset is a 1-based buffer position. Valid positions run from 1 through
// Len()+1, the last being the insertion point past the final unit.
type Offset = interval.Offset

// Buffer is the buffer-like container: editable text with an interval tree
// carrying its properties. All public methods are safe for concurrent use;
// the tree itself has a single writer, serialized by the buffer's lock.
type Buffer struct {
	mu   sync.RWMutex
	data []byte
	root *interval.Node
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string) *Buffer {
	return &Buffer{data: []byte(s)}
}

// Container contract. Property operations call back into these while the
// buffer already holds its lock, so they must stay lock-free; other
// packages only reach a container through an operation that serializes
// access.

// BeginOffset implements interval.Container. Buffer positions start at 1.
func (b *Buffer) BeginOffset() Offset { return 1 }

// Length implements interval.Container. External callers use Len.
func (b *Buffer) Length() Offset { return Offset(len(b.data)) }

// AttachRoot implements interval.Container.
func (b *Buffer) AttachRoot(n *interval.Node) { b.root = n }

// Root implements interval.Container.
func (b *Buffer) Root() *interval.Node { return b.root }

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.data)
}

// Len returns the buffer length in units.
func (b *Buffer) Len() Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Offset(len(b.data))
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Slice returns the content of r.
func (b *Buffer) Slice(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkRange(r); err != nil {
		return "", err
	}
	return string(b.data[r.Start-1 : r.End-1]), nil
}

// Insert places s at pos and grows the property span that absorbs it.
// Inserting strictly inside a write-protected span fails; boundary
// positions of such spans stay writable.
func (b *Buffer) Insert(pos Offset, s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pos < 1 || pos > Offset(len(b.data))+1 {
		return fmt.Errorf("insert at %d: %w", pos, ErrPositionOutOfRange)
	}
	if len(s) == 0 {
		return nil
	}
	if n := b.nodeStrictlyInside(pos); n != nil && n.WriteProtect() {
		return fmt.Errorf("insert at %d: %w", pos, ErrWriteProtected)
	}

	b.data = append(b.data[:pos-1], append([]byte(s), b.data[pos-1:]...)...)
	return textprop.AdjustForInsert(b, pos, Offset(len(s)))
}

// Delete removes the content of r, shrinking or dropping the covered
// spans. Fails without modifying anything when the range overlaps a
// write-protected span.
func (b *Buffer) Delete(r Range) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(r); err != nil {
		return err
	}
	if r.IsEmpty() {
		return nil
	}
	if err := b.checkWritable(r); err != nil {
		return err
	}

	b.data = append(b.data[:r.Start-1], b.data[r.End-1:]...)
	return textprop.AdjustForDelete(b, r.Start, r.Len())
}

// SetProperties overwrites the properties of r.
func (b *Buffer) SetProperties(r Range, p textprop.Props) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkRange(r); err != nil {
		return err
	}
	return textprop.Set(b, r.Start, r.End, p)
}

// AddProperties merges p into the properties of r.
func (b *Buffer) AddProperties(r Range, p textprop.Props) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkRange(r); err != nil {
		return err
	}
	return textprop.Add(b, r.Start, r.End, p)
}

// RemoveProperties deletes keys from the properties of r.
func (b *Buffer) RemoveProperties(r Range, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkRange(r); err != nil {
		return err
	}
	return textprop.Remove(b, r.Start, r.End, keys...)
}

// PropsAt returns the property record at pos.
func (b *Buffer) PropsAt(pos Offset) (textprop.Props, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return textprop.At(b, pos)
}

// PropAt returns a single property value at pos, nil when absent.
func (b *Buffer) PropAt(pos Offset, key string) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return textprop.Get(b, pos, key)
}

// NextPropertyChange reports the first position after pos whose properties
// differ, false when the record runs to the end of the buffer.
func (b *Buffer) NextPropertyChange(pos Offset) (Offset, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return textprop.NextChange(b, pos)
}

// PrevPropertyChange reports the last position at or before pos where the
// properties change, false when the record runs to the buffer start.
func (b *Buffer) PrevPropertyChange(pos Offset) (Offset, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return textprop.PrevChange(b, pos)
}

// Spans reports the buffer's property runs in order.
func (b *Buffer) Spans() []textprop.Span {
	b.mu.Lock()
	defer b.mu.Unlock()
	return textprop.Spans(b)
}

// Coalesce merges adjoining spans holding equal records.
func (b *Buffer) Coalesce() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return textprop.Coalesce(b)
}

// CheckIntervals verifies the structural invariants of the buffer's tree.
func (b *Buffer) CheckIntervals() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return interval.Check(b.root)
}

func (b *Buffer) checkRange(r Range) error {
	if !r.IsValid() {
		return fmt.Errorf("range %s: %w", r, ErrRangeInvalid)
	}
	if r.Start < 1 || r.End > Offset(len(b.data))+1 {
		return fmt.Errorf("range %s: %w", r, ErrPositionOutOfRange)
	}
	return nil
}

// nodeStrictlyInside returns the span containing pos away from both of its
// boundaries, nil otherwise. Callers must hold the lock.
func (b *Buffer) nodeStrictlyInside(pos Offset) *interval.Node {
	if b.root == nil || pos <= 1 || pos > Offset(len(b.data)) {
		return nil
	}
	n, err := b.root.Find(pos)
	if err != nil || pos == n.Position() {
		return nil
	}
	return n
}

// checkWritable fails when r overlaps a write-protected span. Callers must
// hold the lock.
func (b *Buffer) checkWritable(r Range) error {
	if b.root == nil {
		return nil
	}
	n, err := b.root.Find(r.Start)
	if err != nil {
		return err
	}
	for n != nil && n.Position() < r.End {
		if n.WriteProtect() {
			return fmt.Errorf("range %s: %w", r, ErrWriteProtected)
		}
		n = n.Next()
	}
	return nil
}
