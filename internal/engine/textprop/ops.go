package textprop

import (
	"errors"
	"fmt"

	"github.com/dshills/textspan/internal/engine/interval"
)

// ErrRangeInvalid is returned when a property range does not fit the
// container: start or end outside the sequence, or an empty range.
var ErrRangeInvalid = errors.New("invalid property range")

// Span is one reported property run: [Start, End) with its record.
type Span struct {
	Start interval.Offset
	End   interval.Offset
	Props Props
}

// forRange splits the tree at the range boundaries and applies fn to every
// node whose span lies inside [start, end). Boundary splits copy the
// original node's properties onto the piece inside the range, so fn always
// sees the pre-call record.
func forRange(c interval.Container, start, end interval.Offset, fn func(*interval.Node)) error {
	begin := c.BeginOffset()
	if start < begin || end > begin+c.Length() || start >= end {
		return fmt.Errorf("range [%d,%d): %w", start, end, ErrRangeInvalid)
	}

	root := c.Root()
	if root == nil {
		root = interval.CreateRoot(c)
	}

	n, err := root.Find(start)
	if err != nil {
		return err
	}
	if start > n.Position() {
		// The head of this span stays outside the range.
		head := n
		n = head.SplitRight(start - head.Position())
		n.CopyProperties(head)
	}

	for {
		if n.Position()+n.Length() <= end {
			fn(n)
			if n.Position()+n.Length() == end {
				return nil
			}
			n = n.Next()
			continue
		}

		// Partial tail: keep the remainder outside the range intact.
		piece := n.SplitLeft(end - n.Position())
		piece.CopyProperties(n)
		fn(piece)
		return nil
	}
}

// Set overwrites the properties of [start, end) with p, splitting spans at
// the boundaries as needed. An empty p clears the range to the default
// state.
func Set(c interval.Container, start, end interval.Offset, p Props) error {
	if p.IsEmpty() && c.Root() == nil {
		// Nothing to clear and no reason to grow a tree of defaults.
		return nil
	}
	return forRange(c, start, end, func(n *interval.Node) {
		if p.IsEmpty() {
			n.SetProperties(nil)
			applyFlags(n, nil)
			return
		}
		set := p.Copy().(Props)
		n.SetProperties(set)
		applyFlags(n, set)
	})
}

// Add merges p into the existing properties of [start, end); existing keys
// are overwritten, others kept.
func Add(c interval.Container, start, end interval.Offset, p Props) error {
	if p.IsEmpty() {
		return nil
	}
	return forRange(c, start, end, func(n *interval.Node) {
		merged := nodeProps(n).Copy().(Props)
		for k, v := range p {
			merged[k] = v
		}
		n.SetProperties(merged)
		applyFlags(n, merged)
	})
}

// Remove deletes the given keys from the properties of [start, end). Spans
// whose record becomes empty return to the default state.
func Remove(c interval.Container, start, end interval.Offset, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return forRange(c, start, end, func(n *interval.Node) {
		current := nodeProps(n)
		if current.IsEmpty() {
			return
		}
		stripped := current.Copy().(Props)
		for _, k := range keys {
			delete(stripped, k)
		}
		if stripped.IsEmpty() {
			n.SetProperties(nil)
			applyFlags(n, nil)
			return
		}
		n.SetProperties(stripped)
		applyFlags(n, stripped)
	})
}

// At returns the property record in effect at pos, nil when the position
// carries no properties. pos must address a unit: the end-of-sequence
// position is out of range.
func At(c interval.Container, pos interval.Offset) (Props, error) {
	begin := c.BeginOffset()
	if pos < begin || pos >= begin+c.Length() {
		return nil, fmt.Errorf("at %d: %w", pos, interval.ErrPositionOutOfRange)
	}
	root := c.Root()
	if root == nil {
		return nil, nil
	}
	n, err := root.Find(pos)
	if err != nil {
		return nil, err
	}
	return nodeProps(n), nil
}

// Get returns one property value at pos, nil when absent.
func Get(c interval.Container, pos interval.Offset, key string) (any, error) {
	p, err := At(c, pos)
	if err != nil {
		return nil, err
	}
	return p[key], nil
}

// NextChange returns the first position after pos where the property record
// differs from the one at pos. ok is false when the record stays the same
// through the end of the sequence.
func NextChange(c interval.Container, pos interval.Offset) (next interval.Offset, ok bool, err error) {
	root := c.Root()
	if root == nil {
		return 0, false, nil
	}
	n, err := root.Find(pos)
	if err != nil {
		return 0, false, err
	}
	for succ := n.Next(); succ != nil; succ = n.Next() {
		if !mergeable(n, succ) {
			return succ.Position(), true, nil
		}
		n = succ
	}
	return 0, false, nil
}

// PrevChange returns the start of the property run containing pos when a
// differing run precedes it; ok is false when the record reaches back to
// the start of the sequence.
func PrevChange(c interval.Container, pos interval.Offset) (prev interval.Offset, ok bool, err error) {
	root := c.Root()
	if root == nil {
		return 0, false, nil
	}
	n, err := root.Find(pos)
	if err != nil {
		return 0, false, err
	}
	for pred := n.Prev(); pred != nil; pred = n.Prev() {
		if !mergeable(n, pred) {
			return n.Position(), true, nil
		}
		n = pred
	}
	return 0, false, nil
}

// Spans reports every property run of the container in order. Containers
// without a tree report one default span covering the whole sequence.
func Spans(c interval.Container) []Span {
	begin := c.BeginOffset()
	root := c.Root()
	if root == nil {
		if c.Length() == 0 {
			return nil
		}
		return []Span{{Start: begin, End: begin + c.Length()}}
	}

	out := make([]Span, 0, 8)
	root.Traverse(begin, func(n *interval.Node) bool {
		out = append(out, Span{
			Start: n.Position(),
			End:   n.Position() + n.Length(),
			Props: nodeProps(n),
		})
		return true
	})
	return out
}

// Coalesce merges every run of adjoining mergeable spans (both default or
// property-equal) into single spans.
func Coalesce(c interval.Container) error {
	root := c.Root()
	if root == nil {
		return nil
	}
	n, err := root.Find(c.BeginOffset())
	if err != nil {
		return err
	}
	for {
		succ := n.Next()
		if succ == nil {
			return nil
		}
		if mergeable(n, succ) {
			n = succ.MergeLeft()
		} else {
			n = succ
		}
	}
}
