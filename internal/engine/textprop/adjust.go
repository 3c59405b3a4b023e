package textprop

import (
	"fmt"

	"github.com/dshills/textspan/internal/engine/interval"
)

// Edit adjustment keeps a container's tree in step with its text. The
// container applies the text change first, then reports it here; the tree
// still reflects the pre-edit length when these run, which is why bounds
// are checked against the root's weight rather than the container.

// AdjustForInsert grows the tree for an insertion of length units at pos.
// Stickiness decides which span absorbs text inserted exactly on a span
// boundary: the preceding span by default, the following one when it is
// front-sticky and the preceding one is not rear-sticky. A container
// without a tree needs no adjustment.
func AdjustForInsert(c interval.Container, pos, length interval.Offset) error {
	if length < 0 {
		return fmt.Errorf("insert length %d: %w", length, ErrRangeInvalid)
	}
	root := c.Root()
	if root == nil || length == 0 {
		return nil
	}
	begin := c.BeginOffset()
	if pos < begin || pos > begin+root.TotalLength() {
		return fmt.Errorf("insert at %d: %w", pos, interval.ErrPositionOutOfRange)
	}

	n, err := root.Find(pos)
	if err != nil {
		return err
	}

	target := n
	switch {
	case pos >= n.Position()+n.Length():
		// End of the sequence: the last span takes the text.
	case pos == n.Position():
		prev := n.Prev()
		if prev != nil && !(n.FrontSticky() && !prev.RearSticky()) {
			target = prev
		}
	}

	target.GrowSpan(length)
	return nil
}

// AdjustForDelete shrinks the tree for a deletion of length units starting
// at start. Spans fully inside the range disappear; partially covered
// spans shrink. A container without a tree needs no adjustment.
func AdjustForDelete(c interval.Container, start, length interval.Offset) error {
	if length < 0 {
		return fmt.Errorf("delete length %d: %w", length, ErrRangeInvalid)
	}
	root := c.Root()
	if root == nil || length == 0 {
		return nil
	}
	begin := c.BeginOffset()
	if start < begin || start+length > begin+root.TotalLength() {
		return fmt.Errorf("delete [%d,+%d): %w", start, length, interval.ErrPositionOutOfRange)
	}

	n, err := root.Find(start)
	if err != nil {
		return err
	}

	// Collect the cuts first: shrinking while walking would invalidate
	// the position caches the walk depends on.
	end := start + length
	type cut struct {
		node   *interval.Node
		amount interval.Offset
	}
	var cuts []cut
	for cur := n; cur != nil; cur = cur.Next() {
		if cur.Position() >= end {
			break
		}
		spanEnd := cur.Position() + cur.Length()
		overlap := min(end, spanEnd) - max(start, cur.Position())
		if overlap > 0 {
			cuts = append(cuts, cut{node: cur, amount: overlap})
		}
		if spanEnd >= end {
			break
		}
	}

	for _, ct := range cuts {
		ct.node.GrowSpan(-ct.amount)
	}
	for _, ct := range cuts {
		if ct.node.Length() == 0 {
			ct.node.Delete()
		}
	}

	if r := c.Root(); r != nil {
		r.BalancePossibleRoot()
	}
	return nil
}
