package interval

// Offset represents a position or length measured in buffer units.
// Signed so that position arithmetic (which subtracts freely) stays safe.
type Offset = int64

// PropertySet is the opaque property record attached to a node.
// The tree never inspects individual keys; it only needs to know whether a
// set is empty (the default state) and how to copy and compare whole sets.
type PropertySet interface {
	IsEmpty() bool
	Copy() PropertySet
	Equal(PropertySet) bool
}

// parentRef is the tagged back-reference of a node: exactly one of node or
// container is non-nil. The root node (and only the root) points at the
// Container; every other node points at its parent node. Back-references
// are non-owning and must be re-pointed on every reattachment.
type parentRef struct {
	node      *Node
	container Container
}

// Node is a cell of the weighted interval tree. It owns its two children,
// carries the cumulative length of its subtree (totalLength), a cached
// absolute start position, and the property record for its own span.
//
// The length of the node's own span is derived, never stored:
// Length() = totalLength - left.totalLength - right.totalLength.
// In-order traversal yields spans left-to-right covering the whole sequence
// with no gaps or overlaps.
type Node struct {
	left  *Node
	right *Node
	up    parentRef

	// totalLength is the length of this node's own span plus both subtrees.
	totalLength Offset

	// position caches the absolute start offset of this node's own span.
	// It is guaranteed fresh only on a node just returned by Find, Next,
	// Prev, or Update, or just used as a split pivot. Rotations move
	// shape, not spans, so they leave every cache as valid as it was.
	// Ordering always derives from subtree weights, never from this field.
	position Offset

	// Flag cache derived from well-known properties. Every span the tree
	// creates starts visible; an invisible property clears the flag.
	writeProtect bool
	visible      bool
	frontSticky  bool
	rearSticky   bool

	// plist is the property record; nil means the default (empty) state.
	plist PropertySet
}

// TotalLength returns the weight of the subtree rooted at n: the length of
// n's own span plus both children's subtrees.
func (n *Node) TotalLength() Offset { return n.totalLength }

// Length returns the size of the node's own span, excluding children.
func (n *Node) Length() Offset {
	return n.totalLength - n.LeftTotalLength() - n.RightTotalLength()
}

// LeftTotalLength returns the left child's subtree weight, or 0.
func (n *Node) LeftTotalLength() Offset {
	if n.left == nil {
		return 0
	}
	return n.left.totalLength
}

// RightTotalLength returns the right child's subtree weight, or 0.
func (n *Node) RightTotalLength() Offset {
	if n.right == nil {
		return 0
	}
	return n.right.totalLength
}

// Position returns the cached absolute start offset of the node's own span.
// See the position cache contract on Node.
func (n *Node) Position() Offset { return n.position }

// SetPosition overwrites the position cache. Callers that have computed a
// node's absolute position through other means may refresh the cache.
func (n *Node) SetPosition(pos Offset) { n.position = pos }

// HasLeft reports whether the node has a left child.
func (n *Node) HasLeft() bool { return n.left != nil }

// HasRight reports whether the node has a right child.
func (n *Node) HasRight() bool { return n.right != nil }

// HasChildren reports whether the node has any child.
func (n *Node) HasChildren() bool { return n.left != nil || n.right != nil }

// HasBothChildren reports whether the node has both children.
func (n *Node) HasBothChildren() bool { return n.left != nil && n.right != nil }

// HasParent reports whether the node has a parent node. False for a root
// node attached to a Container and for a detached node.
func (n *Node) HasParent() bool { return n.up.node != nil }

// IsOnly reports whether the node is the only one in its tree.
func (n *Node) IsOnly() bool { return !n.HasParent() && !n.HasChildren() }

// IsLeftChild reports whether the node is the left child of its parent.
func (n *Node) IsLeftChild() bool {
	return n.up.node != nil && n.up.node.left == n
}

// IsRightChild reports whether the node is the right child of its parent.
func (n *Node) IsRightChild() bool {
	return n.up.node != nil && n.up.node.right == n
}

// IsDefault reports whether the node carries no properties.
func (n *Node) IsDefault() bool {
	return n == nil || n.plist == nil || n.plist.IsEmpty()
}

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.right }

// Parent returns the parent node, or nil if the node is a root or detached.
func (n *Node) Parent() *Node { return n.up.node }

// Object returns the owning Container if this node is a tree root.
func (n *Node) Object() Container { return n.up.container }

// setParent points the back-reference at a parent node.
func (n *Node) setParent(p *Node) {
	n.up.node = p
	n.up.container = nil
}

// setObject points the back-reference at the owning Container.
func (n *Node) setObject(c Container) {
	n.up.node = nil
	n.up.container = c
}

// copyParentTo makes dst's back-reference whatever n's is, node or container.
func (n *Node) copyParentTo(dst *Node) {
	dst.up = n.up
}

// SetLeft installs child as the left subtree and points its back-reference
// at n. A nil child clears the slot.
func (n *Node) SetLeft(child *Node) {
	n.left = child
	if child != nil {
		child.setParent(n)
	}
}

// SetRight installs child as the right subtree and points its back-reference
// at n. A nil child clears the slot.
func (n *Node) SetRight(child *Node) {
	n.right = child
	if child != nil {
		child.setParent(n)
	}
}

// TakeLeft detaches and returns the left child. The detached node's parent
// tag is left unset.
func (n *Node) TakeLeft() *Node {
	child := n.left
	n.left = nil
	if child != nil {
		child.up = parentRef{}
	}
	return child
}

// TakeRight detaches and returns the right child. The detached node's parent
// tag is left unset.
func (n *Node) TakeRight() *Node {
	child := n.right
	n.right = nil
	if child != nil {
		child.up = parentRef{}
	}
	return child
}

// Flags returns the four boolean span properties.
func (n *Node) Flags() (writeProtect, visible, frontSticky, rearSticky bool) {
	return n.writeProtect, n.visible, n.frontSticky, n.rearSticky
}

// SetFlags sets the four boolean span properties.
func (n *Node) SetFlags(writeProtect, visible, frontSticky, rearSticky bool) {
	n.writeProtect = writeProtect
	n.visible = visible
	n.frontSticky = frontSticky
	n.rearSticky = rearSticky
}

// WriteProtect reports the write-protect flag.
func (n *Node) WriteProtect() bool { return n.writeProtect }

// Visible reports the visible flag.
func (n *Node) Visible() bool { return n.visible }

// FrontSticky reports the front-sticky flag.
func (n *Node) FrontSticky() bool { return n.frontSticky }

// RearSticky reports the rear-sticky flag.
func (n *Node) RearSticky() bool { return n.rearSticky }

// Properties returns the node's property record, which may be nil.
func (n *Node) Properties() PropertySet { return n.plist }

// SetProperties replaces the node's property record.
func (n *Node) SetProperties(p PropertySet) { n.plist = p }

// CopyProperties deep-copies src's flags and property record onto n.
// A no-op when both sides are default.
func (n *Node) CopyProperties(src *Node) {
	if src.IsDefault() && n.IsDefault() {
		return
	}
	n.writeProtect = src.writeProtect
	n.visible = src.visible
	n.frontSticky = src.frontSticky
	n.rearSticky = src.rearSticky
	if src.plist != nil {
		n.plist = src.plist.Copy()
	} else {
		n.plist = nil
	}
}

// GrowSpan changes the length of n's own span by amount (which may be
// negative), updating the weight of n and of every ancestor. The span must
// not shrink below zero; a span that reaches exactly zero must be removed
// with Delete before the next public operation.
func (n *Node) GrowSpan(amount Offset) {
	if n.Length()+amount < 0 {
		violated("grow span %d by %d", n.Length(), amount)
	}
	for cur := n; cur != nil; cur = cur.up.node {
		cur.totalLength += amount
	}
}

// Reset clears children and restores the default, zero-length, empty-property
// state, visible like any fresh span. Used when recycling a node.
func (n *Node) Reset() {
	n.left = nil
	n.right = nil
	n.up = parentRef{}
	n.totalLength = 0
	n.position = 0
	n.writeProtect = false
	n.visible = true
	n.frontSticky = false
	n.rearSticky = false
	n.plist = nil
}
