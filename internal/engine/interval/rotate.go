package interval

// Rotations rewire pointers and return the new subtree root, so every node
// keeps its own span, properties, and address throughout. Outside references
// held across a rebalance (a split piece, a found node) stay bound to the
// spans they were handed. The rotation re-points the old root's parent child
// slot itself; a root-position change still has to be reported to the
// Container by the caller (see BalancePossibleRoot).

// rotateLeft rotates the subtree at a to the left, assuming a right child,
// and returns the new subtree root:
//
//	  A               B
//	 / \             / \
//	d   B    =>     A   e
//	   / \         / \
//	  c   e       d   c
//
// a's parent tag is copied onto B and the parent's child slot (if any) is
// re-pointed. Requires positive span lengths before and after; a violation
// panics, it indicates a corrupted tree.
func rotateLeft(a *Node) *Node {
	b := a.right
	if b == nil {
		violated("rotate left without right child")
	}
	oldTotal := a.totalLength
	if oldTotal <= 0 || a.Length() <= 0 || b.Length() <= 0 {
		violated("rotate left: total %d, lengths %d/%d", oldTotal, a.Length(), b.Length())
	}
	c := b.left

	// Any parent of A now points at B.
	if p := a.up.node; p != nil {
		if p.left == a {
			p.left = b
		} else {
			p.right = b
		}
	}
	a.copyParentTo(b)

	b.left = a
	a.setParent(b)

	a.right = c
	if c != nil {
		c.setParent(a)
	}

	// A's subtree lost B's span and B's right subtree.
	a.totalLength -= b.totalLength
	if c != nil {
		a.totalLength += c.totalLength
	}
	b.totalLength = oldTotal

	if a.totalLength <= 0 || a.Length() <= 0 || b.Length() <= 0 {
		violated("rotate left broke lengths: inner total %d, lengths %d/%d",
			a.totalLength, a.Length(), b.Length())
	}
	return b
}

// rotateRight rotates the subtree at a to the right, assuming a left child,
// and returns the new subtree root:
//
//	    A           B
//	   / \         / \
//	  B   e  =>   d   A
//	 / \             / \
//	d   c           c   e
//
// Mirror of rotateLeft.
func rotateRight(a *Node) *Node {
	b := a.left
	if b == nil {
		violated("rotate right without left child")
	}
	oldTotal := a.totalLength
	if oldTotal <= 0 || a.Length() <= 0 || b.Length() <= 0 {
		violated("rotate right: total %d, lengths %d/%d", oldTotal, a.Length(), b.Length())
	}
	c := b.right

	if p := a.up.node; p != nil {
		if p.left == a {
			p.left = b
		} else {
			p.right = b
		}
	}
	a.copyParentTo(b)

	b.right = a
	a.setParent(b)

	a.left = c
	if c != nil {
		c.setParent(a)
	}

	a.totalLength -= b.totalLength
	if c != nil {
		a.totalLength += c.totalLength
	}
	b.totalLength = oldTotal

	if a.totalLength <= 0 || a.Length() <= 0 || b.Length() <= 0 {
		violated("rotate right broke lengths: inner total %d, lengths %d/%d",
			a.totalLength, a.Length(), b.Length())
	}
	return b
}
