package interval

// deleteNode merges n's children into one subtree and returns it (nil when n
// is a leaf). With both children present, the left subtree is attached as
// the new left child of the right subtree's leftmost node, incrementing
// every total along that walk by the left subtree's weight. The returned
// node's parent tag is the caller's to re-point.
func deleteNode(n *Node) *Node {
	if n.left == nil {
		return n.right
	}
	if n.right == nil {
		return n.left
	}

	migrate := n.left
	amount := migrate.totalLength
	leftmost := n.right
	leftmost.totalLength += amount
	for leftmost.left != nil {
		leftmost = leftmost.left
		leftmost.totalLength += amount
	}
	leftmost.left = migrate
	migrate.setParent(leftmost)
	return n.right
}

// migrateSpanDown grows the in-order neighbor below n by n's own span
// length: the rightmost node of the left subtree when present, otherwise the
// leftmost node of the right subtree. Totals along the walk grow so that n's
// own span reaches zero while n's subtree weight is unchanged.
func (n *Node) migrateSpanDown() {
	amount := n.Length()
	if cur := n.left; cur != nil {
		cur.totalLength += amount
		for cur.right != nil {
			cur = cur.right
			cur.totalLength += amount
		}
		return
	}
	cur := n.right
	cur.totalLength += amount
	for cur.left != nil {
		cur = cur.left
		cur.totalLength += amount
	}
}

// Delete removes n from its tree, merging its children into one subtree
// that takes n's place, and discards n's properties. A non-root node's own
// span is absorbed by its parent (the parent's own length grows by n's
// length; ancestor totals are untouched). A root has no parent: its span
// migrates to the in-order neighbor below before the children merge, and the
// merged subtree is attached as the new root. Deleting a childless root
// detaches the container's tree entirely. A fully detached leaf is a
// structural no-op.
func (n *Node) Delete() {
	if c := n.up.container; c != nil {
		if n.HasChildren() && n.Length() != 0 {
			n.migrateSpanDown()
		}
		replacement := deleteNode(n)
		if replacement != nil {
			replacement.setObject(c)
		}
		c.AttachRoot(replacement)
		return
	}

	parent := n.up.node
	if parent == nil {
		return
	}

	left := n.IsLeftChild()
	replacement := deleteNode(n)
	if left {
		parent.left = replacement
	} else {
		parent.right = replacement
	}
	if replacement != nil {
		replacement.setParent(parent)
	}
}
