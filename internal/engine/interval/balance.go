package interval

// balance runs the single-node weight-balance fixpoint loop: while a single
// rotation at the subtree root would strictly reduce the absolute difference
// between the two subtree weights, rotate and re-balance the subtree that
// moved into the rotated-away position. Returns the (possibly new) subtree
// root; the rotations re-point the parent's child slot themselves, so only a
// root-position change needs reporting to the Container afterwards.
// Terminates at local optimality; this is weight balance, not a
// height-balance guarantee. Assumes both subtrees already satisfy their own
// fixpoint.
func balance(n *Node) *Node {
	if n.Length() <= 0 || n.totalLength < n.Length() {
		violated("balance: length %d, total %d", n.Length(), n.totalLength)
	}

	for {
		oldDiff := n.LeftTotalLength() - n.RightTotalLength()

		switch {
		case oldDiff > 0:
			// The left side is heavier, so the left child exists.
			// Simulate the diff a right rotation would produce.
			left := n.left
			newDiff := n.totalLength - left.totalLength +
				left.RightTotalLength() - left.LeftTotalLength()
			if abs(newDiff) >= oldDiff {
				return n
			}
			n = rotateRight(n)
			balance(n.right)

		case oldDiff < 0:
			// Mirror for a heavier right side.
			right := n.right
			newDiff := n.totalLength - right.totalLength +
				right.LeftTotalLength() - right.RightTotalLength()
			if abs(newDiff) >= -oldDiff {
				return n
			}
			n = rotateLeft(n)
			balance(n.left)

		default:
			return n
		}
	}
}

// Balance rebalances the whole subtree bottom-up: both children first, so
// each subtree satisfies its own fixpoint before the parent's pass, then n
// itself. Returns the subtree's new root; a root attached to a Container is
// re-attached so external references track it.
func (n *Node) Balance() *Node {
	if n.left != nil {
		n.left.Balance()
	}
	if n.right != nil {
		n.right.Balance()
	}
	root := balance(n)
	if c := root.up.container; c != nil {
		c.AttachRoot(root)
	}
	return root
}

// BalancePossibleRoot rebalances n only when it is a true root attached to a
// Container, re-attaching whichever node ends up in the root position.
// Returns that root (n itself when detached). Rebalancing elsewhere in the
// tree is the surgery sites' business.
func (n *Node) BalancePossibleRoot() *Node {
	c := n.up.container
	if c == nil {
		return n
	}
	root := balance(n)
	c.AttachRoot(root)
	return root
}

func abs(v Offset) Offset {
	if v < 0 {
		return -v
	}
	return v
}
