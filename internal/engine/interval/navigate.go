package interval

import "fmt"

// Find locates the node whose own span contains position in the tree rooted
// at n. position is container-relative when n is attached to a Container
// (the container's begin offset is subtracted first) and tree-relative
// otherwise. The adjusted position must satisfy 0 <= p <= TotalLength();
// anything else returns ErrPositionOutOfRange. The position at the very end
// of the sequence resolves to the last node.
//
// The tree is rebalanced from the root before searching, since rebalancing
// may reduce the depth the search has to walk. The returned node's position
// cache is fresh; other caches (Next, Prev, Update) build on it.
func (n *Node) Find(position Offset) (*Node, error) {
	relative := position
	if c := n.up.container; c != nil {
		relative -= c.BeginOffset()
	}
	if relative < 0 || relative > n.totalLength {
		return nil, fmt.Errorf("find %d: %w", position, ErrPositionOutOfRange)
	}

	// The rebalance may move another node into the root position; the
	// search descends from whatever ends up there.
	cur := n.BalancePossibleRoot()
	for {
		if relative < cur.LeftTotalLength() {
			cur = cur.left
			continue
		}
		if cur.right != nil && relative >= cur.totalLength-cur.RightTotalLength() {
			relative -= cur.totalLength - cur.RightTotalLength()
			cur = cur.right
			continue
		}
		// position - relative is the left edge of cur's subtree.
		cur.position = position - relative + cur.LeftTotalLength()
		return cur, nil
	}
}

// Next returns the lexicographic successor of n, with its position cache set
// to n.Position() + n.Length(). Returns nil at the last span. n's own cache
// must be trusted (n was just returned by Find, Next, Prev, or Update).
func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	nextPos := n.position + n.Length()

	if n.right != nil {
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		succ.position = nextPos
		return succ
	}

	cur := n
	for cur.HasParent() {
		if cur.IsLeftChild() {
			succ := cur.up.node
			succ.position = nextPos
			return succ
		}
		cur = cur.up.node
	}
	return nil
}

// Prev returns the lexicographic predecessor of n, with its position cache
// set to n.Position() - predecessor.Length(). Returns nil at the first span.
// n's own cache must be trusted.
func (n *Node) Prev() *Node {
	if n == nil {
		return nil
	}

	if n.left != nil {
		pred := n.left
		for pred.right != nil {
			pred = pred.right
		}
		pred.position = n.position - pred.Length()
		return pred
	}

	cur := n
	for cur.HasParent() {
		if cur.IsRightChild() {
			pred := cur.up.node
			pred.position = n.position - pred.Length()
			return pred
		}
		cur = cur.up.node
	}
	return nil
}

// Update relocates from n, whose position cache must be trusted, to the node
// owning position, walking up and down the tree instead of restarting from
// the root. Position caches are recomputed from the trusted cache on every
// step, children on the way down and parents on the way up. Returns
// ErrPositionOutOfRange if the walk runs off either end of the tree.
func (n *Node) Update(position Offset) (*Node, error) {
	cur := n
	for {
		switch {
		case position < cur.position:
			// Move left.
			if cur.left != nil && position >= cur.position-cur.LeftTotalLength() {
				cur.left.position = cur.position - cur.left.totalLength + cur.left.LeftTotalLength()
				cur = cur.left
			} else if cur.HasParent() {
				cur = cur.ascend()
			} else {
				return nil, fmt.Errorf("update %d before start: %w", position, ErrPositionOutOfRange)
			}

		case position >= cur.position+cur.Length():
			// Move right.
			lastPos := cur.position + cur.Length()
			if cur.right != nil && position < lastPos+cur.RightTotalLength() {
				cur.right.position = lastPos + cur.right.LeftTotalLength()
				cur = cur.right
			} else if cur.HasParent() {
				cur = cur.ascend()
			} else {
				return nil, fmt.Errorf("update %d after end: %w", position, ErrPositionOutOfRange)
			}

		default:
			return cur, nil
		}
	}
}

// ascend steps to the parent, refreshing the parent's position cache from
// the child's trusted one. The child's subtree starts at
// position - LeftTotalLength(); a left child's subtree is exactly the
// parent's left subtree, a right child's subtree starts where the parent's
// own span ends.
func (n *Node) ascend() *Node {
	parent := n.up.node
	subtreeStart := n.position - n.LeftTotalLength()
	if n.IsLeftChild() {
		parent.position = subtreeStart + n.totalLength
	} else {
		parent.position = subtreeStart - parent.Length()
	}
	return parent
}
