package interval

import "iter"

// Container is the external owner of a whole interval tree: a buffer-like or
// string-like sequence. The tree consumes this contract, it does not
// implement it.
type Container interface {
	// BeginOffset is the position of the first unit: 1 for buffer-like
	// containers, 0 for string-like ones.
	BeginOffset() Offset

	// Length is the current total sequence length.
	Length() Offset

	// AttachRoot installs node as the container's tree root. Called by
	// CreateRoot and by BalancePossibleRoot after a root-changing
	// rebalance.
	AttachRoot(node *Node)

	// Root returns the current tree root, or nil.
	Root() *Node
}

// CreateRoot creates the root node for c's interval tree, sized to the
// container's current length, attaches it, and returns it. The container
// must not be empty: a node's own span length is always positive.
func CreateRoot(c Container) *Node {
	n := &Node{totalLength: c.Length(), visible: true}
	if n.totalLength <= 0 {
		violated("create root: container length %d", n.totalLength)
	}
	n.position = c.BeginOffset()
	n.setObject(c)
	c.AttachRoot(n)
	return n
}

// Traverse visits every node of the subtree depth-first from left to right,
// refreshing each node's position cache before the visit. position is the
// absolute start offset of the subtree's leftmost span. The visit function
// returns false to stop early.
func (n *Node) Traverse(position Offset, visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !n.left.Traverse(position, visit) {
		return false
	}
	position += n.LeftTotalLength()
	n.position = position
	if !visit(n) {
		return false
	}
	return n.right.Traverse(position+n.Length(), visit)
}

// TraverseUnordered visits every node of the subtree in no guaranteed order
// and without touching position caches.
func (n *Node) TraverseUnordered(visit func(*Node)) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(cur)
		if cur.right != nil {
			stack = append(stack, cur.right)
		}
		if cur.left != nil {
			stack = append(stack, cur.left)
		}
	}
}

// All returns an in-order iterator over the subtree's nodes, refreshing
// position caches like Traverse. position is the absolute start offset of
// the subtree's leftmost span.
func (n *Node) All(position Offset) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.Traverse(position, yield)
	}
}

// CountNodes returns the number of nodes in the subtree.
func (n *Node) CountNodes() int {
	count := 0
	n.TraverseUnordered(func(*Node) { count++ })
	return count
}
