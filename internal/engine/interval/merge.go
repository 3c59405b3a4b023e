package interval

// Merging absorbs one span into a neighbor and removes its node. The
// survivor keeps its own properties; deciding whether two spans are
// mergeable (both default, or property-equal) is the caller's business.
//
// The weight bookkeeping leans on Delete's absorption rule (a deleted
// node's span falls to its parent): totals are shifted so that by the time
// Delete runs, the node's remaining span lands exactly on the neighbor.

// MergeLeft absorbs n's span into its predecessor and removes n from the
// tree. n's position cache must be trusted on entry; the returned survivor
// has a fresh cache. Fatal when n is the first span: nothing can absorb it.
func (n *Node) MergeLeft() *Node {
	absorb := n.Length()
	end := n.position + absorb

	if n.left != nil {
		// The predecessor is below: the rightmost node of the left
		// subtree. Its span and every subtree down that spine grow,
		// which leaves n's own span at zero for Delete.
		pred := n.left
		for pred.right != nil {
			pred.totalLength += absorb
			pred = pred.right
		}
		pred.totalLength += absorb
		n.Delete()
		pred.position = end - pred.Length()
		return pred
	}

	// The predecessor is above: the first ancestor reached from a right
	// child. Subtrees climbed out of on the way lose the span; Delete
	// then drops n's remaining length onto the chain's top, which the
	// predecessor absorbs as its own.
	cur := n
	for cur.HasParent() {
		if cur.IsRightChild() {
			pred := cur.up.node
			n.Delete()
			pred.position = end - pred.Length()
			return pred
		}
		cur = cur.up.node
		cur.totalLength -= absorb
	}
	violated("merge left at the first span")
	return nil
}

// MergeRight absorbs n's span into its successor and removes n from the
// tree. Mirror of MergeLeft. Fatal when n is the last span.
func (n *Node) MergeRight() *Node {
	absorb := n.Length()
	start := n.position

	if n.right != nil {
		succ := n.right
		for succ.left != nil {
			succ.totalLength += absorb
			succ = succ.left
		}
		succ.totalLength += absorb
		n.Delete()
		succ.position = start
		return succ
	}

	cur := n
	for cur.HasParent() {
		if cur.IsLeftChild() {
			succ := cur.up.node
			n.Delete()
			succ.position = start
			return succ
		}
		cur = cur.up.node
		cur.totalLength -= absorb
	}
	violated("merge right at the last span")
	return nil
}
