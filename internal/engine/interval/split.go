package interval

// SplitLeft divides n's own span at offset (0 < offset < Length) into two
// adjoining nodes. The new node becomes the lexicographically first piece,
// sized offset, and carries the default property state: callers that want
// the original properties on the first piece must assign them explicitly.
// n keeps its address and properties and becomes the second piece. The new
// node absorbs n's former left child, gets one local balance pass, and the
// possible root is rebalanced afterwards. The rebalance may hand the root
// position to another node, but both pieces remain valid handles to their
// spans.
//
// Returns the new first piece with a fresh position cache (n's cache must be
// trusted on entry).
func (n *Node) SplitLeft(offset Offset) *Node {
	if offset <= 0 || offset >= n.Length() {
		violated("split left at %d of span length %d", offset, n.Length())
	}

	piece := &Node{totalLength: offset, position: n.position, visible: true}
	n.position += offset
	piece.setParent(n)

	if n.left == nil {
		n.left = piece
	} else {
		// Insert the new node between n and its left child.
		piece.left = n.left
		piece.left.setParent(piece)
		n.left = piece
		piece.totalLength += piece.LeftTotalLength()
		balance(piece)
	}

	n.BalancePossibleRoot()
	return piece
}

// SplitRight divides n's own span at offset (0 < offset < Length) into two
// adjoining nodes. Mirror of SplitLeft: the new node becomes the second
// piece, sized Length - offset, with default properties, absorbing n's
// former right child; n keeps its address and properties as the first piece.
func (n *Node) SplitRight(offset Offset) *Node {
	if offset <= 0 || offset >= n.Length() {
		violated("split right at %d of span length %d", offset, n.Length())
	}

	piece := &Node{totalLength: n.Length() - offset, position: n.position + offset, visible: true}
	piece.setParent(n)

	if n.right == nil {
		n.right = piece
	} else {
		// Insert the new node between n and its right child.
		piece.right = n.right
		piece.right.setParent(piece)
		n.right = piece
		piece.totalLength += piece.RightTotalLength()
		balance(piece)
	}

	n.BalancePossibleRoot()
	return piece
}
