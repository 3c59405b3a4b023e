package interval

import "fmt"

// Check verifies the structural invariants of the tree rooted at root:
// every node's own span length is positive, child back-references point at
// their parents, and only the root carries a container tag. Returns the
// first violation found, or nil. Intended for tests and diagnostic tools;
// the surgery paths assert their own local invariants and panic instead.
func Check(root *Node) error {
	if root == nil {
		return nil
	}
	if root.up.container == nil && root.up.node != nil {
		return fmt.Errorf("check: root has a parent node")
	}
	return checkNode(root)
}

func checkNode(n *Node) error {
	if n.totalLength <= 0 {
		return fmt.Errorf("check: node with total length %d", n.totalLength)
	}
	if n.Length() <= 0 {
		return fmt.Errorf("check: node with span length %d", n.Length())
	}
	if n.up.node != nil && n.up.container != nil {
		return fmt.Errorf("check: node with both parent tags set")
	}
	for _, child := range []*Node{n.left, n.right} {
		if child == nil {
			continue
		}
		if child.up.node != n {
			return fmt.Errorf("check: child back-reference does not point at parent")
		}
		if child.up.container != nil {
			return fmt.Errorf("check: non-root node carries a container tag")
		}
		if err := checkNode(child); err != nil {
			return err
		}
	}
	return nil
}
