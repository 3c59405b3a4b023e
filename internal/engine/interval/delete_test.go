package interval

import "testing"

func TestDeleteLeaf(t *testing.T) {
	c := buildTree(t, 1, []Offset{5, 3, 2})

	n, err := c.root.Find(6) // second span [6,9)
	if err != nil {
		t.Fatal(err)
	}
	n.Delete()

	if err := Check(c.root); err != nil {
		t.Fatal(err)
	}
	if c.root.TotalLength() != 10 {
		t.Errorf("total = %d, want 10", c.root.TotalLength())
	}
	if got := c.root.CountNodes(); got != 2 {
		t.Errorf("node count = %d, want 2", got)
	}
}

func TestDeleteMergesBothChildren(t *testing.T) {
	// Shape the tree by hand so the deleted node has two children.
	mid := &Node{totalLength: 12} // own span 5
	left := &Node{totalLength: 4}
	right := &Node{totalLength: 3}
	mid.SetLeft(left)
	mid.SetRight(right)
	left.SetProperties(testProps{"id": "first"})
	right.SetProperties(testProps{"id": "last"})

	parent := &Node{totalLength: 20, position: 0}
	parent.SetLeft(mid)

	mid.Delete()

	if err := Check(parent); err != nil {
		t.Fatal(err)
	}
	// The two children merged into one subtree under parent's left slot,
	// and mid's own 5 units were absorbed by parent.
	if parent.Left() != right {
		t.Fatal("right subtree should replace the deleted node")
	}
	if right.TotalLength() != 7 {
		t.Errorf("merged subtree total = %d, want 7", right.TotalLength())
	}
	if right.Left() != left {
		t.Error("left subtree should hang at the merged subtree's leftmost slot")
	}
	if parent.TotalLength() != 20 {
		t.Errorf("parent total = %d, want 20", parent.TotalLength())
	}
	if parent.Length() != 13 {
		t.Errorf("parent span length = %d, want 13 after absorbing the deleted span", parent.Length())
	}
}

func TestDeleteChildlessRootDetachesTree(t *testing.T) {
	c := &testContainer{begin: 1, length: 6}
	root := CreateRoot(c)

	root.Delete()

	if c.root != nil {
		t.Error("container should have no tree after deleting its only node")
	}
}

// A root's own span has no parent to absorb it: deleting such a root moves
// the span onto its in-order neighbor below, and the merged children take
// over as the new tree.
func TestDeleteRootMigratesSpan(t *testing.T) {
	t.Run("into predecessor", func(t *testing.T) {
		c := &testContainer{begin: 1, length: 10}
		root := CreateRoot(c) // own span 6 once the child hangs below
		left := &Node{totalLength: 4}
		left.SetProperties(testProps{"id": "pred"})
		root.SetLeft(left)

		root.Delete()

		if c.root != left {
			t.Fatal("left child should become the root")
		}
		if left.TotalLength() != 10 || left.Length() != 10 {
			t.Errorf("survivor total/length = %d/%d, want 10/10", left.TotalLength(), left.Length())
		}
		if got := left.Properties().(testProps)["id"]; got != "pred" {
			t.Error("survivor lost its properties")
		}
		if err := Check(c.root); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("into successor", func(t *testing.T) {
		c := &testContainer{begin: 1, length: 10}
		root := CreateRoot(c) // own span 6
		right := &Node{totalLength: 4}
		right.SetLeft(&Node{totalLength: 1})
		root.SetRight(right)

		root.Delete()

		if c.root != right {
			t.Fatal("right child should become the root")
		}
		if c.root.TotalLength() != 10 {
			t.Errorf("total = %d, want 10", c.root.TotalLength())
		}
		if err := Check(c.root); err != nil {
			t.Fatal(err)
		}
		// The leftmost span absorbed the deleted root's 6 units.
		_, lengths := spans(c.root)
		want := []Offset{7, 3}
		if len(lengths) != len(want) {
			t.Fatalf("got %d spans %v, want %v", len(lengths), lengths, want)
		}
		for i := range want {
			if lengths[i] != want[i] {
				t.Errorf("span %d length = %d, want %d", i, lengths[i], want[i])
			}
		}
	})
}
