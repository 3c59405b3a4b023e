// Package interval implements the weighted, self-balancing interval tree
// that attaches property records to contiguous spans of a text sequence.
//
// Each node owns one span; in-order traversal covers the whole sequence
// left to right with no gaps or overlaps. A node stores only the cumulative
// length of its subtree (the weight); its own span length is derived by
// subtracting both children's weights. Point location is a weighted binary
// search, O(depth), and the tree keeps itself weight-balanced after every
// structural edit.
//
// Key properties:
//   - O(log n) point location via Find, with cheap nearby relocation via
//     Next, Prev, and Update
//   - Splitting a span at an offset and deleting/merging spans preserve the
//     total length and span ordering
//   - A cached absolute position per node, fresh only on nodes just handed
//     out by the navigation operations
//   - Strictly hierarchical ownership with non-owning parent back-references
//
// The tree is a library for a hosting text-storage engine. The engine
// supplies the Container (the buffer- or string-like sequence that owns the
// tree) and an opaque PropertySet; the tree never inspects property keys.
//
// Basic usage:
//
//	root := interval.CreateRoot(container)
//	n, err := root.Find(pos)      // span owning pos
//	second := n                   // SplitLeft keeps n as the second piece
//	first := n.SplitLeft(3)       // default-property piece in front
//	first.CopyProperties(second)
//
// All mutating operations may touch ancestors arbitrarily far up the tree,
// so a whole tree is a single resource: the owning container serializes
// access. Nothing here is safe for concurrent mutation.
package interval
