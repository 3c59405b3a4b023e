// Package engine groups the core text machinery.
//
// The engine is built from three sub-packages:
//
//   - interval: weighted, self-balancing interval tree mapping spans of a
//     sequence to property records (O(log n) lookup and surgery)
//   - textprop: property semantics over the tree, including range
//     operations, stickiness, and edit adjustment
//   - buffer: thread-safe editable text container keeping its tree in
//     step with every insertion and deletion
//
// Containers come in two kinds. Buffer-like containers are editable and
// address their text from position 1; string-like containers (textprop's
// Text) are immutable and address from 0. The tree treats both uniformly
// through the interval.Container interface.
package engine
