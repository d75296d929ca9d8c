// Package bstree implements a generic ordered key-payload container
// backed by an unbalanced binary search tree. It supports insertion,
// exact-key lookup, deletion, and in-order, pre-order, and post-order
// traversal, all driven by a caller-supplied comparator.
//
// The tree performs no rebalancing: shape follows insertion order and
// worst-case operations are O(n). Duplicate keys are allowed and
// always descend into the right subtree, so equal keys keep their
// insertion order under in-order traversal.
//
// The container is single-threaded. Callers that need concurrent
// access must serialize it themselves, typically with one exclusive
// lock around the whole tree (see the service package).
package bstree
