package bstree

import (
	"fmt"
	"io"
)

// Comparator defines a total preorder over keys. It returns a
// negative value when a sorts before b, a positive value when a sorts
// after b, and 0 when the two are equal. Equal keys are permitted;
// the tree routes them into the right subtree on insert. A comparator
// that is not a consistent total preorder silently corrupts the tree
// shape; the container never detects or reports it.
type Comparator[K any] func(a, b K) int

// Order selects a traversal sequencing.
type Order uint8

const (
	InOrder Order = iota
	PreOrder
	PostOrder
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "inorder"
	case PreOrder:
		return "preorder"
	case PostOrder:
		return "postorder"
	default:
		return "unknown"
	}
}

// Tree is an ordered key-payload container backed by an unbalanced
// binary search tree. Insertion order decides the shape; worst-case
// height is O(n). The zero value is not usable, construct with New.
// Tree is not safe for concurrent use; callers that need concurrency
// must serialize access themselves.
type Tree[K, V any] struct {
	root  *node[K, V]
	cmp   Comparator[K]
	size  int
	order Order
}

// New creates an empty tree ordered by cmp. The default traversal
// order, used by Print, starts as InOrder.
func New[K, V any](cmp Comparator[K]) *Tree[K, V] {
	return &Tree[K, V]{cmp: cmp}
}

func (t *Tree[K, V]) Len() int      { return t.size }
func (t *Tree[K, V]) IsEmpty() bool { return t.root == nil }

// TraversalOrder returns the order Print uses.
func (t *Tree[K, V]) TraversalOrder() Order { return t.order }

// SetTraversalOrder changes the order Print uses.
func (t *Tree[K, V]) SetTraversalOrder(o Order) { t.order = o }

// Insert adds a key/payload pair. It always succeeds, duplicate keys
// included: a key comparing equal to an existing one descends right,
// so among equal keys in-order position follows insertion order.
func (t *Tree[K, V]) Insert(key K, payload V) {
	var parent *node[K, V]
	x := t.root
	goLeft := false
	for x != nil {
		parent = x
		if t.cmp(key, x.key) < 0 {
			x = x.left
			goLeft = true
		} else {
			x = x.right
			goLeft = false
		}
	}
	z := &node[K, V]{key: key, payload: payload, parent: parent}
	switch {
	case parent == nil:
		t.root = z
	case goLeft:
		parent.left = z
	default:
		parent.right = z
	}
	t.size++
}

// Search returns the payload stored under key, or (zero, false) if no
// node matches. With duplicate keys it finds the shallowest match.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	if n := t.lookup(key); n != nil {
		return n.payload, true
	}
	var zero V
	return zero, false
}

func (t *Tree[K, V]) lookup(key K) *node[K, V] {
	n := t.root
	for n != nil {
		switch c := t.cmp(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Delete removes one node matching key and returns its payload, or
// (zero, false) if the key is absent. A node with two children is not
// unlinked itself: its in-order successor (which has no left child)
// is spliced out instead, and the successor's key and payload are
// copied over the matched node's. The returned payload is the one
// carried by the physically unlinked node.
func (t *Tree[K, V]) Delete(key K) (V, bool) {
	var zero V
	matched := t.lookup(key)
	if matched == nil {
		return zero, false
	}

	deleted := matched
	if matched.left != nil && matched.right != nil {
		deleted = matched.successor()
	}

	// deleted has at most one child now.
	replacement := deleted.left
	if replacement == nil {
		replacement = deleted.right
	}
	if replacement != nil {
		replacement.parent = deleted.parent
	}

	switch {
	case deleted.isRoot():
		t.root = replacement
	case deleted.isLeftChild():
		deleted.parent.left = replacement
	default:
		deleted.parent.right = replacement
	}

	removed := deleted.payload
	if deleted != matched {
		matched.key = deleted.key
		matched.payload = deleted.payload
	}
	t.size--
	return removed, true
}

// Min returns the smallest key and its payload.
func (t *Tree[K, V]) Min() (K, V, bool) {
	if t.root == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := t.root.min()
	return n.key, n.payload, true
}

// Max returns the largest key and its payload.
func (t *Tree[K, V]) Max() (K, V, bool) {
	if t.root == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := t.root.max()
	return n.key, n.payload, true
}

// Walk visits every node in the given order, stopping early when fn
// returns false. It never mutates the tree.
func (t *Tree[K, V]) Walk(order Order, fn func(key K, payload V) bool) {
	switch order {
	case PreOrder:
		walkPre(t.root, fn)
	case PostOrder:
		walkPost(t.root, fn)
	default:
		walkIn(t.root, fn)
	}
}

func walkIn[K, V any](n *node[K, V], fn func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return walkIn(n.left, fn) && fn(n.key, n.payload) && walkIn(n.right, fn)
}

func walkPre[K, V any](n *node[K, V], fn func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return fn(n.key, n.payload) && walkPre(n.left, fn) && walkPre(n.right, fn)
}

func walkPost[K, V any](n *node[K, V], fn func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return walkPost(n.left, fn) && walkPost(n.right, fn) && fn(n.key, n.payload)
}

// Fprint writes one record per node to w in the given order:
//
//	Key: <k>
//	Payload: <v>
func (t *Tree[K, V]) Fprint(w io.Writer, order Order) {
	t.Walk(order, func(k K, v V) bool {
		fmt.Fprintf(w, "Key: %v\nPayload: %v\n", k, v)
		return true
	})
}

// Print is Fprint with the tree's default traversal order.
func (t *Tree[K, V]) Print(w io.Writer) {
	t.Fprint(w, t.order)
}
