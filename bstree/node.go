package bstree

// node is a single tree cell. It never performs comparisons; every
// ordering decision lives in Tree. The parent pointer is a structural
// back-reference only, child links are the owning links.
type node[K, V any] struct {
	key     K
	payload V
	parent  *node[K, V]
	left    *node[K, V]
	right   *node[K, V]
}

// min descends via left links until none remain.
func (n *node[K, V]) min() *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// max descends via right links until none remain.
func (n *node[K, V]) max() *node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// successor returns the next node in in-order sequence, or nil if n
// is the maximum of the tree.
func (n *node[K, V]) successor() *node[K, V] {
	if n.right != nil {
		return n.right.min()
	}
	for n.isRightChild() {
		n = n.parent
	}
	return n.parent
}

// predecessor returns the previous node in in-order sequence, or nil
// if n is the minimum of the tree.
func (n *node[K, V]) predecessor() *node[K, V] {
	if n.left != nil {
		return n.left.max()
	}
	for n.isLeftChild() {
		n = n.parent
	}
	return n.parent
}

func (n *node[K, V]) isRoot() bool { return n.parent == nil }

// Child-side checks compare pointer identity, not keys. Duplicate
// keys make key equality ambiguous here.
func (n *node[K, V]) isLeftChild() bool {
	return n.parent != nil && n.parent.left == n
}

func (n *node[K, V]) isRightChild() bool {
	return n.parent != nil && n.parent.right == n
}
