package bstree

import "golang.org/x/exp/constraints"

// Ordered returns a comparator for any naturally ordered key type.
func Ordered[K constraints.Ordered]() Comparator[K] {
	return func(a, b K) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

// Reverse inverts an existing comparator.
func Reverse[K any](cmp Comparator[K]) Comparator[K] {
	return func(a, b K) int { return cmp(b, a) }
}
