// Command bstdemo walks the container through its paces and prints
// the results as it goes.
package main

import (
	"fmt"
	"os"

	"arbor/bstree"
)

func main() {
	fmt.Println("Building tree with increasing keys (degenerates to a right chain)")

	tree := bstree.New[int, string](bstree.Ordered[int]())
	for i, payload := range []string{"cat", "dog", "chicken", "hen"} {
		tree.Insert(i, payload)
		fmt.Printf("inserted key=%d payload=%q, length=%d\n", i, payload, tree.Len())
	}

	fmt.Println("\nIn-order:")
	tree.Fprint(os.Stdout, bstree.InOrder)
	fmt.Println("\nPre-order:")
	tree.Fprint(os.Stdout, bstree.PreOrder)
	fmt.Println("\nPost-order:")
	tree.Fprint(os.Stdout, bstree.PostOrder)

	if v, ok := tree.Search(2); ok {
		fmt.Printf("\nsearch(2) = %q\n", v)
	}
	if _, ok := tree.Search(42); !ok {
		fmt.Println("search(42) = not found")
	}

	fmt.Println("\nBuilding a bushier tree and deleting its root")
	tree2 := bstree.New[int, string](bstree.Ordered[int]())
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tree2.Insert(k, fmt.Sprintf("payload-%d", k))
	}
	if v, ok := tree2.Delete(5); ok {
		fmt.Printf("delete(5) removed %q; the successor key 7 now sits at the root\n", v)
	}
	fmt.Println("In-order after delete:")
	tree2.Fprint(os.Stdout, bstree.InOrder)

	if v, ok := tree2.Delete(1); ok {
		fmt.Printf("delete(1) removed leaf %q, length=%d\n", v, tree2.Len())
	}
	if _, ok := tree2.Delete(1); !ok {
		fmt.Println("delete(1) again: not found, length unchanged")
	}

	tree2.SetTraversalOrder(bstree.PostOrder)
	fmt.Println("\nDefault order switched to post-order; Print now follows it:")
	tree2.Print(os.Stdout)

	fmt.Println("\nDone.")
}
