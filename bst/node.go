package bst

import (
	"strings"

	"github.com/jose-ambrosioo/library-management-system/arena"
)

// node lives in an arena slot. left and right each own the subtree below them.
type node struct {
	book  Book
	left  arena.Handle
	right arena.Handle
}

func (n *node) isLeaf() bool {
	return n.left.IsNil() && n.right.IsNil()
}

// compare orders title against the key of n, the same way strings are ordered byte by byte.
func (n *node) compare(title string) int {
	return strings.Compare(title, n.book.Title)
}
