package bst

import (
	"iter"
	"strings"

	"github.com/jose-ambrosioo/library-management-system/arena"
	"github.com/jose-ambrosioo/library-management-system/errs"
)

// Order selects the sequence in which a walk visits the nodes.
type Order int

const (
	// InOrder visits left subtree, node, right subtree: books sorted by title.
	InOrder Order = iota
	// PreOrder visits the node before its subtrees, root first.
	PreOrder
	// PostOrder visits the node after its subtrees, root last.
	PostOrder
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "in-order"
	case PreOrder:
		return "pre-order"
	case PostOrder:
		return "post-order"
	}
	return "unknown"
}

// ParseOrder accepts "in", "pre", "post" and the String forms, case-insensitively.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inorder", "in-order":
		return InOrder, nil
	case "pre", "preorder", "pre-order":
		return PreOrder, nil
	case "post", "postorder", "post-order":
		return PostOrder, nil
	}
	return InOrder, errs.ErrUnknownOrder.FastGenByArgs(s)
}

/*
Walk returns the books of the tree in the given order.
The boolean is false when the tree holds no books at all; that is the only place emptiness
is reported, nil children met during the walk are simply skipped.
The sequence reads the live tree, so the tree must not be modified while it is consumed.
Breaking out of the range loop stops the walk.
*/
func (t *Tree) Walk(order Order) (iter.Seq[Book], bool) {
	if t.root.IsNil() {
		return func(func(Book) bool) {}, false
	}
	root := t.root
	return func(yield func(Book) bool) {
		t.walk(root, order, yield)
	}, true
}

// InOrder is Walk(InOrder).
func (t *Tree) InOrder() (iter.Seq[Book], bool) {
	return t.Walk(InOrder)
}

// PreOrder is Walk(PreOrder).
func (t *Tree) PreOrder() (iter.Seq[Book], bool) {
	return t.Walk(PreOrder)
}

// PostOrder is Walk(PostOrder).
func (t *Tree) PostOrder() (iter.Seq[Book], bool) {
	return t.Walk(PostOrder)
}

// walk returns false once yield asked to stop.
func (t *Tree) walk(h arena.Handle, order Order, yield func(Book) bool) bool {
	if h.IsNil() {
		return true
	}
	n := t.node(h)
	if order == PreOrder && !yield(n.book) {
		return false
	}
	if !t.walk(n.left, order, yield) {
		return false
	}
	if order == InOrder && !yield(n.book) {
		return false
	}
	if !t.walk(n.right, order, yield) {
		return false
	}
	if order == PostOrder && !yield(n.book) {
		return false
	}
	return true
}
