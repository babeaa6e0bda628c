package bst

import (
	"fmt"

	"github.com/jose-ambrosioo/library-management-system/arena"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

/*
Tree is an unbalanced binary search tree of books ordered by title.
Nodes are kept in an arena owned by the tree, and links between them are arena handles.
The tree only keeps the handle of its root node.
Operations cost O(height); inserting titles in sorted order degrades the tree to a list.
A Tree is not safe for concurrent use.
*/
type Tree struct {
	nodes *arena.Arena[node]
	root  arena.Handle
	size  int
}

// NewTree creates an empty tree. opts configure the node arena.
func NewTree(opts ...arena.Option) *Tree {
	return &Tree{nodes: arena.New[node](opts...)}
}

// Len returns the number of books in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Stats exposes the node arena's slot accounting.
func (t *Tree) Stats() arena.Stats {
	return t.nodes.Stats()
}

func (t *Tree) String() string {
	return fmt.Sprintf("bst{len: %d, height: %d}", t.size, t.Height())
}

func (t *Tree) node(h arena.Handle) *node {
	return t.nodes.Get(h)
}

// release hands a node's slot back to the arena. A handle the arena rejects means the
// tree's links are corrupt.
func (t *Tree) release(h arena.Handle) {
	if err := t.nodes.Release(h); err != nil {
		log.Panic("release tree node failed", zap.Stringer("handle", h), zap.Error(err))
	}
}

/*
Insert adds b to the tree and reports whether it was added.
If a book with the same title is already present, the tree is left unchanged and Insert
returns false; the existing record is not updated.
The error is non-nil when b fails validation or the arena cannot supply another node.
*/
func (t *Tree) Insert(b Book) (bool, error) {
	if err := b.Validate(); err != nil {
		return false, err
	}
	root, inserted, err := t.insert(t.root, b)
	if err != nil {
		return false, err
	}
	t.root = root
	if inserted {
		t.size++
	}
	return inserted, nil
}

// insert places b in the subtree rooted at h and returns the new root of that subtree.
func (t *Tree) insert(h arena.Handle, b Book) (arena.Handle, bool, error) {
	if h.IsNil() {
		nh, n, err := t.nodes.Acquire()
		if err != nil {
			return h, false, err
		}
		n.book = b
		return nh, true, nil
	}

	n := t.node(h)
	switch cmp := n.compare(b.Title); {
	case cmp < 0:
		left, inserted, err := t.insert(n.left, b)
		if err != nil {
			return h, false, err
		}
		n.left = left
		return h, inserted, nil
	case cmp > 0:
		right, inserted, err := t.insert(n.right, b)
		if err != nil {
			return h, false, err
		}
		n.right = right
		return h, inserted, nil
	default:
		// same title, keep the first record
		return h, false, nil
	}
}

// Find looks a book up by its exact title.
func (t *Tree) Find(title string) (Book, bool) {
	h := t.find(t.root, title)
	if h.IsNil() {
		return Book{}, false
	}
	return t.node(h).book, true
}

func (t *Tree) find(h arena.Handle, title string) arena.Handle {
	if h.IsNil() {
		return h
	}
	n := t.node(h)
	switch cmp := n.compare(title); {
	case cmp < 0:
		return t.find(n.left, title)
	case cmp > 0:
		return t.find(n.right, title)
	default:
		return h
	}
}

// min returns the leftmost node below h, the smallest title in that subtree.
func (t *Tree) min(h arena.Handle) arena.Handle {
	for n := t.node(h); !n.left.IsNil(); n = t.node(h) {
		h = n.left
	}
	return h
}

// Delete removes the book with the given title and reports whether it was present.
func (t *Tree) Delete(title string) bool {
	root, deleted := t.delete(t.root, title)
	t.root = root
	if deleted {
		t.size--
	}
	return deleted
}

/*
delete removes title from the subtree rooted at h and returns the new root of that subtree.
A node with at most one child is replaced by that child (or by nothing) and its slot released.
A node with two children takes over the whole record of its in-order successor, the leftmost
node of its right subtree, and the successor is then deleted from the right subtree. The
successor has no left child, so that second deletion never hits the two-children case again.
*/
func (t *Tree) delete(h arena.Handle, title string) (arena.Handle, bool) {
	if h.IsNil() {
		return h, false
	}

	n := t.node(h)
	var deleted bool
	switch cmp := n.compare(title); {
	case cmp < 0:
		n.left, deleted = t.delete(n.left, title)
	case cmp > 0:
		n.right, deleted = t.delete(n.right, title)
	default:
		if n.left.IsNil() {
			child := n.right
			t.release(h)
			return child, true
		}
		if n.right.IsNil() {
			child := n.left
			t.release(h)
			return child, true
		}
		n.book = t.node(t.min(n.right)).book
		n.right, _ = t.delete(n.right, n.book.Title)
		return h, true
	}
	return h, deleted
}

// Height is the number of nodes on the longest root-to-leaf path. An empty tree has height 0.
func (t *Tree) Height() int {
	return t.height(t.root)
}

func (t *Tree) height(h arena.Handle) int {
	if h.IsNil() {
		return 0
	}
	n := t.node(h)
	if n.isLeaf() {
		return 1
	}
	return 1 + max(t.height(n.left), t.height(n.right))
}

// Teardown releases every node and then the arena's chunks. The tree is empty afterwards and
// handles taken from it before are no longer valid.
func (t *Tree) Teardown() {
	t.teardown(t.root)
	t.nodes.Reset()
	t.root = arena.Nil
	t.size = 0
}

func (t *Tree) teardown(h arena.Handle) {
	if h.IsNil() {
		return
	}
	n := t.node(h)
	t.teardown(n.left)
	t.teardown(n.right)
	t.release(h)
}
