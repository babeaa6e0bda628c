package bst

import (
	"strings"

	"github.com/jose-ambrosioo/library-management-system/arena"
)

const indent = "    "

/*
Visualizer draws a tree on its side: the root sits in the first column, every level is
indented one step further, right subtrees are printed above their parent and left subtrees
below it. Reading the lines top to bottom gives the titles in descending order.
*/
type Visualizer struct {
	Tree *Tree
}

func (v *Visualizer) Visualize() string {
	if v.Tree == nil || v.Tree.root.IsNil() {
		return "(empty)"
	}
	var sb strings.Builder
	v.draw(&sb, v.Tree.root, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (v *Visualizer) draw(sb *strings.Builder, h arena.Handle, depth int) {
	if h.IsNil() {
		return
	}
	n := v.Tree.node(h)
	v.draw(sb, n.right, depth+1)
	sb.WriteString(strings.Repeat(indent, depth))
	sb.WriteString(n.book.Title)
	sb.WriteByte('\n')
	v.draw(sb, n.left, depth+1)
}
