package bst

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/btree"
	"github.com/jose-ambrosioo/library-management-system/arena"
	"github.com/jose-ambrosioo/library-management-system/errs"
	"github.com/stretchr/testify/require"
)

var (
	dune         = Book{Title: "Dune", Author: "Herbert", Year: 1965, ISBN: 9780441013593}
	hyperion     = Book{Title: "Hyperion", Author: "Simmons", Year: 1989, ISBN: 9780553283686}
	annihilation = Book{Title: "Annihilation", Author: "VanderMeer", Year: 2014, ISBN: 9780374104092}
)

func newTree(re *require.Assertions, books ...Book) *Tree {
	t := NewTree(arena.WithChunkSize(8))
	for _, b := range books {
		inserted, err := t.Insert(b)
		re.NoError(err)
		re.True(inserted, "insert %q", b.Title)
	}
	return t
}

func collect(t *Tree, order Order) []Book {
	seq, ok := t.Walk(order)
	if !ok {
		return nil
	}
	var out []Book
	for b := range seq {
		out = append(out, b)
	}
	return out
}

func titles(books []Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

// checkOrdering verifies the search tree property on every node.
func checkOrdering(re *require.Assertions, t *Tree) {
	var check func(h arena.Handle, lo, hi *string)
	check = func(h arena.Handle, lo, hi *string) {
		if h.IsNil() {
			return
		}
		n := t.node(h)
		re.NotNil(n, "dangling handle %s", h)
		if lo != nil {
			re.Greater(n.book.Title, *lo)
		}
		if hi != nil {
			re.Less(n.book.Title, *hi)
		}
		check(n.left, lo, &n.book.Title)
		check(n.right, &n.book.Title, hi)
	}
	check(t.root, nil, nil)
}

func TestInsertAndInOrder(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion, annihilation)
	re.Equal(3, tree.Len())
	re.Equal([]string{"Annihilation", "Dune", "Hyperion"}, titles(collect(tree, InOrder)))
	checkOrdering(re, tree)
}

func TestDeleteScenario(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion, annihilation)

	re.True(tree.Delete("Dune"))
	_, found := tree.Find("Dune")
	re.False(found)
	re.Equal([]string{"Annihilation", "Hyperion"}, titles(collect(tree, InOrder)))
	re.Equal(2, tree.Len())
	checkOrdering(re, tree)
}

func TestDuplicateTitleIsIgnored(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune)

	inserted, err := tree.Insert(Book{Title: "Dune", Author: "Someone Else", Year: 2021, ISBN: 1})
	re.NoError(err)
	re.False(inserted)
	re.Equal(1, tree.Len())
	re.Equal(1, tree.Stats().Live)

	books := collect(tree, InOrder)
	re.Len(books, 1)
	re.Equal(dune, books[0])
}

func TestInsertSearchRoundTrip(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion, annihilation)
	for _, want := range []Book{dune, hyperion, annihilation} {
		got, found := tree.Find(want.Title)
		re.True(found)
		re.Equal(want, got)
	}
	_, found := tree.Find("dune")
	re.False(found, "titles are case-sensitive")
}

func TestFindOnEmptyTree(t *testing.T) {
	re := require.New(t)
	tree := NewTree()
	b, found := tree.Find("Dune")
	re.False(found)
	re.Equal(Book{}, b)
}

func TestDeleteMissingLeavesTreeUnchanged(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion, annihilation)
	pre := collect(tree, PreOrder)
	stats := tree.Stats()

	re.False(tree.Delete("Neuromancer"))
	re.Equal(pre, collect(tree, PreOrder))
	re.Equal(stats, tree.Stats())
	re.Equal(3, tree.Len())

	re.False(NewTree().Delete("Dune"))
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion)
	re.True(tree.Delete("Dune"))
	re.False(tree.Delete("Dune"))
	_, found := tree.Find("Dune")
	re.False(found)
	re.Equal(1, tree.Len())
}

func TestDeleteCases(t *testing.T) {
	//        M
	//      /   \
	//     F     T
	//    / \     \
	//   B   H     W
	//        \
	//         K
	build := func(re *require.Assertions) *Tree {
		tree := NewTree()
		for _, title := range []string{"M", "F", "T", "B", "H", "W", "K"} {
			_, err := tree.Insert(Book{Title: title, Author: "a-" + title})
			re.NoError(err)
		}
		return tree
	}

	testCases := []struct {
		name     string
		title    string
		preOrder []string
	}{
		{"leaf", "B", []string{"M", "F", "H", "K", "T", "W"}},
		{"only right child", "T", []string{"M", "F", "B", "H", "K", "W"}},
		{"only right child inner", "H", []string{"M", "F", "B", "K", "T", "W"}},
		{"two children", "F", []string{"M", "H", "B", "K", "T", "W"}},
		{"root with two children", "M", []string{"T", "F", "B", "H", "K", "W"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			re := require.New(t)
			tree := build(re)
			re.True(tree.Delete(tc.title))
			re.Equal(tc.preOrder, titles(collect(tree, PreOrder)))
			re.Equal(6, tree.Len())
			re.Equal(6, tree.Stats().Live)
			checkOrdering(re, tree)
		})
	}
}

func TestDeleteOnlyLeftChild(t *testing.T) {
	re := require.New(t)
	tree := NewTree()
	for _, title := range []string{"M", "F", "B"} {
		_, err := tree.Insert(Book{Title: title})
		re.NoError(err)
	}
	re.True(tree.Delete("F"))
	re.Equal([]string{"M", "B"}, titles(collect(tree, PreOrder)))
	re.True(tree.Delete("M"))
	re.Equal([]string{"B"}, titles(collect(tree, PreOrder)))
	re.True(tree.Delete("B"))
	_, ok := tree.Walk(InOrder)
	re.False(ok)
}

func TestTwoChildrenDeleteCopiesWholeRecord(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, annihilation, hyperion)

	re.True(tree.Delete("Dune"))
	// Hyperion moved into the root node, with all of its fields
	root := tree.node(tree.root)
	re.Equal(hyperion, root.book)
	got, found := tree.Find("Hyperion")
	re.True(found)
	re.Equal(hyperion, got)
}

func TestCountPreservation(t *testing.T) {
	re := require.New(t)
	r := rand.New(rand.NewSource(42))
	tree := NewTree(arena.WithChunkSize(16))

	const n, k = 300, 120
	var all []string
	for _, i := range r.Perm(n) {
		title := fmt.Sprintf("title-%04d", i)
		all = append(all, title)
		inserted, err := tree.Insert(Book{Title: title, Year: i})
		re.NoError(err)
		re.True(inserted)
	}
	r.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	for _, title := range all[:k] {
		re.True(tree.Delete(title))
	}
	re.Equal(n-k, tree.Len())
	for _, order := range []Order{InOrder, PreOrder, PostOrder} {
		re.Len(collect(tree, order), n-k, order.String())
	}
	checkOrdering(re, tree)
}

func TestSlotReuseAfterDelete(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion, annihilation)
	before := tree.Stats()
	re.Equal(3, before.Live)

	re.True(tree.Delete("Annihilation"))
	st := tree.Stats()
	re.Equal(2, st.Live)
	re.Equal(1, st.Free)

	neuromancer := Book{Title: "Neuromancer", Author: "Gibson", Year: 1984, ISBN: 9780441569595}
	inserted, err := tree.Insert(neuromancer)
	re.NoError(err)
	re.True(inserted)

	st = tree.Stats()
	re.Equal(3, st.Live)
	re.Zero(st.Free, "the freed slot is handed out again")
	re.Equal(before.Unused, st.Unused, "no new slot was bumped")

	for _, want := range []Book{dune, hyperion, neuromancer} {
		got, found := tree.Find(want.Title)
		re.True(found)
		re.Equal(want, got)
	}
}

func TestDegenerateSortedInsert(t *testing.T) {
	re := require.New(t)
	tree := NewTree()
	for i := 0; i < 50; i++ {
		_, err := tree.Insert(Book{Title: fmt.Sprintf("%03d", i)})
		re.NoError(err)
	}
	re.Equal(50, tree.Height())
	_, found := tree.Find("049")
	re.True(found)
}

func TestInsertValidation(t *testing.T) {
	re := require.New(t)
	tree := NewTree()

	_, err := tree.Insert(Book{Author: "Nobody"})
	re.True(errs.ErrEmptyTitle.Equal(err))

	_, err = tree.Insert(Book{Title: strings.Repeat("x", MaxFieldLen+1)})
	re.True(errs.ErrFieldTooLong.Equal(err))

	_, err = tree.Insert(Book{Title: "ok", Author: strings.Repeat("y", MaxFieldLen+1)})
	re.True(errs.ErrFieldTooLong.Equal(err))

	inserted, err := tree.Insert(Book{Title: strings.Repeat("x", MaxFieldLen)})
	re.NoError(err)
	re.True(inserted)
	re.Equal(1, tree.Len())
	re.Equal(1, tree.Stats().Live)
}

func TestInsertExhaustedArena(t *testing.T) {
	re := require.New(t)
	tree := NewTree(arena.WithChunkSize(2), arena.WithMaxChunks(1))
	_, err := tree.Insert(dune)
	re.NoError(err)
	_, err = tree.Insert(hyperion)
	re.NoError(err)

	inserted, err := tree.Insert(annihilation)
	re.Error(err)
	re.True(errs.ErrSlotsExhausted.Equal(err))
	re.False(inserted)
	re.Equal(2, tree.Len())
	re.Equal([]string{"Dune", "Hyperion"}, titles(collect(tree, InOrder)))

	// a duplicate needs no slot and still works
	inserted, err = tree.Insert(dune)
	re.NoError(err)
	re.False(inserted)
}

func TestTeardown(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion, annihilation)
	oldRoot := tree.root

	tree.Teardown()
	re.Zero(tree.Len())
	re.Zero(tree.Height())
	re.Zero(tree.Stats().Chunks)
	re.False(tree.nodes.Valid(oldRoot))
	_, ok := tree.Walk(InOrder)
	re.False(ok)

	// the tree can be filled again
	inserted, err := tree.Insert(dune)
	re.NoError(err)
	re.True(inserted)
	re.Equal(1, tree.Stats().Live)
}

func TestReleaseOfBadHandlePanics(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune)
	re.Panics(func() { tree.release(arena.Nil) })

	// a node of an independent tree with the same shape is never released here
	other := newTree(re, dune)
	re.Panics(func() { tree.release(other.root) })
	re.Equal(1, tree.Stats().Live)
	re.Equal(1, other.Stats().Live)

	h := tree.root
	tree.release(h)
	re.Panics(func() { tree.release(h) })
}

func TestMatchesOrderedSet(t *testing.T) {
	re := require.New(t)
	r := rand.New(rand.NewSource(1))
	tree := NewTree(arena.WithChunkSize(4))
	oracle := btree.NewOrderedG[string](8)

	for i := 0; i < 5000; i++ {
		title := fmt.Sprintf("book-%03d", r.Intn(400))
		switch r.Intn(3) {
		case 0, 1:
			inserted, err := tree.Insert(Book{Title: title})
			re.NoError(err)
			_, existed := oracle.ReplaceOrInsert(title)
			re.Equal(!existed, inserted, "insert %s", title)
		default:
			_, existed := oracle.Delete(title)
			re.Equal(existed, tree.Delete(title), "delete %s", title)
		}
	}

	var want []string
	oracle.Ascend(func(title string) bool {
		want = append(want, title)
		return true
	})
	re.Equal(want, titles(collect(tree, InOrder)))
	re.Equal(oracle.Len(), tree.Len())
	st := tree.Stats()
	re.Equal(oracle.Len(), st.Live)
	re.Equal(st.Capacity(), st.Live+st.Free+st.Unused)
	checkOrdering(re, tree)
}

func TestString(t *testing.T) {
	re := require.New(t)
	tree := newTree(re, dune, hyperion, annihilation)
	re.Equal("bst{len: 3, height: 2}", tree.String())
	re.Equal("Title: Dune, Author: Herbert, Year: 1965, ISBN: 9780441013593", dune.String())
}
