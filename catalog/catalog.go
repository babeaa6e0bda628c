package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-faker/faker/v4"
	"github.com/jose-ambrosioo/library-management-system/arena"
	"github.com/jose-ambrosioo/library-management-system/bst"
	"github.com/jose-ambrosioo/library-management-system/config"
	"github.com/jose-ambrosioo/library-management-system/errs"
	"github.com/jose-ambrosioo/library-management-system/syncutil"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

/*
Catalog owns the book tree, and through it the node arena, for the lifetime of the program.
Every operation, traversals included, runs under one exclusive lock, so a Catalog may be
shared between goroutines even though the tree itself has no synchronization.
*/
type Catalog struct {
	mu     syncutil.Mutex
	tree   *bst.Tree
	vis    *bst.Visualizer
	closed bool
}

// New creates an empty catalog whose node arena is sized by cfg.
func New(cfg config.ArenaConfig) *Catalog {
	t := bst.NewTree(cfg.Options()...)
	return &Catalog{tree: t, vis: &bst.Visualizer{Tree: t}}
}

// Add inserts b. It returns false without error when a book with the same title exists.
func (c *Catalog) Add(b bst.Book) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inserted, err := c.tree.Insert(b)
	if err != nil {
		log.Warn("add book failed", zap.String("title", b.Title), zap.Error(err))
		return false, err
	}
	if !inserted {
		log.Info("book already in catalog, insert ignored", zap.String("title", b.Title))
		return false, nil
	}
	log.Debug("book added", zap.String("title", b.Title), zap.String("author", b.Author),
		zap.Int("year", b.Year), zap.Int64("isbn", b.ISBN))
	return true, nil
}

// Lookup finds a book by exact title.
func (c *Catalog) Lookup(title string) (bst.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Find(title)
}

// Remove deletes a book by exact title and reports whether it was there.
func (c *Catalog) Remove(title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := c.tree.Delete(title)
	if removed {
		log.Debug("book removed", zap.String("title", title))
	}
	return removed
}

/*
Each calls fn for every book in the given order until fn returns false.
It returns false, without calling fn, when the catalog is empty.
The lock is held for the whole walk: fn must not call back into the catalog.
*/
func (c *Catalog) Each(order bst.Order, fn func(bst.Book) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	seq, ok := c.tree.Walk(order)
	if !ok {
		return false
	}
	for b := range seq {
		if !fn(b) {
			break
		}
	}
	return true
}

// List collects every book in the given order. It returns nil for an empty catalog.
func (c *Catalog) List(order bst.Order) []bst.Book {
	var books []bst.Book
	c.Each(order, func(b bst.Book) bool {
		books = append(books, b)
		return true
	})
	return books
}

// Visualize draws the tree shape.
func (c *Catalog) Visualize() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vis.Visualize()
}

// Stats describes the size of the catalog and of the arena behind it.
type Stats struct {
	Books  int
	Height int
	Arena  arena.Stats
}

// Reserved is the arena's chunk memory in human readable form.
func (s Stats) Reserved() string {
	return units.BytesSize(float64(s.Arena.ReservedBytes()))
}

func (s Stats) String() string {
	return fmt.Sprintf("books: %d, height: %d, chunks: %d x %d slots, live: %d, free: %d, unused: %d, reserved: %s",
		s.Books, s.Height, s.Arena.Chunks, s.Arena.ChunkSize, s.Arena.Live, s.Arena.Free, s.Arena.Unused, s.Reserved())
}

// Stats returns a snapshot of the catalog's size.
func (c *Catalog) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Books: c.tree.Len(), Height: c.tree.Height(), Arena: c.tree.Stats()}
}

// fakeBook makes up a book with go-faker. Titles are two title-cased words.
func fakeBook(r *rand.Rand, caser cases.Caser) bst.Book {
	title := caser.String(faker.Word() + " " + faker.Word())
	author := faker.Name()
	if len(title) > bst.MaxFieldLen {
		title = strings.TrimSpace(title[:bst.MaxFieldLen])
	}
	if len(author) > bst.MaxFieldLen {
		author = author[:bst.MaxFieldLen]
	}
	return bst.Book{
		Title:  title,
		Author: author,
		Year:   1450 + r.Intn(576),
		ISBN:   9780000000000 + r.Int63n(10000000000),
	}
}

/*
Seed inserts n made-up books and returns how many were actually added.
Generated titles that are already in the catalog are skipped, so the result can be lower than n.
An arena error stops seeding and is returned with the count reached so far.
*/
func (c *Catalog) Seed(n int) (int, error) {
	if n <= 0 {
		return 0, errs.ErrSeedCount.FastGenByArgs(n)
	}
	r := rand.New(rand.NewSource(rand.Int63()))
	caser := cases.Title(language.English)
	added := 0
	for i := 0; i < n; i++ {
		inserted, err := c.Add(fakeBook(r, caser))
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}
	log.Info("catalog seeded", zap.Int("requested", n), zap.Int("added", added))
	return added, nil
}

// Close tears the tree down and releases the arena. Calling it again does nothing.
func (c *Catalog) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	books := c.tree.Len()
	c.tree.Teardown()
	c.closed = true
	log.Info("catalog closed", zap.Int("released", books))
}
