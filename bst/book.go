package bst

import (
	"fmt"

	"github.com/jose-ambrosioo/library-management-system/errs"
)

// MaxFieldLen is the longest title or author accepted, in bytes.
const MaxFieldLen = 99

/*
Book is the record kept in every tree node.
Title uniquely identifies a book and is the sort key, compared byte-wise.
Year and ISBN are stored as given.
*/
type Book struct {
	Title  string
	Author string
	Year   int
	ISBN   int64
}

// Validate checks the length limits of the text fields.
func (b Book) Validate() error {
	if b.Title == "" {
		return errs.ErrEmptyTitle.FastGenByArgs()
	}
	if len(b.Title) > MaxFieldLen {
		return errs.ErrFieldTooLong.FastGenByArgs("title", len(b.Title), MaxFieldLen)
	}
	if len(b.Author) > MaxFieldLen {
		return errs.ErrFieldTooLong.FastGenByArgs("author", len(b.Author), MaxFieldLen)
	}
	return nil
}

func (b Book) String() string {
	return fmt.Sprintf("Title: %s, Author: %s, Year: %d, ISBN: %d", b.Title, b.Author, b.Year, b.ISBN)
}
