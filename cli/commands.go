package cli

import (
	"fmt"
	"strconv"

	"github.com/jose-ambrosioo/library-management-system/bst"
	"github.com/jose-ambrosioo/library-management-system/errs"
	"github.com/spf13/cobra"
)

// rootCmd builds a fresh command tree for one input line.
func (c *Cli) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "library",
		Short:         "Library catalog shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(c.out)
	rootCmd.SetErr(c.out)

	rootCmd.AddCommand(
		c.newAddCommand(),
		c.newSearchCommand(),
		c.newDeleteCommand(),
		c.newTraverseCommand("inorder", "4", bst.InOrder),
		c.newTraverseCommand("preorder", "5", bst.PreOrder),
		c.newTraverseCommand("postorder", "6", bst.PostOrder),
		c.newListCommand(),
		c.newTreeCommand(),
		c.newStatsCommand(),
		c.newSeedCommand(),
		c.newMenuCommand(),
		c.newExitCommand(),
	)
	return rootCmd
}

func (c *Cli) newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add <title> <author> <year> <isbn>",
		Aliases: []string{"1", "set"},
		Short:   "Add a book to the catalog",
		Args:    cobra.ExactArgs(4),
		// titles and years may start with '-'
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[2])
			if err != nil {
				return errs.ErrParseField.FastGenByArgs("year", args[2])
			}
			isbn, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return errs.ErrParseField.FastGenByArgs("ISBN", args[3])
			}
			added, err := c.catalog.Add(bst.Book{Title: args[0], Author: args[1], Year: year, ISBN: isbn})
			if err != nil {
				if errs.ErrSlotsExhausted.Equal(err) {
					c.fail(err)
				}
				return err
			}
			if !added {
				c.warn.Fprintf(c.out, "A book titled %q is already in the catalog.\n", args[0])
				return nil
			}
			c.ok.Fprintln(c.out, "Book added successfully.")
			return nil
		},
	}
}

func (c *Cli) newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "search <title>",
		Aliases:            []string{"2", "get"},
		Short:              "Search for a book by title",
		Args:               cobra.ExactArgs(1),
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			b, found := c.catalog.Lookup(args[0])
			if !found {
				c.warn.Fprintln(c.out, "Book not found.")
				return
			}
			c.ok.Fprintln(c.out, "Book found:")
			fmt.Fprintf(c.out, "Title: %s\nAuthor: %s\nYear: %d\nISBN: %d\n", b.Title, b.Author, b.Year, b.ISBN)
		},
	}
}

func (c *Cli) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "delete <title>",
		Aliases:            []string{"3", "del"},
		Short:              "Delete a book by title",
		Args:               cobra.ExactArgs(1),
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			if !c.catalog.Remove(args[0]) {
				c.warn.Fprintln(c.out, "Book not found.")
				return
			}
			c.ok.Fprintln(c.out, "Book deleted successfully.")
		},
	}
}

func (c *Cli) newTraverseCommand(name, alias string, order bst.Order) *cobra.Command {
	return &cobra.Command{
		Use:     name,
		Aliases: []string{alias},
		Short:   fmt.Sprintf("Display books (%s traversal)", order),
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.printBooks(order)
		},
	}
}

func (c *Cli) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display books in the given traversal order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _ := cmd.Flags().GetString("order")
			order, err := bst.ParseOrder(s)
			if err != nil {
				return err
			}
			c.printBooks(order)
			return nil
		},
	}
	cmd.Flags().StringP("order", "o", "in", "traversal order: in, pre or post")
	return cmd
}

// printBooks lists the catalog, saying once that it is empty when there is nothing to list.
func (c *Cli) printBooks(order bst.Order) {
	c.header.Fprintf(c.out, "Books in the library (%s traversal):\n", order)
	found := c.catalog.Each(order, func(b bst.Book) bool {
		fmt.Fprintln(c.out, b)
		return true
	})
	if !found {
		c.warn.Fprintln(c.out, "No books were found.")
	}
}

func (c *Cli) newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Draw the shape of the catalog tree",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.out, c.catalog.Visualize())
		},
	}
}

func (c *Cli) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog and node arena statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.out, c.catalog.Stats())
		},
	}
}

func (c *Cli) newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <n>",
		Short: "Add n made-up books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errs.ErrParseField.FastGenByArgs("count", args[0])
			}
			added, err := c.catalog.Seed(n)
			if err != nil {
				if errs.ErrSlotsExhausted.Equal(err) {
					c.fail(err)
				}
				return err
			}
			c.ok.Fprintf(c.out, "Seeded %d books.\n", added)
			return nil
		},
	}
}

func (c *Cli) newMenuCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "menu",
		Aliases: []string{"help-menu"},
		Short:   "Print the menu",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.printMenu()
		},
	}
}

func (c *Cli) newExitCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "exit",
		Aliases: []string{"7", "quit"},
		Short:   "Leave the shell",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.quit = true
		},
	}
}
