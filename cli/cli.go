package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/jose-ambrosioo/library-management-system/catalog"
	"github.com/jose-ambrosioo/library-management-system/config"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cli reads commands line by line and runs them against a catalog.
type Cli struct {
	catalog *catalog.Catalog
	out     io.Writer
	cfg     config.REPLConfig

	quit  bool
	fatal error // set when the catalog can no longer grow

	ok     *color.Color
	warn   *color.Color
	bad    *color.Color
	header *color.Color
}

// NewCli creates a shell writing to out. Turning colors off only affects this shell.
func NewCli(c *catalog.Catalog, out io.Writer, cfg config.REPLConfig) *Cli {
	cli := &Cli{
		catalog: c,
		out:     out,
		cfg:     cfg,
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed, color.Bold),
		header:  color.New(color.FgCyan, color.Bold),
	}
	if cfg.NoColor {
		for _, p := range []*color.Color{cli.ok, cli.warn, cli.bad, cli.header} {
			p.DisableColor()
		}
	}
	return cli
}

/*
Start runs the interactive shell with line editing, history and command completion.
It returns when the user exits, on ^C or ^D, or with the error that made the catalog unusable.
*/
func (c *Cli) Start() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            c.cfg.Prompt,
		HistoryFile:       c.cfg.HistoryFile,
		AutoComplete:      readline.NewPrefixCompleter(genCompleter(c.rootCmd())...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "^D",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	c.printMenu()
	for !c.quit {
		line, err := l.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				break
			}
			continue
		}
		c.processInput(line)
	}
	return c.fatal
}

// Run executes the commands read from r, one per line, without prompting.
func (c *Cli) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for !c.quit && scanner.Scan() {
		c.processInput(scanner.Text())
	}
	if c.fatal != nil {
		return c.fatal
	}
	return scanner.Err()
}

func (c *Cli) printMenu() {
	c.header.Fprintln(c.out, "** Library Management System **")
	fmt.Fprint(c.out, `1. Add a Book                          add <title> <author> <year> <isbn>
2. Search for a Book                   search <title>
3. Delete a Book                       delete <title>
4. Display Books (In-order traversal)  inorder
5. Display Books (Pre-order traversal) preorder
6. Display Books (Post-order traversal) postorder
7. Quit                                exit

Also: list [--order in|pre|post], tree, stats, seed <n>, menu
Quote titles and authors that contain spaces: add "The Left Hand of Darkness" "Le Guin" 1969 9780441478125
`)
	c.header.Fprintln(c.out, "*******************************")
}

func (c *Cli) processInput(line string) {
	args, err := shellwords.Parse(line)
	if err != nil {
		c.bad.Fprintf(c.out, "parse command err: %v\n", err)
		return
	}
	if len(args) < 1 {
		return
	}
	rootCmd := c.rootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		c.bad.Fprintf(c.out, "Error: %v\n", err)
	}
}

// fail records an error the catalog cannot recover from and stops the loop.
func (c *Cli) fail(err error) {
	c.fatal = err
	c.quit = true
}

func genCompleter(cmd *cobra.Command) []readline.PrefixCompleterInterface {
	pc := []readline.PrefixCompleterInterface{}
	for _, v := range cmd.Commands() {
		name := strings.Split(v.Use, " ")[0]
		if v.HasFlags() {
			flagsPc := []readline.PrefixCompleterInterface{}
			v.Flags().VisitAll(func(f *pflag.Flag) {
				flagsPc = append(flagsPc, readline.PcItem("--"+f.Name))
			})
			pc = append(pc, readline.PcItem(name, flagsPc...))
		} else {
			pc = append(pc, readline.PcItem(name))
		}
	}
	return pc
}
