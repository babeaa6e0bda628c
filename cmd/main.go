package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/jose-ambrosioo/library-management-system/catalog"
	"github.com/jose-ambrosioo/library-management-system/cli"
	"github.com/jose-ambrosioo/library-management-system/config"
	"github.com/jose-ambrosioo/library-management-system/logutil"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "library",
		Short: "Keep a catalog of books in memory",
		Long: `library is an interactive catalog of books kept in a binary search tree ordered by title.
Nothing is saved: the catalog lives as long as the session.

Example:
  library
  library --seed 1000 --chunk-size 512
  echo 'add Dune Herbert 1965 9780441013593
inorder' | library`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	flags := rootCmd.Flags()
	flags.StringP("config", "c", "", "path of the TOML config file")
	flags.Int("chunk-size", 0, "slots reserved per node arena chunk")
	flags.Int("max-chunks", 0, "upper bound on node arena chunks, 0 for none")
	flags.Int("seed", 0, "number of made-up books to add on startup")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "log file path, stderr when empty")
	flags.Bool("no-color", false, "disable colored output")
	return rootCmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err := logutil.SetupLogger(&cfg.Log); err != nil {
		return err
	}
	defer logutil.LogPanic()

	// readline needs a terminal; anything else is read line by line
	var in io.Reader
	if !readline.DefaultIsTerminal() {
		in = os.Stdin
	}
	return serve(catalog.New(cfg.Arena), cfg, in, os.Stdout)
}

/*
serve runs one session against c, interactively when in is nil.
Nothing is persisted, but c is always closed and its arena released before serve returns,
whether the session ends with exit, end of input or an error.
*/
func serve(c *catalog.Catalog, cfg *config.Config, in io.Reader, out io.Writer) error {
	defer c.Close()

	if cfg.Seed.Records > 0 {
		added, err := c.Seed(cfg.Seed.Records)
		if err != nil {
			log.Error("seed catalog failed", zap.Int("added", added), zap.Error(err))
			return err
		}
		fmt.Fprintf(out, "Seeded %d books.\n", added)
	}

	shell := cli.NewCli(c, out, cfg.REPL)
	var err error
	if in == nil {
		err = shell.Start()
	} else {
		err = shell.Run(in)
	}
	if err != nil {
		log.Error("catalog session aborted", zap.Error(err))
		return err
	}
	fmt.Fprintln(out, "Exiting the program.")
	return nil
}

// loadConfig reads the config file, if any, and lets changed flags override it.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.NewConfig()
	if path, _ := flags.GetString("config"); path != "" {
		if err := cfg.Parse(path); err != nil {
			return nil, err
		}
	}
	if flags.Changed("chunk-size") {
		cfg.Arena.ChunkSize, _ = flags.GetInt("chunk-size")
	}
	if flags.Changed("max-chunks") {
		cfg.Arena.MaxChunks, _ = flags.GetInt("max-chunks")
	}
	if flags.Changed("seed") {
		cfg.Seed.Records, _ = flags.GetInt("seed")
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if file, _ := flags.GetString("log-file"); file != "" {
		cfg.Log.File.Filename = file
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		cfg.REPL.NoColor = true
	}
	cfg.Adjust()
	if _, err := logutil.ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}
