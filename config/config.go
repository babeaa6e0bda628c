package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jose-ambrosioo/library-management-system/arena"
	"github.com/jose-ambrosioo/library-management-system/errs"
	"github.com/pingcap/log"
)

const (
	defaultLogLevel    = "warn"
	defaultLogFormat   = "text"
	defaultPrompt      = "library> "
	defaultHistoryFile = "/tmp/library-catalog.history"
)

// Config is the configuration of the catalog program.
type Config struct {
	Arena ArenaConfig `toml:"arena" json:"arena"`
	Log   log.Config  `toml:"log" json:"log"`
	REPL  REPLConfig  `toml:"repl" json:"repl"`
	Seed  SeedConfig  `toml:"seed" json:"seed"`
}

// ArenaConfig sizes the node arena behind the catalog tree.
type ArenaConfig struct {
	// Slots reserved per chunk.
	ChunkSize int `toml:"chunk-size" json:"chunk-size"`
	// Upper bound on reserved chunks, 0 means unbounded.
	MaxChunks int `toml:"max-chunks" json:"max-chunks"`
}

// Options turns the config into arena options.
func (c ArenaConfig) Options() []arena.Option {
	return []arena.Option{arena.WithChunkSize(c.ChunkSize), arena.WithMaxChunks(c.MaxChunks)}
}

// REPLConfig configures the interactive shell.
type REPLConfig struct {
	Prompt      string `toml:"prompt" json:"prompt"`
	HistoryFile string `toml:"history-file" json:"history-file"`
	NoColor     bool   `toml:"no-color" json:"no-color"`
}

// SeedConfig controls generation of fake books at startup.
type SeedConfig struct {
	// Number of fake books to insert, 0 disables seeding.
	Records int `toml:"records" json:"records"`
}

// NewConfig creates a config with defaults applied.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.Adjust()
	return cfg
}

// Parse loads the TOML file at path on top of c and applies defaults to what it left unset.
// Keys that do not map to a field are rejected.
func (c *Config) Parse(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return errs.ErrLoadConfig.Wrap(err).GenWithStackByArgs(path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return errs.ErrUndecodedConfig.FastGenByArgs(strings.Join(keys, ", "))
	}
	c.Adjust()
	return nil
}

// Adjust fills zero values with defaults.
func (c *Config) Adjust() {
	adjustInt(&c.Arena.ChunkSize, arena.DefaultChunkSize)
	if c.Arena.MaxChunks < 0 {
		c.Arena.MaxChunks = 0
	}
	adjustString(&c.Log.Level, defaultLogLevel)
	adjustString(&c.Log.Format, defaultLogFormat)
	adjustString(&c.REPL.Prompt, defaultPrompt)
	adjustString(&c.REPL.HistoryFile, defaultHistoryFile)
	if c.Seed.Records < 0 {
		c.Seed.Records = 0
	}
}

func adjustString(v *string, defValue string) {
	if len(*v) == 0 {
		*v = defValue
	}
}

func adjustInt(v *int, defValue int) {
	if *v <= 0 {
		*v = defValue
	}
}
