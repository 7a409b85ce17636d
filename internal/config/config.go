// Package config holds the jdoc command line settings. Values come from an
// optional TOML file and are then overridden by flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/jacoelho/jdoc/internal/document"
	"github.com/jacoelho/jdoc/internal/fileio"
)

const (
	// DefaultIndent is the indentation used by fmt when none is configured.
	DefaultIndent = 2

	// MaxIndent bounds the indentation width.
	MaxIndent = 16

	// FileName is the config file looked up under the user config directory.
	FileName = "config.toml"
)

var (
	ErrInvalidIndent    = errors.New("indent must be between 0 and 16")
	ErrInvalidBlockSize = errors.New("block size cannot be negative")
	ErrInvalidMaxBlocks = errors.New("max blocks cannot be negative")
	ErrInvalidRateLimit = errors.New("rate limit cannot be negative")
	ErrInvalidFileSize  = errors.New("max file size cannot be negative")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrUnknownKey       = errors.New("unknown configuration key")
)

// Config represents the complete configuration for the jdoc tool.
type Config struct {
	// Rendering
	Indent int `toml:"indent"`

	// Document arenas
	BlockSize int `toml:"block_size"`
	MaxBlocks int `toml:"max_blocks"` // 0 = unlimited

	// Input
	RateLimit   float64 `toml:"rate_limit"` // Files per second (0 = unlimited)
	MaxFileSize int64   `toml:"max_file_size"`

	// Observability
	MetricsFile string `toml:"metrics_file"`
	LogLevel    string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Indent:      DefaultIndent,
		BlockSize:   document.DefaultBlockSize,
		MaxFileSize: fileio.DefaultMaxSize,
		LogLevel:    "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/jdoc/config.toml, or the platform
// equivalent. It returns "" when no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jdoc", FileName)
}

// Load reads the TOML file at path over the defaults. When path is empty
// the default location is used if a file exists there.
func Load(fs *fileio.FS, path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
		if path == "" || !fs.Exists(path) {
			return cfg, nil
		}
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Indent < 0 || c.Indent > MaxIndent {
		return fmt.Errorf("%w, got: %d", ErrInvalidIndent, c.Indent)
	}
	if c.BlockSize < 0 {
		return fmt.Errorf("%w, got: %d", ErrInvalidBlockSize, c.BlockSize)
	}
	if c.MaxBlocks < 0 {
		return fmt.Errorf("%w, got: %d", ErrInvalidMaxBlocks, c.MaxBlocks)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w, got: %g", ErrInvalidRateLimit, c.RateLimit)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w, got: %d", ErrInvalidFileSize, c.MaxFileSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}

// DocumentOptions returns the arena settings as document options.
func (c *Config) DocumentOptions() []document.Option {
	return []document.Option{
		document.WithBlockSize(c.BlockSize),
		document.WithMaxBlocks(c.MaxBlocks),
	}
}

// FileOptions returns the file size limit as fileio options.
func (c *Config) FileOptions() []fileio.Option {
	return []fileio.Option{fileio.WithMaxSize(c.MaxFileSize)}
}
