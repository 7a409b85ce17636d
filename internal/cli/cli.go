// Package cli implements the jdoc command-line interface.
//
// Every command parses its input into a document.Document whose arenas are
// sized from the configuration. Documents report to a Prometheus registry
// owned by the CLI, which is written to --metrics-file after a successful
// command.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jacoelho/jdoc/internal/config"
	"github.com/jacoelho/jdoc/internal/document"
	"github.com/jacoelho/jdoc/internal/fileio"
	"github.com/jacoelho/jdoc/internal/observability"
)

// Version is reported by --version. It is set at build time.
var Version = "dev"

// stdinName selects standard input in place of a file path.
const stdinName = "-"

// CLI holds shared state for all commands.
type CLI struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs

	registry *prometheus.Registry
	metrics  *observability.Prometheus

	cfg   config.Config
	files *fileio.FS
	runID string
}

// New creates a CLI reading files from fs.
func New(stdin io.Reader, stdout, stderr io.Writer, fs afero.Fs) *CLI {
	reg := prometheus.NewRegistry()
	return &CLI{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		fs:       fs,
		registry: reg,
		metrics:  observability.NewPrometheus(reg),
		cfg:      config.Default(),
		files:    fileio.New(fs),
		runID:    uuid.NewString(),
	}
}

// Execute runs the command line args.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configPath  string
		metricsFile string
		verbose     bool
	)

	root := &cobra.Command{
		Use:           "jdoc",
		Short:         "jdoc parses, queries and reformats JSON documents",
		Long:          `jdoc is a CLI for arena-backed JSON documents: formatting, validation, path queries, JSONPath selection and YAML export.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.configure(configPath, metricsFile, verbose); err != nil {
				return err
			}
			level, _ := c.cfg.Level()
			logger := newLogger(c.stderr, level).With("run", c.runID)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.MetricsFile == "" {
				return nil
			}
			if err := observability.WriteTextfile(c.cfg.MetricsFile, c.registry); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("metrics written", "file", c.cfg.MetricsFile)
			return nil
		},
	}

	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jdoc/config.toml)")
	flags.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on success")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.yamlCommand())
	root.AddCommand(c.statsCommand())

	return root
}

// configure loads the config file and applies the global flag overrides.
func (c *CLI) configure(path, metricsFile string, verbose bool) error {
	cfg, err := config.Load(fileio.New(c.fs), path)
	if err != nil {
		return err
	}
	if metricsFile != "" {
		cfg.MetricsFile = metricsFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = cfg
	c.files = fileio.New(c.fs, cfg.FileOptions()...)
	return nil
}

// newDocument creates a document reporting to the CLI metrics and logger.
func (c *CLI) newDocument(ctx context.Context) *document.Document {
	hooks := observability.Multi{c.metrics, logHooks{logger: loggerFromContext(ctx)}}
	opts := append(c.cfg.DocumentOptions(), document.WithHooks(hooks))
	return document.New(opts...)
}

// read loads path, or standard input for "-".
func (c *CLI) read(path string) ([]byte, error) {
	if path == stdinName {
		return c.files.ReadAll(c.stdin)
	}
	return c.files.ReadFile(path)
}

// parse reads path into d and returns the root, or the parse error.
func (c *CLI) parse(d *document.Document, path string) (*document.Value, error) {
	data, err := c.read(path)
	if err != nil {
		return nil, err
	}
	root := d.Parse(data)
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// indent returns the --indent flag when set, otherwise the configured value.
func (c *CLI) indent(cmd *cobra.Command, flag int) (int, error) {
	if !cmd.Flags().Changed("indent") {
		return c.cfg.Indent, nil
	}
	if flag < 0 || flag > config.MaxIndent {
		return 0, fmt.Errorf("%w, got: %d", config.ErrInvalidIndent, flag)
	}
	return flag, nil
}

func (c *CLI) writeLine(b []byte) error {
	b = append(b, '\n')
	_, err := c.stdout.Write(b)
	return err
}
