package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jdoc/internal/config"
)

func (c *CLI) fmtCommand() *cobra.Command {
	var (
		indent int
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [file|-]...",
		Short: "Reformat JSON documents",
		Long: `Parse each document and render it again with the configured indentation.
Without arguments the document is read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := c.indent(cmd, indent)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			d := c.newDocument(ctx)

			for _, path := range args {
				root, err := c.parse(d, path)
				if err != nil {
					return err
				}
				if write && path != stdinName {
					if err := d.ToFile(c.files, path, root, width); err != nil {
						return err
					}
					logger.Info("formatted", "file", path)
					continue
				}
				if err := c.writeLine(d.Marshal(root, width)); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&indent, "indent", config.DefaultIndent, "spaces per nesting level (0 = compact)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to each file")
	return cmd
}
