package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jdoc/internal/config"
	"github.com/jacoelho/jdoc/internal/query"
)

// ErrNotFound is returned when a query selects nothing.
var ErrNotFound = errors.New("no value at path")

func (c *CLI) getCommand() *cobra.Command {
	var (
		indent int
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "get <file|-> <query>",
		Short: "Print the value at a path such as .users[0].name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := c.indent(cmd, indent)
			if err != nil {
				return err
			}

			d := c.newDocument(cmd.Context())
			root, err := c.parse(d, args[0])
			if err != nil {
				return err
			}

			v := query.Get(root, args[1])
			if v == nil {
				return fmt.Errorf("%w: %q", ErrNotFound, args[1])
			}
			if s, ok := v.Bytes(); ok && raw {
				return c.writeLine(append([]byte(nil), s...))
			}
			return c.writeLine(d.Marshal(v, width))
		},
	}

	cmd.Flags().IntVar(&indent, "indent", config.DefaultIndent, "spaces per nesting level (0 = compact)")
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "print strings without quotes")
	return cmd
}
