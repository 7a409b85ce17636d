package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jdoc/internal/jsonpath"
)

func (c *CLI) selectCommand() *cobra.Command {
	var paths bool

	cmd := &cobra.Command{
		Use:   "select <file|-> <jsonpath>",
		Short: "Print every value matched by an RFC 9535 JSONPath expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := jsonpath.Compile(args[1])
			if err != nil {
				return err
			}

			d := c.newDocument(cmd.Context())
			root, err := c.parse(d, args[0])
			if err != nil {
				return err
			}

			results, err := q.Results(root)
			if err != nil {
				return err
			}
			for r := range results {
				v, err := d.FromInterface(r.Value)
				if err != nil {
					return fmt.Errorf("%s: %w", r.Path, err)
				}
				line := d.Marshal(&v, 0)
				if paths {
					line = append([]byte(r.Path+"\t"), line...)
				}
				if err := c.writeLine(line); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&paths, "paths", "p", false, "prefix each value with its normalized path")
	return cmd
}
