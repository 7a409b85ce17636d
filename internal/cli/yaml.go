package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jdoc/internal/yaml"
)

func (c *CLI) yamlCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "yaml <file|->",
		Short: "Convert a JSON document to YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := c.newDocument(cmd.Context())
			root, err := c.parse(d, args[0])
			if err != nil {
				return err
			}

			out, err := yaml.Encode(root)
			if err != nil {
				return err
			}
			if _, err := c.stdout.Write(out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}
