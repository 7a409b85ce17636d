package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jdoc/internal/document"
)

func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file|->",
		Short: "Print node counts and arena usage for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := c.newDocument(cmd.Context())
			root, err := c.parse(d, args[0])
			if err != nil {
				return err
			}
			return writeStats(c.stdout, document.Count(root), d.Usage())
		},
	}
}

func writeStats(w io.Writer, s document.Stats, usage []document.ArenaUsage) error {
	rows := []struct {
		name string
		n    int
	}{
		{"objects", s.Objects},
		{"arrays", s.Arrays},
		{"strings", s.Strings},
		{"numbers", s.Numbers},
		{"bools", s.Bools},
		{"nulls", s.Nulls},
		{"depth", s.MaxDepth},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-8s %d\n", r.name, r.n); err != nil {
			return err
		}
	}
	for _, u := range usage {
		if _, err := fmt.Fprintf(w, "arena %-8s blocks=%d used=%d cap=%d\n", u.Name, u.Blocks, u.Used, u.Cap); err != nil {
			return err
		}
	}
	return nil
}
