package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jdoc/internal/document"
	"github.com/jacoelho/jdoc/internal/ratelimit"
)

// ErrInvalidDocuments is returned by check when any file fails to parse.
var ErrInvalidDocuments = errors.New("invalid documents")

func (c *CLI) checkCommand() *cobra.Command {
	var rateLimit float64

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate JSON documents",
		Long: `Parse every file and report the ones that fail. One document is reused
for all files, so arena blocks are allocated once for the whole batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rate-limit") {
				rateLimit = c.cfg.RateLimit
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			d := c.newDocument(ctx)
			limiter := ratelimit.New(rateLimit)
			logger.Debug("checking", "files", len(args), "rate", limiter.Limit())

			failed := 0
			for path, err := range ratelimit.Paced(ctx, limiter, slices.Values(args)) {
				if err != nil {
					return err
				}

				root := d.ParseFile(c.files, path)
				if err := root.Err(); err != nil {
					failed++
					fields := []any{"file", path, "err", root.ErrorMessage()}
					if errors.Is(err, document.ErrFile) {
						if _, cause := c.files.ReadFile(path); cause != nil {
							fields = append(fields, "cause", cause)
						}
					}
					logger.Error("invalid document", fields...)
					continue
				}
				logger.Info("valid document", "file", path, "kind", root.Kind())
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalidDocuments, failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "files per second (0 for unlimited)")
	return cmd
}
