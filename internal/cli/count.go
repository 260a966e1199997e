package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polypath/pkg/errors"
	"github.com/matzehuels/polypath/pkg/pipeline"
)

// countCommand creates the count command, which prints the number of
// distinct paths. The output is a bare number so it can be used in scripts.
func (c *CLI) countCommand() *cobra.Command {
	var (
		noCache bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "count <n>",
		Short: "Print the number of distinct closed paths on an n-gon",
		Args:  sizeArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := errors.ParseSize(args[0])
			if workers == 0 {
				workers = c.Config.Workers
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			paths, err := runner.Enumerate(cmd.Context(), pipeline.Options{
				Size:    n,
				Workers: workers,
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), len(paths))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "goroutines used for enumeration (default 1)")
	return cmd
}
