package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polypath/pkg/errors"
	"github.com/matzehuels/polypath/pkg/pipeline"
	"github.com/matzehuels/polypath/pkg/polypath"
)

// listCommand creates the list command, which prints the canonical jump
// sequences as a table.
func (c *CLI) listCommand() *cobra.Command {
	var (
		noCache bool
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "list <n>",
		Short: "List the distinct closed paths on an n-gon",
		Long: `List the distinct closed paths on an n-gon in canonical order.

Each row shows the path's label (one base-36 digit per jump), the order in
which vertices are visited and the number of symmetric variants that were
folded into it. Use --plain for one label per line.`,
		Args: sizeArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := errors.ParseSize(args[0])

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			paths, err := runner.Enumerate(cmd.Context(), pipeline.Options{
				Size:    n,
				Workers: c.Config.Workers,
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}

			if plain {
				return writePlainList(cmd.OutOrStdout(), paths)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pathTable(paths).Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one label per line without a table")
	return cmd
}

func writePlainList(w io.Writer, paths []polypath.PolyPath) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p.Label()); err != nil {
			return err
		}
	}
	return nil
}

// pathTable lays paths out as a lipgloss table.
func pathTable(paths []polypath.PolyPath) *table.Table {
	rows := make([][]string, len(paths))
	for i, p := range paths {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			p.Label(),
			visitString(p),
			strconv.Itoa(len(polypath.Orbit(p.Path))),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "Visits", "Variants").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0, 3:
				return base.Foreground(colorDim)
			case 1:
				return base.Foreground(colorCyan)
			}
			return base
		})
}

// visitString formats the visit order as "0 1 3 2".
func visitString(p polypath.PolyPath) string {
	verts := p.Vertices()
	parts := make([]string, len(verts))
	for i, v := range verts {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
