package cli

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polypath/pkg/errors"
	"github.com/matzehuels/polypath/pkg/pipeline"
	"github.com/matzehuels/polypath/pkg/polypath"
	"github.com/matzehuels/polypath/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	previewStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// Preview canvas size in terminal cells. Cells are about twice as tall as
// they are wide, so the horizontal radius is doubled.
const (
	previewWidth  = 25
	previewHeight = 13
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse <n>",
		Short: "Page through the closed paths on an n-gon interactively",
		Long: `Page through the distinct closed paths on an n-gon interactively.

Press enter to save the highlighted path as a stand-alone SVG.`,
		Args: sizeArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := errors.ParseSize(args[0])
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			paths, err := runner.Enumerate(ctx, pipeline.Options{
				Size:    n,
				Workers: c.Config.Workers,
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewPathListModel(paths), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}

			m, ok := final.(PathListModel)
			if !ok || m.Selected == nil {
				return nil
			}
			return c.saveShape(*m.Selected)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// saveShape writes a single path as path{n}-{label}.svg in the output directory.
func (c *CLI) saveShape(p polypath.PolyPath) error {
	style, err := render.StyleByName(c.Config.Style)
	if err != nil {
		return err
	}
	if dir := c.Config.OutputDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	path := filepath.Join(c.Config.OutputDir, fmt.Sprintf("path%d-%s.svg", p.Size, p.Label()))
	svg := render.ShapeSVG(p, render.WithScale(c.Config.Scale), render.WithStyle(style))
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Saved %s", p)
	printFile(path)
	return nil
}

// =============================================================================
// PathListModel - Interactive path browser
// =============================================================================

// PathListModel is the bubbletea model for browsing paths.
type PathListModel struct {
	Paths    []polypath.PolyPath
	Cursor   int
	Selected *polypath.PolyPath
	Height   int
	Offset   int
}

// NewPathListModel creates a new path list model.
func NewPathListModel(paths []polypath.PolyPath) PathListModel {
	return PathListModel{
		Paths:  paths,
		Height: 15,
	}
}

func (m PathListModel) Init() tea.Cmd {
	return nil
}

func (m PathListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Paths))
		case "end", "G":
			m.move(len(m.Paths))
		case "enter":
			if len(m.Paths) == 0 {
				return m, nil
			}
			p := m.Paths[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.clampOffset()
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, and scrolls the window.
func (m *PathListModel) move(delta int) {
	if len(m.Paths) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Paths)-1)
	m.clampOffset()
}

func (m *PathListModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m PathListModel) View() string {
	var b strings.Builder

	if len(m.Paths) == 0 {
		return listDimStyle.Render("No paths") + "\n"
	}

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%d-gon · %d paths", m.Paths[0].Size, len(m.Paths))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ save svg  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Paths))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		label := m.Paths[i].Label()
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + label))
		} else {
			list.WriteString(listNormalStyle.Render("  " + label))
		}
		list.WriteString("\n")
	}

	cur := m.Paths[m.Cursor]
	detail := fmt.Sprintf("%s\n%s\n%s",
		preview(cur),
		listDimStyle.Render("visits   ")+StyleHighlight.Render(visitString(cur)),
		listDimStyle.Render("variants ")+StyleHighlight.Render(fmt.Sprint(len(polypath.Orbit(cur.Path)))),
	)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", previewStyle.Render(detail)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Paths))))

	return b.String()
}

// preview draws p as text: edges as dots and vertices as their base-36 index.
func preview(p polypath.PolyPath) string {
	grid := make([][]rune, previewHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", previewWidth))
	}

	cx, cy := previewWidth/2, previewHeight/2
	rx, ry := float64(cx-1), float64(cy-1)
	pts := make([][2]int, p.Size)
	for k := range p.Size {
		a := 2 * math.Pi * float64(k) / float64(p.Size)
		pts[k] = [2]int{
			cx + int(math.Round(math.Sin(a)*rx)),
			cy - int(math.Round(math.Cos(a)*ry)),
		}
	}

	verts := p.Vertices()
	for i, v := range verts {
		next := verts[(i+1)%len(verts)]
		drawLine(grid, pts[v], pts[next])
	}
	for k, pt := range pts {
		grid[pt[1]][pt[0]] = rune(strconv.FormatInt(int64(k), 36)[0])
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// drawLine plots a Bresenham line of dots from a to b.
func drawLine(grid [][]rune, a, b [2]int) {
	x0, y0, x1, y1 := a[0], a[1], b[0], b[1]
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		grid[y0][x0] = '·'
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
