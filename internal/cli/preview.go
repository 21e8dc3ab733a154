package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

// Terminal cells are roughly twice as tall as wide.
const cellAspect = 2.0

const (
	zoomStep      = 1.25
	defaultCols   = 100
	defaultRows   = 40
	previewFooter = 3
)

var previewPairStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// PreviewModel - interactive layout view
// =============================================================================

// PreviewModel is the bubbletea model of the preview command. It projects
// the layout onto the terminal grid; arrow keys pan, +/- zoom.
type PreviewModel struct {
	Title  string
	Points []layout.Point
	Edges  []layout.Edge
	Box    layout.BoundingBox
	Seq    string
	Colors []coloring.Color

	// Zoom is drawing units per terminal column.
	Zoom float64
	// Center is the drawing point shown in the middle of the screen.
	Center    layout.Point
	Width     int
	Height    int
	ShowPairs bool
}

// NewPreviewModel creates a preview of a prepared drawing.
func NewPreviewModel(title string, result *pipeline.Result, seq string) PreviewModel {
	m := PreviewModel{
		Title:     title,
		Points:    result.Layout.Points,
		Edges:     result.Layout.Edges,
		Box:       result.Layout.Box,
		Seq:       seq,
		Colors:    result.Colors,
		Width:     defaultCols,
		Height:    defaultRows,
		ShowPairs: true,
	}
	m.fit()
	return m
}

// fit zooms so the whole drawing is visible and centres it.
func (m *PreviewModel) fit() {
	cols := float64(max(m.Width-2, 1))
	rows := float64(max(m.Height-previewFooter-1, 1))
	m.Zoom = math.Max(m.Box.Width()/cols, m.Box.Height()/(rows*cellAspect))
	if !(m.Zoom > 0) {
		m.Zoom = 1
	}
	m.Center = m.Box.Center()
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		panX := m.Zoom * float64(m.Width) / 4
		panY := m.Zoom * cellAspect * float64(m.Height) / 4
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.Center.X -= panX
		case "right", "l":
			m.Center.X += panX
		case "up", "k":
			m.Center.Y += panY
		case "down", "j":
			m.Center.Y -= panY
		case "+", "=":
			m.Zoom /= zoomStep
		case "-", "_":
			m.Zoom *= zoomStep
		case "0":
			m.fit()
		case "p":
			m.ShowPairs = !m.ShowPairs
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.fit()
	}
	return m, nil
}

// project maps a drawing point to a grid cell. y grows upwards in the
// drawing and downwards on screen.
func (m PreviewModel) project(p layout.Point, cols, rows int) (col, row int) {
	col = int(math.Round((p.X-m.Center.X)/m.Zoom + float64(cols)/2))
	row = int(math.Round((m.Center.Y-p.Y)/(m.Zoom*cellAspect) + float64(rows)/2))
	return col, row
}

func (m PreviewModel) View() string {
	cols := max(m.Width, 1)
	rows := max(m.Height-previewFooter, 1)

	// -1 empty, -2 pair line, otherwise a residue index.
	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
		for c := range grid[r] {
			grid[r][c] = -1
		}
	}
	inside := func(c, r int) bool { return c >= 0 && c < cols && r >= 0 && r < rows }

	if m.ShowPairs {
		for _, e := range m.Edges {
			if e.From >= len(m.Points) || e.To >= len(m.Points) {
				continue
			}
			c0, r0 := m.project(m.Points[e.From], cols, rows)
			c1, r1 := m.project(m.Points[e.To], cols, rows)
			steps := max(abs(c1-c0), abs(r1-r0))
			for s := 1; s < steps; s++ {
				t := float64(s) / float64(steps)
				c := c0 + int(math.Round(t*float64(c1-c0)))
				r := r0 + int(math.Round(t*float64(r1-r0)))
				if inside(c, r) {
					grid[r][c] = -2
				}
			}
		}
	}
	for i, p := range m.Points {
		if c, r := m.project(p, cols, rows); inside(c, r) {
			grid[r][c] = i
		}
	}

	var b strings.Builder
	for _, line := range grid {
		for _, v := range line {
			switch {
			case v == -1:
				b.WriteByte(' ')
			case v == -2:
				b.WriteString(previewPairStyle.Render("·"))
			default:
				b.WriteString(m.residue(v))
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nt  zoom %.2f", len(m.Points), 1/m.Zoom)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑↓→ pan  +/- zoom  0 fit  p pairs  q quit"))
	return b.String()
}

// residue renders residue i as its letter, or a dot without a sequence.
func (m PreviewModel) residue(i int) string {
	glyph := "●"
	if i < len(m.Seq) {
		glyph = m.Seq[i : i+1]
	}
	if i < len(m.Colors) {
		return tint(m.Colors[i], glyph)
	}
	return StyleValue.Render(glyph)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// =============================================================================
// Command
// =============================================================================

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		in     inputFlags
		colors colorFlags
		static bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [file.vienna]",
		Short: "Preview a layout in the terminal",
		Long: `Show the layout of a structure in the terminal, residues coloured as
they would be drawn. Arrow keys (or hjkl) pan, + and - zoom, 0 fits the
drawing to the window, p toggles pair lines and q quits.

When stdout is not a terminal, or with --static, one frame is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := in.records(args)
			if err != nil {
				return err
			}
			if len(recs) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "preview takes one structure, got %d", len(recs))
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			result, validated, err := c.prepare(cmd.Context(), runner, cmd, cfg, recs[0], opts, &colors)
			if err != nil {
				return err
			}

			model := NewPreviewModel(displayName(recs[0], 0, 1), result, validated.Sequence)
			if static || !isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprintln(stdout, model.View())
				return nil
			}

			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	in.bind(cmd)
	colors.bind(cmd)
	bindSpacing(cmd, &opts.Spacing)
	cmd.Flags().BoolVar(&static, "static", false, "print one frame instead of starting the interactive view")

	return cmd
}
