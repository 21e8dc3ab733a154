package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/coloring"
)

// gradientSteps is how many cells a continuous palette preview spans.
const gradientSteps = 24

// palettesCommand creates the palettes command.
func (c *CLI) palettesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List colour schemes and palettes",
		Long: `List the colour schemes (--scheme), the categorical palettes they draw
from (--color-palette) and the continuous palettes used for numeric data
(--data-palette). Any continuous palette can be reversed with the suffix _r.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, StyleTitle.Render("Schemes"))
			fmt.Fprintln(stdout, "  "+strings.Join(coloring.SchemeNames(), StyleDim.Render(" · ")))
			printNewline()

			cat, err := paletteTable("Categorical", coloring.CategoricalNames(), categoricalSwatch)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, cat)

			cont, err := paletteTable("Continuous", coloring.ContinuousNames(), continuousSwatch)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, cont)
			return nil
		},
	}
}

func paletteTable(title string, names []string, preview func(string) (string, error)) (string, error) {
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		sw, err := preview(name)
		if err != nil {
			return "", err
		}
		rows = append(rows, []string{name, sw})
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(title, "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return header
			}
			return cell
		}).
		Render(), nil
}

func categoricalSwatch(name string) (string, error) {
	pal, err := coloring.CategoricalPalette(name)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range pal {
		b.WriteString(swatch(c, "  "))
	}
	return b.String(), nil
}

func continuousSwatch(name string) (string, error) {
	pal, err := coloring.ContinuousPalette(name)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := range gradientSteps {
		b.WriteString(swatch(pal.At(float64(i)/(gradientSteps-1)), " "))
	}
	return b.String(), nil
}
