package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

// residueColor is one row of the colors command output.
type residueColor struct {
	Index   int    `json:"index"`
	Residue string `json:"residue,omitempty"`
	Partner int    `json:"partner"`
	Color   string `json:"color"`
}

// colorsCommand creates the colors command, which prints the colour every
// residue would be drawn in.
func (c *CLI) colorsCommand() *cobra.Command {
	var (
		in      inputFlags
		colors  colorFlags
		asJSON  bool
		output  string
		letters bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "colors [file.vienna]",
		Short: "Print the resolved colour of every residue",
		Long: `Resolve the colouring inputs against a structure and print the result.

Colour sources are applied in precedence order: index ranges (--color-str),
numeric data (--data-str/--data-file), the scheme (--scheme), then the
default colour. Residues no source colours are reported as "none".
Partner is -1 for unpaired residues.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := in.records(args)
			if err != nil {
				return err
			}
			if len(recs) != 1 {
				return fmt.Errorf("colors takes one structure, the file has %d (use --name to pick one with draw)", len(recs))
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if letters {
				opts.Style = pipeline.StyleLetters
			}

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			result, validated, err := c.prepare(cmd.Context(), runner, cmd, cfg, recs[0], opts, &colors)
			if err != nil {
				return err
			}
			rows := residueColors(result.Structure, validated.Sequence, result.Colors)
			if asJSON || output != "" {
				return writeJSONOutput(output, "colours", rows)
			}
			fmt.Fprintln(stdout, colorTable(rows, result.Colors))
			return nil
		},
	}

	in.bind(cmd)
	colors.bind(cmd)
	cmd.Flags().BoolVar(&letters, "letters", false, "resolve as for letter drawings")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file")

	return cmd
}

func residueColors(pm structure.PairMap, seq string, colors []coloring.Color) []residueColor {
	rows := make([]residueColor, pm.Len())
	for i := range rows {
		rows[i] = residueColor{Index: i, Partner: pm.Partner(i), Color: "none"}
		if i < len(seq) {
			rows[i].Residue = seq[i : i+1]
		}
		if i < len(colors) {
			rows[i].Color = colors[i].Hex()
		}
	}
	return rows
}

// colorTable renders rows as a lipgloss table with a colour swatch column.
func colorTable(rows []residueColor, colors []coloring.Color) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		partner := "·"
		if r.Partner != structure.Unpaired {
			partner = strconv.Itoa(r.Partner)
		}
		res := r.Residue
		if res == "" {
			res = "·"
		}
		sw := "  "
		if i < len(colors) {
			sw = swatch(colors[i], "  ")
		}
		data[i] = []string{strconv.Itoa(r.Index), res, partner, r.Color, sw}
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "nt", "pair", "colour", "").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return header.Padding(0, 1)
			}
			if col == 4 {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			return cell
		}).
		Render()
}
