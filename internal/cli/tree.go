package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
	"github.com/matzehuels/rnadraw/pkg/render/nodelink"
)

const formatDOT = "dot"

// treeCommand creates the tree command, a debugging view of the helix/loop
// decomposition the layout is built on.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		in       inputFlags
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [file.vienna]",
		Short: "Print or render the helix/loop segment tree",
		Long: `Print the segment tree of a structure as Graphviz DOT, or render it.

Loops are ellipses labelled with their kind and unpaired count, helices are
boxes labelled with their length. Pseudoknotted pairs are left out; they do
not take part in the tree.

DOT goes to stdout unless --output is given. SVG is rendered in-process with
Graphviz; PDF and PNG additionally need rsvg-convert.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := in.records(args)
			if err != nil {
				return err
			}
			if len(recs) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "tree takes one structure, got %d", len(recs))
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			result, _, err := c.prepare(cmd.Context(), runner, cmd, cfg, recs[0], pipeline.Options{}, nil)
			if err != nil {
				return err
			}
			return writeTree(result.Layout.Tree, format, output, detailed)
		},
	}

	in.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg, pdf, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot, tree.<format> otherwise)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with residue indices")

	return cmd
}

func writeTree(t *layout.Tree, format, output string, detailed bool) error {
	dot := nodelink.ToDOT(t, nodelink.Options{Detailed: detailed})

	var (
		data []byte
		err  error
	)
	switch format {
	case formatDOT:
		if output == "" {
			fmt.Fprint(stdout, dot)
			return nil
		}
		data = []byte(dot)
	case pipeline.FormatSVG:
		data, err = nodelink.RenderSVG(dot)
	case pipeline.FormatPDF:
		data, err = nodelink.RenderPDF(dot)
	case pipeline.FormatPNG:
		data, err = nodelink.RenderPNG(dot, 2.0)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid tree format %q (must be one of: dot, svg, pdf, png)", format)
	}
	if err != nil {
		return fmt.Errorf("render tree: %w", err)
	}

	if output == "" {
		output = "tree." + format
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered segment tree")
	printFile(output)
	if format == formatDOT {
		printNextStep("Render", "dot -Tsvg "+output)
	}
	return nil
}
