package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/config"
	rnaio "github.com/matzehuels/rnadraw/pkg/io"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

// layoutDoc is the JSON written by the layout command.
type layoutDoc struct {
	Name      string             `json:"name,omitempty"`
	Structure string             `json:"structure"`
	Sequence  string             `json:"sequence,omitempty"`
	Points    []layout.Point     `json:"points"`
	Box       layout.BoundingBox `json:"bbox"`
	Edges     []layout.Edge      `json:"edges"`
	Spacing   layout.Spacing     `json:"spacing"`
	Size      pipeline.Size      `json:"size"`
}

// layoutCommand creates the layout command for printing residue coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in     inputFlags
		output string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [file.vienna]",
		Short: "Compute residue coordinates and pair edges as JSON",
		Long: `Compute the layout of secondary structures without rendering.

The output holds one point per residue in drawing units (y grows upwards),
the bounding box, one edge per base pair (pseudoknotted pairs flagged) and
the fitted canvas size. With several records the output is a JSON array.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := in.records(args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			docs, err := c.computeLayouts(cmd, cfg, recs, opts)
			if err != nil {
				return err
			}
			return writeJSONOutput(output, "layout", docs)
		},
	}

	in.bind(cmd)
	bindSpacing(cmd, &opts.Spacing)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// computeLayouts runs every stage up to the scene for each record.
func (c *CLI) computeLayouts(cmd *cobra.Command, cfg config.Config, recs []rnaio.Record, base pipeline.Options) (any, error) {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	docs := make([]layoutDoc, 0, len(recs))
	for i, rec := range recs {
		result, opts, err := c.prepare(cmd.Context(), runner, cmd, cfg, rec, base, nil)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", displayName(rec, i, len(recs)), err)
		}
		docs = append(docs, layoutDoc{
			Name:      rec.Name,
			Structure: opts.Structure,
			Sequence:  opts.Sequence,
			Points:    result.Layout.Points,
			Box:       result.Layout.Box,
			Edges:     result.Layout.Edges,
			Spacing:   result.Layout.Spacing,
			Size:      result.Size,
		})
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return docs, nil
}

// prepare builds options for one record and runs the pipeline short of
// rendering. The returned options are validated.
func (c *CLI) prepare(ctx context.Context, runner *pipeline.Runner, cmd *cobra.Command, cfg config.Config, rec rnaio.Record, base pipeline.Options, colors *colorFlags) (*pipeline.Result, pipeline.Options, error) {
	opts, err := c.buildOptions(cmd, rec, base, colors, cfg)
	if err != nil {
		return nil, opts, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, opts, err
	}
	result, err := runner.Prepare(ctx, opts)
	return result, opts, err
}

// writeJSONOutput writes v as indented JSON to path, or stdout when path is empty.
func writeJSONOutput(path, what string, v any) error {
	var w io.Writer = stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if path != "" {
		printSuccess("Wrote %s", what)
		printFile(path)
	}
	return nil
}
