package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/config"
	rnaio "github.com/matzehuels/rnadraw/pkg/io"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

// drawCommand creates the draw command, the main entry point of the tool.
func (c *CLI) drawCommand() *cobra.Command {
	var (
		in         inputFlags
		colors     colorFlags
		output     string
		formatsStr string
		letters    bool
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "draw [file.vienna]",
		Short: "Draw secondary structures to SVG, PNG, PDF or JSON",
		Long: `Draw RNA secondary structures.

The structure is given inline with --ss (and optionally --seq), or as a
Vienna file whose records each hold a name line (">name"), an optional
sequence and a dot-bracket line. Every record in the file is drawn.

Output files are named <output>.<format>. With several records the record
name is appended, e.g. out_tRNA.svg. Rendered artifacts are cached; use
--refresh to redraw or --no-cache to skip the cache entirely.`,
		Example: `  rnadraw draw --ss "((((....))))" --seq GGGGAAAACCCC --scheme res_type
  rnadraw draw hairpins.vienna -f svg,png --letters
  rnadraw draw --ss "((..))" --data-str "0.1;0.5;nan;nan;0.9;1" --data-palette magma`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if letters {
				opts.Style = pipeline.StyleLetters
			}
			recs, err := in.records(args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runDraw(cmd, cfg, recs, opts, &colors, output, noCache)
		},
	}

	in.bind(cmd)
	colors.bind(cmd)
	bindSpacing(cmd, &opts.Spacing)

	// Output flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: record name or "+pipeline.DefaultName+")")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "redraw even if the artifacts are cached")

	// Render flags
	cmd.Flags().BoolVar(&letters, "letters", false, "draw nucleotide letters instead of circles")
	cmd.Flags().BoolVar(&opts.NoBackbone, "no-backbone", false, "omit the backbone line")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background colour (default transparent)")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "add residue tooltips and hover highlighting (SVG)")
	cmd.Flags().Float64Var(&opts.DPI, "dpi", 0, "pixels per fitted inch (default 72)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG pixel density multiplier (default 1)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "canvas width in pixels (overrides the fitted size, needs --height)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "canvas height in pixels (overrides the fitted size, needs --width)")
	cmd.MarkFlagsRequiredTogether("width", "height")

	return cmd
}

// runDraw draws every record and writes its artifacts.
func (c *CLI) runDraw(cmd *cobra.Command, cfg config.Config, recs []rnaio.Record, base pipeline.Options, colors *colorFlags, output string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	for i, rec := range recs {
		name := displayName(rec, i, len(recs))
		opts, err := c.buildOptions(cmd, rec, base, colors, cfg)
		if err != nil {
			return err
		}

		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s...", name))
		spinner.Start()

		result, err := runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Drawing " + name + " failed")
			return fmt.Errorf("draw %s: %w", name, err)
		}
		spinner.Stop()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		paths, err := rnaio.WriteOutputs(outputBase(output, rec, i, len(recs)), result.Artifacts)
		if err != nil {
			return err
		}

		printSuccess("Drew %s", StyleHighlight.Render(name))
		for _, p := range paths {
			printFile(p)
		}
		printStats(result.Stats, result.Size, result.CacheInfo.RenderHit)
	}

	if len(recs) > 1 {
		prog.done(fmt.Sprintf("Drew %d structures", len(recs)))
	}
	return nil
}
