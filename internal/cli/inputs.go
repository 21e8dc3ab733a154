package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/config"
	"github.com/matzehuels/rnadraw/pkg/errors"
	rnaio "github.com/matzehuels/rnadraw/pkg/io"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

// =============================================================================
// Structure Input
// =============================================================================

// inputFlags selects the structures a command works on: either one
// structure given inline or every record of a Vienna file.
type inputFlags struct {
	structure string
	sequence  string
	name      string
	file      string
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.structure, "ss", "s", "", "secondary structure in dot-bracket notation")
	cmd.Flags().StringVar(&f.sequence, "seq", "", "nucleotide sequence (same length as the structure)")
	cmd.Flags().StringVarP(&f.file, "input", "i", "", "Vienna file with one or more structures (- for stdin)")
	cmd.Flags().StringVar(&f.name, "name", "", "drawing name (default: record name or "+pipeline.DefaultName+")")
	cmd.MarkFlagsMutuallyExclusive("ss", "input")
}

// records resolves the flags and an optional positional file argument.
func (f *inputFlags) records(args []string) ([]rnaio.Record, error) {
	file := f.file
	if len(args) > 0 {
		if file != "" || f.structure != "" {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"pass the structure either as an argument, with --input or with --ss, not several")
		}
		file = args[0]
	}

	var (
		recs []rnaio.Record
		err  error
	)
	switch {
	case file == "-":
		recs, err = rnaio.ReadVienna(os.Stdin)
	case file != "":
		recs, err = rnaio.ImportVienna(file)
	case f.structure != "":
		recs = []rnaio.Record{{Structure: f.structure, Sequence: f.sequence}}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"a structure is required: pass --ss or a Vienna file")
	}
	if err != nil {
		return nil, err
	}

	if len(recs) == 1 {
		if f.name != "" {
			recs[0].Name = f.name
		}
		if f.sequence != "" {
			recs[0].Sequence = f.sequence
		}
	}
	return recs, nil
}

// =============================================================================
// Colour Input
// =============================================================================

// colorFlags carries the colouring inputs. --vmin and --vmax count only when
// set, so an explicit 0 differs from "use the data range".
type colorFlags struct {
	inputs coloring.Inputs

	dataStr     string
	dataFile    string
	dataPalette string
	ignore      string
	vmin, vmax  float64
}

func (f *colorFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.inputs.Ranges, "color-str", "", `colour index ranges, e.g. "0-9:red, 20-25:#00ff00" (0-based, inclusive)`)
	fl.StringVar(&f.inputs.Scheme, "scheme", "", "colour scheme: "+strings.Join(coloring.SchemeNames(), ", "))
	fl.StringVar(&f.inputs.Palette, "color-palette", "", "categorical palette used by schemes (default deep)")
	fl.StringVar(&f.inputs.Default, "default-color", "", "colour of residues no other input colours")
	fl.StringVar(&f.dataStr, "data-str", "", "per-residue values separated by ';', ',' or spaces (nan = missing)")
	fl.StringVar(&f.dataFile, "data-file", "", "file with per-residue values")
	fl.StringVar(&f.dataPalette, "data-palette", "", "continuous palette for data values (suffix _r reverses)")
	fl.Float64Var(&f.vmin, "vmin", 0, "data value mapped to the low end of the palette (default: data minimum)")
	fl.Float64Var(&f.vmax, "vmax", 0, "data value mapped to the high end of the palette (default: data maximum)")
	fl.StringVar(&f.ignore, "ignore", "", "residue types excluded from data colouring, e.g. GU")
	cmd.MarkFlagsMutuallyExclusive("data-str", "data-file")
}

// apply copies the colour inputs into opts.
func (f *colorFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	opts.Inputs = f.inputs

	fl := cmd.Flags()
	tuned := f.dataPalette != "" || f.ignore != "" || fl.Changed("vmin") || fl.Changed("vmax")
	if !tuned && f.dataStr == "" && f.dataFile == "" {
		return nil
	}
	if f.dataStr == "" && f.dataFile == "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"--data-palette, --vmin, --vmax and --ignore need --data-str or --data-file")
	}

	data := &coloring.Data{Palette: f.dataPalette, Ignore: f.ignore}
	if fl.Changed("vmin") {
		v := f.vmin
		data.Min = &v
	}
	if fl.Changed("vmax") {
		v := f.vmax
		data.Max = &v
	}
	if f.dataFile != "" {
		values, err := rnaio.ImportData(f.dataFile)
		if err != nil {
			return err
		}
		data.Values = values
	}
	opts.Data = data
	opts.DataStr = f.dataStr
	return nil
}

// bindSpacing registers the layout spacing flags. Zero keeps the config value.
func bindSpacing(cmd *cobra.Command, s *layout.Spacing) {
	fl := cmd.Flags()
	fl.Float64Var(&s.NodeRadius, "node-r", 0, "residue radius")
	fl.Float64Var(&s.PrimarySpace, "primary-space", 0, "distance between consecutive residues")
	fl.Float64Var(&s.PairSpace, "pair-space", 0, "distance between paired residues")
	fl.Float64Var(&s.CellPadding, "cell-padding", 0, "padding around the drawing")
}

// =============================================================================
// Options Assembly
// =============================================================================

// buildOptions merges one record, the bound flags and the config file.
// Flags win over the config file, which wins over built-in defaults.
func (c *CLI) buildOptions(cmd *cobra.Command, rec rnaio.Record, base pipeline.Options, colors *colorFlags, cfg config.Config) (pipeline.Options, error) {
	opts := base
	opts.Formats = append([]string(nil), base.Formats...)
	opts.Name = rec.Name
	opts.Structure = rec.Structure
	opts.Sequence = rec.Sequence

	if colors != nil {
		if err := colors.apply(cmd, &opts); err != nil {
			return opts, err
		}
	}
	opts.ApplyConfig(cfg)
	opts.Logger = c.Logger
	return opts, nil
}

// displayName is how a record is referred to in status output.
func displayName(rec rnaio.Record, i, n int) string {
	if rec.Name != "" {
		return rec.Name
	}
	if n > 1 {
		return "record " + strconv.Itoa(i+1)
	}
	return pipeline.DefaultName
}

// outputBase derives the output path without extension. A known format
// extension on output is stripped; with several records each gets a suffix.
func outputBase(output string, rec rnaio.Record, i, n int) string {
	stem := fileStem(rec.Name)
	if output == "" {
		switch {
		case stem != "":
			return stem
		case n > 1:
			return pipeline.DefaultName + "_" + strconv.Itoa(i+1)
		default:
			return pipeline.DefaultName
		}
	}

	if ext := filepath.Ext(output); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	if n == 1 {
		return output
	}
	if stem == "" {
		stem = strconv.Itoa(i + 1)
	}
	return output + "_" + stem
}

// fileStem turns a record name into something safe for a file name.
func fileStem(name string) string {
	name = strings.TrimSpace(name)
	if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[0]
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
