// Package pipeline wires parsing, layout, colouring, sizing and rendering
// into one draw operation.
//
// The CLI and the HTTP API both go through this package, so a structure
// is drawn the same way regardless of the entry point.
//
// # Stages
//
//  1. Parse: dot-bracket → pair map, sequence validation
//  2. Layout: pair map → coordinates, bounding box, pair edges
//  3. Colour: sequence + pair map + colour inputs → one colour per residue
//  4. Size: bounding box → canvas size via the fitted figure-size model
//  5. Render: scene → SVG, PNG, PDF or JSON
//
// Stages 1 to 4 are pure and cheap, so they always run. Rendered artifacts
// are cached, keyed by a hash of the normalised options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Structure: "((((....))))",
//	    Sequence:  "GGGGAAAACCCC",
//	    Inputs:    coloring.Inputs{Scheme: "res_type"},
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rnadraw/pkg/cache"
	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/config"
	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/render/diagram"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDPI converts fitted figure inches to pixels.
	DefaultDPI = 72.0

	// DefaultMinInches and DefaultMaxInches bound the fitted figure size.
	DefaultMinInches = 1.0
	DefaultMaxInches = 200.0

	// DefaultScale is the PNG pixel density multiplier.
	DefaultScale = 1.0

	// DefaultName is the drawing name, also the default output file base.
	DefaultName = "secstruct"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Style constants.
const (
	StyleCircles = "circles"
	StyleLetters = "letters"
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleCircles

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleCircles: true,
	StyleLetters: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one drawing.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input
	Name      string `json:"name,omitempty"`
	Structure string `json:"structure"`
	Sequence  string `json:"sequence,omitempty"`

	// Colour inputs. DataStr, when set, is parsed into Inputs.Data.Values.
	coloring.Inputs
	DataStr string `json:"data_str,omitempty"`

	// Layout options
	Spacing layout.Spacing `json:"spacing"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	NoBackbone  bool     `json:"no_backbone,omitempty"`
	Background  string   `json:"background,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	DPI         float64  `json:"dpi,omitempty"`
	MinInches   float64  `json:"min_inches,omitempty"`
	MaxInches   float64  `json:"max_inches,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	// Width and Height override the fitted canvas size, in pixels.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Structure is the parsed pair map.
	Structure structure.PairMap

	// Layout holds coordinates, bounding box and pair edges.
	Layout *layout.Result

	// Colors holds one colour per residue.
	Colors []coloring.Color

	// Size is the canvas size.
	Size Size

	// Scene is the layout mapped onto the canvas.
	Scene diagram.Scene

	// InputHash identifies the normalised options.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether rendering hit the cache.
	CacheInfo CacheInfo
}

// Size is a canvas size in inches and pixels.
type Size struct {
	WidthInches  float64 `json:"width_in"`
	HeightInches float64 `json:"height_in"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Residues    int
	Pairs       int
	Pseudoknots int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	ColorTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid style: %q (must be one of: circles, letters)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	o.Structure = strings.TrimSpace(o.Structure)
	o.Sequence = strings.ToUpper(strings.TrimSpace(o.Sequence))
	if o.Structure == "" {
		return errors.New(errors.ErrCodeInvalidInput, "structure is required")
	}
	if err := errors.ValidateSequence(o.Sequence); err != nil {
		return err
	}

	if o.DataStr != "" {
		values, err := coloring.ParseData(o.DataStr)
		if err != nil {
			return err
		}
		if o.Data == nil {
			o.Data = &coloring.Data{}
		} else {
			d := *o.Data
			o.Data = &d
		}
		o.Data.Values = values
		o.DataStr = ""
	}

	o.Spacing = o.Spacing.WithDefaults()
	if err := o.Spacing.Validate(); err != nil {
		return err
	}

	o.SetRenderDefaults()
	if err := o.validateRender(); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// ApplyConfig fills options the caller left unset from cfg. It must run
// before ValidateAndSetDefaults, which would otherwise fill them with the
// built-in defaults.
func (o *Options) ApplyConfig(cfg config.Config) {
	if o.Spacing.NodeRadius == 0 {
		o.Spacing.NodeRadius = cfg.Layout.NodeRadius
	}
	if o.Spacing.PrimarySpace == 0 {
		o.Spacing.PrimarySpace = cfg.Layout.PrimarySpace
	}
	if o.Spacing.PairSpace == 0 {
		o.Spacing.PairSpace = cfg.Layout.PairSpace
	}
	if o.Spacing.CellPadding == 0 {
		o.Spacing.CellPadding = cfg.Layout.CellPadding
	}

	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), cfg.Render.Formats...)
	}
	if o.Style == "" && cfg.Render.Letters {
		o.Style = StyleLetters
	}
	if !cfg.Render.Backbone {
		o.NoBackbone = true
	}
	if o.Background == "" {
		o.Background = cfg.Render.Background
	}
	if o.DPI == 0 {
		o.DPI = cfg.Render.DPI
	}
	if o.MinInches == 0 {
		o.MinInches = cfg.Render.MinInches
	}
	if o.MaxInches == 0 {
		o.MaxInches = cfg.Render.MaxInches
	}

	if o.Default == "" {
		o.Default = cfg.Colors.Default
	}
	if o.Palette == "" {
		o.Palette = cfg.Colors.Palette
	}
	if o.Scheme == "" {
		o.Scheme = cfg.Colors.Scheme
	}
	if o.Data == nil && o.DataStr != "" {
		o.Data = &coloring.Data{}
	}
	if o.Data != nil && o.Data.Palette == "" {
		d := *o.Data
		d.Palette = cfg.Colors.DataPalette
		o.Data = &d
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.MinInches == 0 {
		o.MinInches = DefaultMinInches
	}
	if o.MaxInches == 0 {
		o.MaxInches = DefaultMaxInches
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) validateRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if !(o.DPI > 0) || !(o.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "dpi and scale must be positive")
	}
	if !(o.MinInches > 0) || !(o.MaxInches >= o.MinInches) {
		return errors.New(errors.ErrCodeInvalidInput,
			"size bounds [%g, %g] are invalid", o.MinInches, o.MaxInches)
	}
	if o.Width < 0 || o.Height < 0 || (o.Width == 0) != (o.Height == 0) {
		return errors.New(errors.ErrCodeInvalidInput,
			"width and height must both be positive or both be omitted")
	}
	if o.Background != "" && o.Background != "none" {
		if _, err := coloring.ParseColor(o.Background); err != nil {
			return err
		}
	}
	return nil
}

// IsLetters reports whether residues are drawn as letters.
func (o *Options) IsLetters() bool {
	return o.Style == StyleLetters
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Style: o.Style}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// InputHash hashes everything that shapes the drawing. Formats, Refresh and
// the logger are excluded, so one hash covers every output format.
func (o *Options) InputHash() (string, error) {
	k := *o
	k.Formats = nil
	k.Refresh = false
	k.Logger = nil

	// NaN has no JSON encoding; hash data values as text.
	var values []string
	if o.Data != nil {
		d := *o.Data
		values = make([]string, len(d.Values))
		for i, v := range d.Values {
			if math.IsNaN(v) {
				values[i] = "nan"
			} else {
				values[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		d.Values = nil
		k.Data = &d
	}

	return cache.HashJSON(struct {
		Options Options  `json:"options"`
		Values  []string `json:"values,omitempty"`
	}{k, values})
}
