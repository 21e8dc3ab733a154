package pipeline

import (
	"fmt"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/render"
	"github.com/matzehuels/rnadraw/pkg/render/diagram"
	"github.com/matzehuels/rnadraw/pkg/render/diagram/sink"
	"github.com/matzehuels/rnadraw/pkg/render/diagram/styles"
)

// Render generates output artifacts in the requested formats.
func Render(s diagram.Scene, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(s, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(s, sink.WithScale(opts.Scale))
		case FormatPDF:
			if !render.HasRSVG() {
				return nil, errors.New(errors.ErrCodeUnsupported,
					"pdf output requires rsvg-convert (librsvg)")
			}
			data, err = sink.RenderPDF(s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(s,
				sink.WithJSONStructure(opts.Structure),
				sink.WithJSONTitle(opts.Name))
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(s diagram.Scene, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(styles.For(s))}
	if opts.Name != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Name))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}
