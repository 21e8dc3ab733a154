package sink

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/render/diagram"
	"github.com/matzehuels/rnadraw/pkg/render/diagram/styles"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale multiplies the canvas size (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

var regularFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// RenderPNG paints s into a PNG image.
func RenderPNG(s diagram.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("invalid PNG scale %v", r.scale)
	}

	w, h := int(s.Width*r.scale+0.5), int(s.Height*r.scale+0.5)
	dc := gg.NewContext(max(1, w), max(1, h))
	dc.Scale(r.scale, r.scale)

	if s.Background != "none" {
		bg, err := coloring.ParseColor(s.Background)
		if err != nil {
			return nil, err
		}
		dc.SetColor(bg)
		dc.Clear()
	}

	if s.Backbone && len(s.Residues) > 1 {
		dc.SetHexColor("#b3b3b3")
		dc.SetLineWidth(1.5)
		dc.MoveTo(s.Residues[0].X, s.Residues[0].Y)
		for _, res := range s.Residues[1:] {
			dc.LineTo(res.X, res.Y)
		}
		dc.Stroke()
	}

	dc.SetLineCap(gg.LineCapRound)
	for _, p := range s.Pairs {
		dc.SetHexColor(p.Color)
		dc.SetLineWidth(p.Width)
		if p.Pseudoknot {
			dc.SetDash(3*p.Width, 2*p.Width)
		} else {
			dc.SetDash()
		}
		dc.DrawLine(p.X1, p.Y1, p.X2, p.Y2)
		dc.Stroke()
	}
	dc.SetDash()

	font, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	for _, res := range s.Residues {
		size := styles.FontSize(res)
		if s.Letters {
			size *= 2
		} else {
			dc.SetColor(res.Color)
			dc.DrawCircle(res.X, res.Y, res.R)
			dc.Fill()
		}
		if res.Letter == "" {
			continue
		}
		dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
		if s.Letters {
			dc.SetColor(res.Color)
		} else {
			dc.SetHexColor(styles.TextColor(res.Color))
		}
		dc.DrawStringAnchored(res.Letter, res.X, res.Y, 0.5, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
