package styles

import (
	"bytes"
	"encoding/xml"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/render/diagram"
)

const (
	fontRadiusRatio = 1.1
	fontSizeMin     = 4.0
	lightTextBelow  = 0.35
)

// FontSize returns the letter size that fits inside a residue disc.
func FontSize(r diagram.Residue) float64 {
	return max(fontSizeMin, r.R*fontRadiusRatio)
}

// TextColor picks black or white, whichever reads better on c.
func TextColor(c coloring.Color) string {
	if c.Luminance() < lightTextBelow {
		return "#ffffff"
	}
	return "#000000"
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
