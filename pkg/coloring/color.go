package coloring

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// Color is an opaque RGB colour. It implements [color.Color] and marshals
// as a "#rrggbb" string.
type Color colorful.Color

// Fallback is used for residues no other input colours.
var Fallback = MustParseColor("#7f7f7f")

// ParseColor accepts an SVG/X11 colour name or a #rgb / #rrggbb hex code.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Color{}, errors.New(errors.ErrCodeColorSpecSyntax, "empty colour")
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil || (len(name) != 4 && len(name) != 7) {
			return Color{}, errors.New(errors.ErrCodeColorSpecSyntax, "invalid hex colour %q", s)
		}
		return Color(c), nil
	}
	if rgba, ok := colornames.Map[strings.ReplaceAll(name, " ", "")]; ok {
		c, _ := colorful.MakeColor(rgba)
		return Color(c), nil
	}
	return Color{}, errors.New(errors.ErrCodeColorSpecSyntax, "unknown colour %q", s)
}

// MustParseColor is like [ParseColor] but panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string { return colorful.Color(c).Clamped().Hex() }

func (c Color) String() string { return c.Hex() }

// RGBA implements [color.Color].
func (c Color) RGBA() (r, g, b, a uint32) { return colorful.Color(c).Clamped().RGBA() }

// Luminance returns the relative luminance in [0, 1], used to pick a
// readable text colour on top of c.
func (c Color) Luminance() float64 {
	_, y, _ := colorful.Color(c).Clamped().Xyz()
	return y
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

var _ color.Color = Color{}

func blend(a, b Color, t float64) Color {
	return Color(colorful.Color(a).BlendLab(colorful.Color(b), t).Clamped())
}
