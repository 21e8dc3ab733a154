// Package coloring resolves one colour per residue from several, possibly
// conflicting, colouring inputs.
//
// # Precedence
//
// For every residue the first source that has an opinion wins:
//
//  1. an explicit range description ([ParseRangeSpec])
//  2. a numeric data series mapped through a continuous palette ([Data]),
//     unless the residue's nucleotide is in the data's ignore set
//  3. a named scheme ([Scheme]): res_type, paired, strand or none
//  4. the caller's default colour
//  5. [Fallback]
//
// # Range descriptions
//
// A range description is a list of tokens separated by commas or
// semicolons. Each token is start[-end]:colour, where start and end are
// 0-based inclusive residue indices. Later tokens override earlier ones:
//
//	0-4:red, 10:#00ff00; 12-20:steelblue
//
// Colours are SVG/X11 colour names or #rgb / #rrggbb hex codes.
//
// # Palettes
//
// Schemes draw from a categorical palette (seaborn names such as "deep" or
// "colorblind"); data values are mapped through a continuous palette
// (matplotlib names such as "viridis" or "coolwarm", "_r" reverses).
// Continuous palettes are interpolated in CIE L*a*b* space.
//
// Resolution is a pure function of its inputs.
package coloring
