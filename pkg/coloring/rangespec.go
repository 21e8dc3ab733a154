package coloring

import (
	"strconv"
	"strings"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// Range colours residues Start..End (0-based, inclusive).
type Range struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Color Color `json:"color"`
}

// RangeSpec is a parsed range description. Later ranges take precedence.
type RangeSpec []Range

// ParseRangeSpec parses a description such as "0-4:red, 10:#00ff00".
// An empty or blank description yields an empty spec.
func ParseRangeSpec(s string) (RangeSpec, error) {
	var spec RangeSpec
	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		r, err := parseRange(tok)
		if err != nil {
			return nil, err
		}
		spec = append(spec, r)
	}
	return spec, nil
}

func parseRange(tok string) (Range, error) {
	where, colour, ok := strings.Cut(tok, ":")
	if !ok {
		return Range{}, errors.New(errors.ErrCodeColorSpecSyntax, "range %q: expected start[-end]:colour", tok)
	}
	c, err := ParseColor(colour)
	if err != nil {
		return Range{}, errors.Wrap(errors.ErrCodeColorSpecSyntax, err, "range %q", tok)
	}

	from, to, isSpan := strings.Cut(strings.TrimSpace(where), "-")
	start, err := parseIndex(tok, from)
	if err != nil {
		return Range{}, err
	}
	end := start
	if isSpan {
		if end, err = parseIndex(tok, to); err != nil {
			return Range{}, err
		}
	}
	if end < start {
		return Range{}, errors.New(errors.ErrCodeColorSpecSyntax, "range %q: end before start", tok)
	}
	return Range{Start: start, End: end, Color: c}, nil
}

func parseIndex(tok, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeColorSpecSyntax, "range %q: invalid index %q", tok, strings.TrimSpace(s))
	}
	return n, nil
}

// Check reports an error when a range reaches past n residues.
func (s RangeSpec) Check(n int) error {
	for _, r := range s {
		if r.End >= n {
			return errors.New(errors.ErrCodeColorSpecSyntax, "range %d-%d exceeds %d residues", r.Start, r.End, n)
		}
	}
	return nil
}

// Lookup returns the colour of the last range covering residue i.
func (s RangeSpec) Lookup(i int) (Color, bool) {
	for k := len(s) - 1; k >= 0; k-- {
		if s[k].Start <= i && i <= s[k].End {
			return s[k].Color, true
		}
	}
	return Color{}, false
}
