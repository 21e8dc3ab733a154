package structure

import (
	"strings"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// DotBracket serialises the PairMap. Each pair goes to the first channel in
// which it crosses no pair already placed there, so nested structures only
// use round brackets. It fails with [errors.ErrCodeUnsupported] when a knot
// needs more channels than [Channels] provides.
func (pm PairMap) DotBracket() (string, error) {
	if err := pm.Validate(); err != nil {
		return "", err
	}

	out := []byte(strings.Repeat(string(UnpairedSymbol), len(pm)))
	placed := make([][]Pair, len(Channels))

	for _, p := range pm.Pairs() {
		c := 0
		for ; c < len(Channels); c++ {
			if !crossesAny(p, placed[c]) {
				break
			}
		}
		if c == len(Channels) {
			return "", errors.New(errors.ErrCodeUnsupported,
				"pair (%d,%d) needs more than %d bracket channels", p.I, p.J, len(Channels))
		}
		placed[c] = append(placed[c], p)
		out[p.I], out[p.J] = Channels[c].Open, Channels[c].Close
	}
	return string(out), nil
}

// String returns the dot-bracket form, or a placeholder for invalid maps.
func (pm PairMap) String() string {
	s, err := pm.DotBracket()
	if err != nil {
		return "<invalid pair map>"
	}
	return s
}
