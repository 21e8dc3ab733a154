package structure

import (
	"github.com/matzehuels/rnadraw/pkg/errors"
)

// Parse converts a dot-bracket string into a [PairMap].
//
// Parse keeps one stack per bracket channel. An open symbol pushes its
// position, a close symbol pops the stack of the same channel and records a
// pair. It fails with [errors.ErrCodeStructureSyntax] on a character that is
// neither '.' nor a recognised bracket, and with
// [errors.ErrCodeUnbalancedStructure] when a close symbol finds its channel
// empty or when opens remain unmatched at the end.
//
// The empty string parses to an empty PairMap.
func Parse(dotBracket string) (PairMap, error) {
	pm := make(PairMap, 0, len(dotBracket))
	stacks := make([][]int, len(Channels))

	pos := 0
	for _, r := range dotBracket {
		if r > 0xff {
			return nil, errors.New(errors.ErrCodeStructureSyntax,
				"unrecognised character %q at position %d", r, pos)
		}
		sym := symbols[byte(r)]
		switch sym.kind {
		case symbolUnpaired:
			pm = append(pm, Unpaired)
		case symbolOpen:
			stacks[sym.channel] = append(stacks[sym.channel], pos)
			pm = append(pm, Unpaired)
		case symbolClose:
			st := stacks[sym.channel]
			if len(st) == 0 {
				return nil, errors.New(errors.ErrCodeUnbalancedStructure,
					"unmatched %q at position %d", r, pos)
			}
			open := st[len(st)-1]
			stacks[sym.channel] = st[:len(st)-1]
			pm[open] = pos
			pm = append(pm, open)
		default:
			return nil, errors.New(errors.ErrCodeStructureSyntax,
				"unrecognised character %q at position %d", r, pos)
		}
		pos++
	}

	for c, st := range stacks {
		if len(st) > 0 {
			return nil, errors.New(errors.ErrCodeUnbalancedStructure,
				"unmatched %q at position %d", Channels[c].Open, st[len(st)-1])
		}
	}
	return pm, nil
}

// MustParse is like [Parse] but panics on error. It is meant for constants
// in tests and examples.
func MustParse(dotBracket string) PairMap {
	pm, err := Parse(dotBracket)
	if err != nil {
		panic(err)
	}
	return pm
}
