package structure

// Unpaired marks a residue without a partner in a [PairMap].
const Unpaired = -1

// UnpairedSymbol is the dot-bracket character for an unpaired residue.
const UnpairedSymbol = '.'

// Channel is one bracket family of the dot-bracket notation.
type Channel struct {
	Open  byte
	Close byte
}

// Channels lists every recognised bracket family in priority order: the four
// bracket pairs, then A..Z closed by a..z. A lowercase letter is therefore a
// close symbol, never an unknown character.
// Serialisation assigns pairs to the earliest channel that keeps it nested.
var Channels = buildChannels()

func buildChannels() []Channel {
	chs := []Channel{{'(', ')'}, {'[', ']'}, {'{', '}'}, {'<', '>'}}
	for c := byte('A'); c <= 'Z'; c++ {
		chs = append(chs, Channel{Open: c, Close: c + ('a' - 'A')})
	}
	return chs
}

// symbolKind classifies one dot-bracket character.
type symbolKind int

const (
	symbolInvalid symbolKind = iota
	symbolUnpaired
	symbolOpen
	symbolClose
)

// symbols maps every byte to its kind and channel index.
var symbols = func() (t [256]struct {
	kind    symbolKind
	channel int
}) {
	t[UnpairedSymbol].kind = symbolUnpaired
	for i, ch := range Channels {
		t[ch.Open].kind, t[ch.Open].channel = symbolOpen, i
		t[ch.Close].kind, t[ch.Close].channel = symbolClose, i
	}
	return t
}()
