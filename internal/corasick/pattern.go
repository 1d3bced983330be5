package corasick

// Flags describes the shape of a Pattern. Default text is ASCII unless Wide
// is also set, in which case both the ASCII and wide token families are
// emitted for it.
type Flags uint8

const (
	Hex Flags = 1 << iota
	Regexp
	Ascii
	Wide
	NoCase
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// Mask sentinel values for hex patterns. A mask byte of Literal means the
// string byte at the same position is significant; any value below MaskEnd
// means the byte is wildcarded (don't care). The remaining sentinels encode
// alternation and skip-run structure; see GenerateHexTokens.
const (
	MaskEnd       byte = 0xF0
	MaskOr        byte = 0xF1
	MaskOrEnd     byte = 0xF2
	MaskExactSkip byte = 0xF3
	MaskRangeSkip byte = 0xF4
	MaskLiteral   byte = 0xFF
)

// FirstByteSet is queried on a regex pattern when no literal prefix could be
// extracted from its source. It stands in for the regex engine, which is an
// external collaborator of this package and is never invoked beyond this.
type FirstByteSet interface {
	// FirstBytes returns the distinct bytes the regex may start a match
	// with. An empty result means the pattern is attached to the root
	// state directly and tried at every offset.
	FirstBytes() []byte
}

// Pattern is the opaque record the automaton indexes. The automaton stores
// only a back-reference to it (via Name, for debug printing, and as the
// pointer identity attached to output records); it never inspects Bytes or
// Mask again once tokens have been extracted and never owns the pattern's
// memory.
type Pattern struct {
	// Name identifies the pattern for PrintAutomaton's debug dump.
	Name string
	// Bytes holds the pattern's literal content: raw bytes for ASCII/wide
	// text and hex strings, regex source text for Regexp patterns.
	Bytes []byte
	// Mask parallels Bytes for Hex patterns; see GenerateHexTokens.
	Mask  []byte
	Flags Flags
	// Regex supplies the first-byte set for Regexp patterns whose source
	// yields no usable literal prefix. May be nil for non-regex patterns,
	// or for regex patterns whose prefix does yield a literal.
	Regex FirstByteSet
}
