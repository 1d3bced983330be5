package corasick

// GenerateCaseVariants expands a token into its case variants for
// case-insensitive matching: one token per way of independently
// toggling the case of each ASCII letter among its bytes, 2^k-1 variants for
// k letters. It never returns the token unchanged — that copy is the
// caller's responsibility — only the letter-toggled variants, enumerated by
// a pre-order recursion over byte positions that flips bit 5 (the ASCII
// case bit) at letter positions.
func GenerateCaseVariants(token Token) []Token {
	var out []Token
	var walk func(buf []byte, pos int)
	walk = func(buf []byte, pos int) {
		if pos+1 < len(buf) {
			walk(buf, pos+1)
		}
		c := buf[pos]
		if !isASCIILetter(c) {
			return
		}
		flipped := append([]byte(nil), buf...)
		flipped[pos] = c ^ 0x20
		out = append(out, Token{Backtrack: token.Backtrack, Bytes: flipped})
		if pos+1 < len(flipped) {
			walk(flipped, pos+1)
		}
	}
	if len(token.Bytes) > 0 {
		walk(token.Bytes, 0)
	}
	return out
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
