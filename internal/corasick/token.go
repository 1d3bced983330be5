package corasick

// Token is a short byte sequence of length <= tMax that is guaranteed to
// appear verbatim in any data matching the pattern it was extracted from,
// paired with the backtrack distance from the token's first byte back to
// the pattern's start. A []Token naturally replaces the length-prefixed,
// zero-terminated scratch buffer of a C implementation: an empty slice
// signals the degenerate case (no token extractable) without needing a
// sentinel record.
type Token struct {
	Backtrack int
	Bytes     []byte
}

func (t Token) Length() int { return len(t.Bytes) }

// GenerateTokens dispatches to the token family appropriate for pattern's
// flags. It returns nil for the degenerate case: no token could be
// extracted, meaning the pattern must be attached directly to the root and
// tried at every offset.
func GenerateTokens(pattern *Pattern) []Token {
	switch {
	case pattern.Flags.has(Hex):
		tok := GenerateHexTokens(pattern)
		if tok.Length() == 0 {
			return nil
		}
		return []Token{tok}

	case pattern.Flags.has(Regexp):
		return GenerateRegexTokens(pattern)

	default:
		return generateTextTokens(pattern)
	}
}

// generateTextTokens implements the plain-text token family: an
// ASCII token is the pattern's first min(len, tMax) bytes; a wide token is
// the UTF-16LE expansion of the same, truncated to tMax bytes. Ascii is the
// default for a text pattern; Wide, when also set, adds a wide token
// alongside it rather than replacing the ascii one.
func generateTextTokens(pattern *Pattern) []Token {
	wantAscii := pattern.Flags.has(Ascii) || !pattern.Flags.has(Wide)
	wantWide := pattern.Flags.has(Wide)

	var out []Token
	if wantAscii {
		tok := asciiToken(pattern.Bytes)
		out = append(out, tok)
		if pattern.Flags.has(NoCase) {
			out = append(out, GenerateCaseVariants(tok)...)
		}
	}
	if wantWide {
		tok := wideToken(pattern.Bytes)
		out = append(out, tok)
		if pattern.Flags.has(NoCase) {
			out = append(out, GenerateCaseVariants(tok)...)
		}
	}
	return out
}

func asciiToken(s []byte) Token {
	n := len(s)
	if n > tMax {
		n = tMax
	}
	return Token{Backtrack: 0, Bytes: append([]byte(nil), s[:n]...)}
}

func wideToken(s []byte) Token {
	buf := make([]byte, 0, tMax)
	for _, b := range s {
		if len(buf) >= tMax {
			break
		}
		buf = append(buf, b)
		if len(buf) >= tMax {
			break
		}
		buf = append(buf, 0x00)
	}
	return Token{Backtrack: 0, Bytes: buf}
}
