package corasick

// GenerateRegexTokens walks a regex pattern's source
// text, accumulating up to tMax literal characters that are guaranteed to
// appear in any match, then falls back to the regex engine's first-byte set
// when no literal prefix exists.
func GenerateRegexTokens(pattern *Pattern) []Token {
	src := pattern.Bytes
	i := 0
	if len(src) > 0 && src[0] == '^' {
		i = 1
	}

	var literal []byte
	for i < len(src) && len(literal) < tMax {
		cur := src[i]
		var next byte
		if i+1 < len(src) {
			next = src[i+1]
		}

		switch {
		case cur == '\\' && isRegexEscapable(next):
			literal = append(literal, next)
			i += 2
		case isRegexHashable(cur) && next != '*' && next != '?' && next != '{':
			literal = append(literal, cur)
			i++
		default:
			i = len(src) // stop accumulation
		}
	}

	if len(literal) > 0 {
		base := Token{Backtrack: 0, Bytes: literal}
		out := []Token{base}
		if pattern.Flags.has(NoCase) {
			out = append(out, GenerateCaseVariants(base)...)
		}
		return out
	}

	if pattern.Regex == nil {
		return nil
	}
	firstBytes := pattern.Regex.FirstBytes()
	if len(firstBytes) == 0 {
		return nil
	}
	out := make([]Token, len(firstBytes))
	for i, b := range firstBytes {
		out[i] = Token{Backtrack: 0, Bytes: []byte{b}}
	}
	return out
}

// isRegexEscapable reports whether b is one of the characters for which a
// backslash escape (\b) means "the literal byte b", as opposed to a regex
// metacharacter class shorthand (\d, \w, \s, \b as boundary, ...) that does
// not pin down a literal byte.
func isRegexEscapable(b byte) bool {
	switch b {
	case '.', '+', '*', '?', '(', ')', '[', ']', '{', '}', '|', '^', '$', '\\', '-', '/':
		return true
	default:
		return false
	}
}

// isRegexHashable reports whether b can appear unescaped in a regex and
// still be taken as a literal byte contribution to a token — i.e. it is not
// itself a metacharacter.
func isRegexHashable(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '@' || b == '#' || b == ':' || b == '=' || b == '!' || b == '%' || b == '&' || b == ' ':
		return true
	default:
		return false
	}
}
