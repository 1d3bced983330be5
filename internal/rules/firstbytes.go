package rules

import "regexp/syntax"

// regexFirstBytes satisfies corasick.FirstByteSet for a regex rule whose
// source yields no literal prefix (GenerateRegexTokens's fallback path). It
// walks the same parsed syntax.Regexp tree internal/matcher/literal.go walks
// for its required-literal extraction, but collects the set of bytes a match
// could legally start with instead of a required substring.
type regexFirstBytes struct {
	bytes []byte
}

func (r regexFirstBytes) FirstBytes() []byte { return r.bytes }

// newRegexFirstBytes parses src and computes its first-byte set. ok is false
// when the pattern is unparsable or can start with arbitrary bytes (e.g. a
// bare `.*`), in which case the caller should leave Pattern.Regex nil so the
// token generator degenerates the pattern to root attachment rather than
// pretend a meaningless one-byte set is selective.
func newRegexFirstBytes(src string) (regexFirstBytes, bool) {
	return newRegexFirstBytesFold(src, false)
}

// newRegexFirstBytesFold is newRegexFirstBytes with foldCase forcing every
// literal rune's first byte to contribute both of its ASCII cases, matching
// a "nocase" rule modifier even when the regex source itself has no (?i).
func newRegexFirstBytesFold(src string, foldCase bool) (regexFirstBytes, bool) {
	flags := syntax.Perl
	if foldCase {
		flags |= syntax.FoldCase
	}
	re, err := syntax.Parse(src, flags)
	if err != nil {
		return regexFirstBytes{}, false
	}
	re = re.Simplify()

	set := make(map[byte]bool)
	canEmpty := collectFirstBytes(re, set)
	if canEmpty || len(set) == 0 || len(set) >= 256 {
		return regexFirstBytes{}, false
	}

	out := make([]byte, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	return regexFirstBytes{bytes: out}, true
}

// collectFirstBytes adds every byte a match of re could legally begin with
// to set, and returns whether re can also match the empty string (in which
// case "first byte" isn't well defined and the caller must give up rather
// than report a too-narrow set).
func collectFirstBytes(re *syntax.Regexp, set map[byte]bool) bool {
	switch re.Op {
	case syntax.OpLiteral:
		if len(re.Rune) == 0 {
			return true
		}
		addRune(re.Rune[0], re.Flags&syntax.FoldCase != 0, set)
		return false

	case syntax.OpCharClass:
		for i := 0; i+1 < len(re.Rune); i += 2 {
			lo, hi := re.Rune[i], re.Rune[i+1]
			if lo > 0xFF {
				continue
			}
			if hi > 0xFF {
				hi = 0xFF
			}
			for r := lo; r <= hi; r++ {
				set[byte(r)] = true
			}
		}
		return false

	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		for b := 0; b < 256; b++ {
			set[byte(b)] = true
		}
		return false

	case syntax.OpCapture:
		if len(re.Sub) == 0 {
			return true
		}
		return collectFirstBytes(re.Sub[0], set)

	case syntax.OpPlus:
		if len(re.Sub) == 0 {
			return true
		}
		return collectFirstBytes(re.Sub[0], set)

	case syntax.OpStar, syntax.OpQuest:
		if len(re.Sub) > 0 {
			collectFirstBytes(re.Sub[0], set)
		}
		return true

	case syntax.OpRepeat:
		if len(re.Sub) == 0 {
			return true
		}
		empty := collectFirstBytes(re.Sub[0], set)
		return empty || re.Min == 0

	case syntax.OpConcat:
		for _, sub := range re.Sub {
			empty := collectFirstBytes(sub, set)
			if !empty {
				return false
			}
		}
		return true

	case syntax.OpAlternate:
		allEmpty := true
		for _, sub := range re.Sub {
			if !collectFirstBytes(sub, set) {
				allEmpty = false
			}
		}
		return allEmpty

	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpEndLine, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary, syntax.OpEmptyMatch:
		return true

	default:
		return true
	}
}

func addRune(r rune, foldCase bool, set map[byte]bool) {
	if r > 0xFF {
		return
	}
	set[byte(r)] = true
	if !foldCase {
		return
	}
	if r >= 'a' && r <= 'z' {
		set[byte(r-0x20)] = true
	} else if r >= 'A' && r <= 'Z' {
		set[byte(r+0x20)] = true
	}
}
