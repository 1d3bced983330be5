package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dl/acscan/internal/corasick"
)

// compileHex turns a hex-pattern body (the part between "{" and "}") into
// the parallel Bytes/Mask streams GenerateHexTokens walks. Grammar:
//
//	AA BB       literal bytes (two hex digits each)
//	??          single-byte wildcard
//	(A|B|...)   alternation, alternatives separated by whitespace-padded '|'
//	[n]         exact skip of n bytes
//	[m-n]       range skip, m..n bytes
//
// Alternatives inside "( )" may themselves contain only literal byte runs,
// matching libyara's own restriction that alternation arms are plain byte
// sequences.
func compileHex(body string) ([]byte, []byte, error) {
	fields := tokenizeHex(body)

	var str, mask []byte
	i := 0
	for i < len(fields) {
		f := fields[i]
		switch {
		case f == "??":
			str = append(str, 0x00)
			mask = append(mask, 0x00) // any value below MaskEnd: wildcard
			i++

		case f == "(":
			consumed, err := compileAlternation(fields[i:], &str, &mask)
			if err != nil {
				return nil, nil, err
			}
			i += consumed

		case strings.HasPrefix(f, "["):
			lo, hi, err := parseSkip(f)
			if err != nil {
				return nil, nil, err
			}
			if lo == hi {
				mask = append(mask, corasick.MaskExactSkip, byte(lo))
			} else {
				str = append(str, 0x00, 0x00)
				mask = append(mask, corasick.MaskRangeSkip, byte(lo), byte(hi))
			}
			i++

		default:
			b, err := strconv.ParseUint(f, 16, 8)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid hex byte %q", f)
			}
			str = append(str, byte(b))
			mask = append(mask, corasick.MaskLiteral)
			i++
		}
	}

	mask = append(mask, corasick.MaskEnd)
	return str, mask, nil
}

// compileAlternation consumes fields starting at "(" through the matching
// ")", appending MaskOr-delimited literal runs to str/mask, and returns how
// many fields were consumed.
func compileAlternation(fields []string, str, mask *[]byte) (int, error) {
	if fields[0] != "(" {
		return 0, fmt.Errorf("compileAlternation: expected '('")
	}
	*mask = append(*mask, corasick.MaskOr)

	i := 1
	for i < len(fields) {
		switch fields[i] {
		case ")":
			*mask = append(*mask, corasick.MaskOrEnd)
			return i + 1, nil
		case "|":
			*mask = append(*mask, corasick.MaskOr)
			i++
		default:
			b, err := strconv.ParseUint(fields[i], 16, 8)
			if err != nil {
				return 0, fmt.Errorf("invalid hex byte %q in alternation", fields[i])
			}
			*str = append(*str, byte(b))
			*mask = append(*mask, corasick.MaskLiteral)
			i++
		}
	}
	return 0, fmt.Errorf("unterminated alternation")
}

func parseSkip(f string) (int, int, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(f, "["), "]")
	if dash := strings.IndexByte(inner, '-'); dash >= 0 {
		lo, err := strconv.Atoi(inner[:dash])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid skip range %q", f)
		}
		hi, err := strconv.Atoi(inner[dash+1:])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid skip range %q", f)
		}
		return lo, hi, nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid skip count %q", f)
	}
	return n, n, nil
}

// tokenizeHex splits a hex body into its fields: two-digit byte literals,
// "??", "(", ")", "|", and bracketed skip expressions, all whitespace-
// separated except for the bracket/paren punctuation which stands alone.
func tokenizeHex(body string) []string {
	var fields []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == ' ' || c == '\t':
			flush()
		case c == '(' || c == ')' || c == '|':
			flush()
			fields = append(fields, string(c))
		case c == '[':
			flush()
			j := strings.IndexByte(body[i:], ']')
			if j < 0 {
				fields = append(fields, body[i:])
				i = len(body)
				break
			}
			fields = append(fields, body[i:i+j+1])
			i += j
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return fields
}
