package rules

import "github.com/dl/acscan/internal/corasick"

// compileRegex builds the corasick.Pattern for a regex rule definition. The
// regex source becomes Pattern.Bytes verbatim (GenerateRegexTokens walks it
// directly for a literal prefix); Pattern.Regex is attached only when a
// first-byte set could be computed, so a truly unanchored pattern (able to
// start with any byte) degenerates to root attachment instead of carrying a
// meaningless full-256 set.
func compileRegex(def Def) (*corasick.Pattern, error) {
	flags := corasick.Regexp
	if def.NoCase {
		flags |= corasick.NoCase
	}

	pattern := &corasick.Pattern{
		Name:  def.Name,
		Bytes: []byte(def.Body),
		Flags: flags,
	}

	if fb, ok := newRegexFirstBytesFold(def.Body, def.NoCase); ok {
		pattern.Regex = fb
	}
	return pattern, nil
}
