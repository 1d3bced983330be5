package matcher

import (
	"bytes"

	"github.com/dl/acscan/internal/corasick"
)

// AhoCorasickMatcher matches multiple fixed patterns simultaneously. It is
// a thin scanning loop over a corasick.Automaton: pattern insertion, trie
// construction, and failure-link computation are all corasick's job, not
// this package's. Patterns here are inserted whole (via corasick.AddLiteral)
// rather than token-indexed, since a grep-style matcher needs the complete
// literal at every occurrence, not a hint to verify later.
type AhoCorasickMatcher struct {
	arena        *corasick.BumpArena
	automaton    *corasick.Automaton
	patterns     []*corasick.Pattern
	patternIndex map[*corasick.Pattern]int
	ignoreCase   bool
	invert       bool
	maxCols      int
	needLineNums bool
}

// NewAhoCorasickMatcher creates an AhoCorasickMatcher for multiple fixed patterns.
func NewAhoCorasickMatcher(patterns []string, ignoreCase bool, invert bool) *AhoCorasickMatcher {
	m := &AhoCorasickMatcher{
		arena:      corasick.NewArena(),
		ignoreCase: ignoreCase,
		invert:     invert,
	}

	automaton, err := corasick.CreateAutomaton(m.arena)
	if err != nil {
		// The default arena never fails an unbounded Reserve; this path
		// exists only to satisfy the Arena contract's error return.
		panic(err)
	}
	m.automaton = automaton

	// Case folding happens once, at insertion, by lowering the pattern
	// bytes themselves (matched by also lowering scan input below) rather
	// than via corasick's NoCase case-variant expansion: this matcher
	// walks one case-folded path, not 2^k of them.
	m.patternIndex = make(map[*corasick.Pattern]int, len(patterns))
	for i, p := range patterns {
		raw := []byte(p)
		if ignoreCase {
			raw = bytes.ToLower(raw)
		}
		pat := &corasick.Pattern{Bytes: raw}
		m.patterns = append(m.patterns, pat)
		m.patternIndex[pat] = i
		if _, err := corasick.AddLiteral(m.arena, m.automaton, pat); err != nil {
			panic(err)
		}
	}

	if err := corasick.CreateFailureLinks(m.arena, m.automaton); err != nil {
		panic(err)
	}

	return m
}

// acMatch represents a single pattern match at a byte offset.
type acMatch struct {
	patternIdx int
	offset     int // byte offset in the searched text
	length     int // length of the matched pattern
}

// searchLine scans a single line for all pattern matches.
func (m *AhoCorasickMatcher) searchLine(text []byte) []acMatch {
	var matches []acMatch
	state := m.automaton.Root

	for i, b := range text {
		if m.ignoreCase {
			b = toLower(b)
		}
		for state != m.automaton.Root && corasick.NextState(state, b) == nil {
			state = state.Failure()
		}
		if next := corasick.NextState(state, b); next != nil {
			state = next
		}

		for _, hit := range state.Matches() {
			length := len(hit.Pattern.Bytes)
			matches = append(matches, acMatch{
				patternIdx: m.patternIndex[hit.Pattern],
				offset:     i - length + 1,
				length:     length,
			})
		}
	}

	return matches
}

func (m *AhoCorasickMatcher) MatchExists(data []byte) bool {
	if m.invert {
		return len(data) > 0
	}
	state := m.automaton.Root
	for _, b := range data {
		if m.ignoreCase {
			b = toLower(b)
		}
		for state != m.automaton.Root && corasick.NextState(state, b) == nil {
			state = state.Failure()
		}
		if next := corasick.NextState(state, b); next != nil {
			state = next
		}
		if len(state.Matches()) > 0 {
			return true
		}
	}
	return false
}

func (m *AhoCorasickMatcher) CountAll(data []byte) int {
	if m.invert {
		return countInvert(data, func(line []byte) bool {
			return len(m.searchLine(line)) == 0
		})
	}

	acMatches := m.searchLine(data)
	if len(acMatches) == 0 {
		return 0
	}

	locs := make([][]int, len(acMatches))
	for i, am := range acMatches {
		locs[i] = []int{am.offset, am.offset + am.length}
	}
	return countLocsUniqueLines(data, locs)
}

func (m *AhoCorasickMatcher) FindAll(data []byte) MatchSet {
	if m.invert {
		return m.findAllInvert(data)
	}

	acMatches := m.searchLine(data)
	if len(acMatches) == 0 {
		return MatchSet{}
	}

	locs := make([][]int, len(acMatches))
	for i, am := range acMatches {
		locs[i] = []int{am.offset, am.offset + am.length}
	}
	return matchSetFromLocs(data, locs, m.maxCols, m.needLineNums)
}

func (m *AhoCorasickMatcher) findAllInvert(data []byte) MatchSet {
	ms := MatchSet{Data: data}
	var offset int64
	lineNum := 1
	remaining := data

	for len(remaining) > 0 {
		idx := bytes.IndexByte(remaining, '\n')
		var lineLen int
		if idx >= 0 {
			lineLen = idx
		} else {
			lineLen = len(remaining)
		}
		lineStart := int(offset)
		line := remaining[:lineLen]

		if len(m.searchLine(line)) == 0 {
			ms.Matches = append(ms.Matches, Match{
				LineNum:    lineNum,
				LineStart:  lineStart,
				LineLen:    lineLen,
				ByteOffset: offset,
			})
		}

		if idx >= 0 {
			remaining = remaining[idx+1:]
		} else {
			remaining = nil
		}
		offset += int64(lineLen) + 1
		lineNum++
	}

	return ms
}

func (m *AhoCorasickMatcher) FindLine(line []byte, lineNum int, byteOffset int64) (MatchSet, bool) {
	acMatches := m.searchLine(line)
	hasMatch := len(acMatches) > 0

	if m.invert {
		hasMatch = !hasMatch
	}

	if !hasMatch {
		return MatchSet{}, false
	}

	ms := MatchSet{Data: line}
	match := Match{
		LineNum:    lineNum,
		LineStart:  0,
		LineLen:    len(line),
		ByteOffset: byteOffset,
	}
	if !m.invert {
		match.PosIdx = 0
		match.PosCount = len(acMatches)
		ms.Positions = make([][2]int, len(acMatches))
		for i, am := range acMatches {
			ms.Positions[i] = [2]int{am.offset, am.offset + am.length}
		}
	}
	ms.Matches = []Match{match}

	return ms, true
}
