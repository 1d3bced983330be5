package matcher

import (
	"bytes"
)

// FixedMatcher does literal string matching using bytes.Index.
type FixedMatcher struct {
	pattern    []byte
	patternLow []byte // lowercased pattern for case-insensitive
	ignoreCase bool
	invert     bool
}

// NewFixedMatcher creates a FixedMatcher for a single fixed pattern.
func NewFixedMatcher(pattern string, ignoreCase bool, invert bool) *FixedMatcher {
	p := []byte(pattern)
	var pLow []byte
	if ignoreCase {
		pLow = bytes.ToLower(p)
	}
	return &FixedMatcher{
		pattern:    p,
		patternLow: pLow,
		ignoreCase: ignoreCase,
		invert:     invert,
	}
}

func (m *FixedMatcher) MatchExists(data []byte) bool {
	return m.FindAll(data).HasMatch()
}

func (m *FixedMatcher) CountAll(data []byte) int {
	return m.FindAll(data).Len()
}

func (m *FixedMatcher) FindAll(data []byte) MatchSet {
	ms := MatchSet{Data: data}
	var offset int64
	lineNum := 1

	remaining := data
	for len(remaining) > 0 {
		idx := bytes.IndexByte(remaining, '\n')
		var line []byte
		if idx >= 0 {
			line = remaining[:idx]
			remaining = remaining[idx+1:]
		} else {
			line = remaining
			remaining = nil
		}

		lineStart := int(offset)
		match, positions, ok := m.findInLine(line, lineNum, offset)
		if ok {
			match.LineStart = lineStart
			match.LineLen = len(line)
			if len(positions) > 0 {
				match.PosIdx = len(ms.Positions)
				match.PosCount = len(positions)
				ms.Positions = append(ms.Positions, positions...)
			}
			ms.Matches = append(ms.Matches, match)
		}

		offset += int64(len(line)) + 1
		lineNum++
	}

	return ms
}

func (m *FixedMatcher) FindLine(line []byte, lineNum int, byteOffset int64) (MatchSet, bool) {
	match, positions, ok := m.findInLine(line, lineNum, byteOffset)
	if !ok {
		return MatchSet{}, false
	}
	match.LineStart = 0
	match.LineLen = len(line)
	ms := MatchSet{Data: line}
	if len(positions) > 0 {
		match.PosIdx = 0
		match.PosCount = len(positions)
		ms.Positions = positions
	}
	ms.Matches = []Match{match}
	return ms, true
}

func (m *FixedMatcher) findInLine(line []byte, lineNum int, byteOffset int64) (Match, [][2]int, bool) {
	searchLine := line
	pattern := m.pattern
	if m.ignoreCase {
		searchLine = bytes.ToLower(line)
		pattern = m.patternLow
	}

	var positions [][2]int
	start := 0
	for start <= len(searchLine) {
		idx := bytes.Index(searchLine[start:], pattern)
		if idx < 0 {
			break
		}
		pos := start + idx
		positions = append(positions, [2]int{pos, pos + len(pattern)})
		start = pos + len(pattern)
		if len(pattern) == 0 {
			start++ // avoid infinite loop on empty pattern
		}
	}

	hasMatch := len(positions) > 0
	if m.invert {
		hasMatch = !hasMatch
	}

	if !hasMatch {
		return Match{}, nil, false
	}

	match := Match{
		LineNum:    lineNum,
		ByteOffset: byteOffset,
	}
	if m.invert {
		positions = nil
	}

	return match, positions, true
}
