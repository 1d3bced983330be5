package matcher

import "bytes"

// ContextMatcher wraps a Matcher and adds context lines (before/after).
type ContextMatcher struct {
	inner  Matcher
	before int
	after  int
}

// NewContextMatcher wraps an existing matcher to add context lines.
// If both before and after are 0, returns the inner matcher directly.
func NewContextMatcher(inner Matcher, before, after int) Matcher {
	if before == 0 && after == 0 {
		return inner
	}
	return &ContextMatcher{inner: inner, before: before, after: after}
}

func (m *ContextMatcher) MatchExists(data []byte) bool {
	return m.inner.MatchExists(data)
}

func (m *ContextMatcher) CountAll(data []byte) int {
	return m.FindAll(data).Len()
}

func (m *ContextMatcher) FindAll(data []byte) MatchSet {
	// First, split data into lines and find all matching line numbers.
	var lines [][]byte
	var offsets []int64
	var offset int64

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
		lines = append(lines, line)
		offsets = append(offsets, offset)
		offset += int64(len(line)) + 1
	}

	// Find which lines match.
	lineMatch := make(map[int]MatchSet) // line index -> inner FindLine result
	for i, line := range lines {
		ms, ok := m.inner.FindLine(line, i+1, offsets[i])
		if ok {
			lineMatch[i] = ms
		}
	}

	out := MatchSet{Data: append([]byte(nil), data...)}
	if len(lineMatch) == 0 {
		return out
	}

	// Determine which lines to include (matches + context).
	include := make(map[int]bool)
	for idx := range lineMatch {
		for i := idx - m.before; i <= idx+m.after; i++ {
			if i >= 0 && i < len(lines) {
				include[i] = true
			}
		}
	}

	sepStart := -1
	lastIncluded := -2 // sentinel

	for i := 0; i < len(lines); i++ {
		if !include[i] {
			continue
		}

		// Insert a separator between non-contiguous groups.
		if lastIncluded >= 0 && i > lastIncluded+1 && len(out.Matches) > 0 {
			if sepStart < 0 {
				sepStart = len(out.Data)
				out.Data = append(out.Data, '-', '-')
			}
			out.Matches = append(out.Matches, Match{
				LineNum:   0, // sentinel for separator
				LineStart: sepStart,
				LineLen:   2,
				IsContext: true,
			})
		}

		if ms, isMatch := lineMatch[i]; isMatch {
			match := ms.Matches[0]
			match.LineStart = int(offsets[i])
			match.LineLen = len(lines[i])
			if positions := ms.MatchPositions(0); len(positions) > 0 {
				match.PosIdx = len(out.Positions)
				match.PosCount = len(positions)
				out.Positions = append(out.Positions, positions...)
			}
			out.Matches = append(out.Matches, match)
		} else {
			// Context line.
			out.Matches = append(out.Matches, Match{
				LineNum:    i + 1,
				LineStart:  int(offsets[i]),
				LineLen:    len(lines[i]),
				ByteOffset: offsets[i],
				IsContext:  true,
			})
		}

		lastIncluded = i
	}

	return out
}

func (m *ContextMatcher) FindLine(line []byte, lineNum int, byteOffset int64) (MatchSet, bool) {
	return m.inner.FindLine(line, lineNum, byteOffset)
}
